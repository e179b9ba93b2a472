package peopledatalabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	// APIKeyParam is the query parameter carrying the key on GET requests.
	APIKeyParam = "api_key"
	// APIKeyHeader is the header carrying the key on POST requests.
	APIKeyHeader = "X-Api-Key"

	redacted = "REDACTED"
)

// DefaultHeaders are sent with every request unless overridden.
var DefaultHeaders = map[string]string{
	"User-Agent":   "PDL-GO-SDK",
	"Content-Type": "application/json",
}

// Request is a transport-ready description of one API call.
type Request struct {
	Method   string            `json:"method"`
	URL      string            `json:"url"`
	Header   map[string]string `json:"headers"`
	Query    url.Values        `json:"query,omitempty"`
	Body     Params            `json:"body,omitempty"`
	Endpoint Endpoint          `json:"-"`
}

// Assemble builds the request for ep from already validated params.
//
// The URL is baseURL followed by the endpoint path; for retrieve, id is
// appended as a final segment. GET requests carry params and the key in the
// query string. POST requests carry params as a JSON body and the key in
// the X-Api-Key header. headers are layered over DefaultHeaders, and the
// endpoint's own headers win over both. Keys are compared case-insensitively
// and an X-Api-Key among them is dropped; only apiKey is ever sent.
func Assemble(baseURL string, ep Endpoint, id string, params Params, apiKey string, headers map[string]string) (*Request, error) {
	segments := slices.Clone(ep.Path)
	switch {
	case ep.Operation == OpRetrieve:
		if id == "" {
			return nil, fieldError(CodeTypeMismatch, "id", "must be a non-empty string")
		}
		segments = append(segments, url.PathEscape(id))
	case id != "":
		return nil, fieldError(CodeTypeMismatch, "id", "not accepted by %s", ep.ID())
	}

	req := &Request{
		Method:   ep.Method,
		URL:      strings.TrimRight(baseURL, "/") + "/" + strings.Join(segments, "/"),
		Header:   make(map[string]string, len(DefaultHeaders)+len(headers)+len(ep.Headers)+1),
		Endpoint: ep,
	}
	mergeHeaders(req.Header, DefaultHeaders)
	mergeHeaders(req.Header, headers)
	mergeHeaders(req.Header, ep.Headers)
	delete(req.Header, APIKeyHeader)

	switch ep.Credential {
	case CredentialQuery:
		req.Query = encodeQuery(params)
		req.Query.Set(APIKeyParam, apiKey)
	case CredentialHeader:
		req.Body = params
		req.Header[APIKeyHeader] = apiKey
	}
	return req, nil
}

// Redacted returns a copy of r with the credential masked, for logging.
func (r *Request) Redacted() *Request {
	out := *r
	out.Header = maps.Clone(r.Header)
	if _, ok := out.Header[APIKeyHeader]; ok {
		out.Header[APIKeyHeader] = redacted
	}
	if r.Query != nil {
		out.Query = maps.Clone(r.Query)
		if out.Query.Has(APIKeyParam) {
			out.Query.Set(APIKeyParam, redacted)
		}
	}
	return &out
}

// HTTPRequest converts r into an *http.Request bound to ctx.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	target := r.URL
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, err
	}
	for k, v := range r.Header {
		req.Header.Set(k, v)
	}
	return req, nil
}

// mergeHeaders copies src into dst under canonical header keys, so that
// "user-agent" and "User-Agent" collide.
func mergeHeaders(dst, src map[string]string) {
	for k, v := range src {
		dst[http.CanonicalHeaderKey(k)] = v
	}
}

// encodeQuery flattens params into query values. Lists become repeated
// keys and objects are sent as JSON text.
func encodeQuery(params Params) url.Values {
	q := make(url.Values, len(params)+1)
	for _, k := range slices.Sorted(maps.Keys(params)) {
		v := params[k]
		if list, ok := v.([]any); ok {
			for _, e := range list {
				q.Add(k, formatValue(e))
			}
			continue
		}
		q.Add(k, formatValue(v))
	}
	return q
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case Params, map[string]any:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
	return fmt.Sprint(v)
}
