package peopledatalabs

import (
	"context"
	"net/http"
)

// Transport sends an assembled request and returns the raw response.
// Implementations must not interpret the response: non-2xx statuses are
// returned as-is with a nil error.
type Transport interface {
	Send(ctx context.Context, req *Request) (*http.Response, error)
}

// HTTPTransport is a Transport backed by an *http.Client.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport returns a transport whose client has no timeout.
// Enrichment calls can be slow; bound them with the context or WithTimeout.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{Client: &http.Client{}}
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*http.Response, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(httpReq)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*http.Response, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, req *Request) (*http.Response, error) {
	return f(ctx, req)
}
