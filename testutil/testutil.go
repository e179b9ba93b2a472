// Package testutil provides testing helpers for code that calls the People
// Data Labs API over HTTP. It does not import the client package, so it is
// import-cycle safe and can be used from any package.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"testing"
)

// Recorder is an http.RoundTripper that records every request and answers
// with a canned response. Configure it with the fluent With* methods before
// use; it is safe for concurrent round trips afterwards.
type Recorder struct {
	mu       sync.Mutex
	status   int
	body     []byte
	headers  map[string]string
	err      error
	requests []*RecordedRequest
}

// RecordedRequest is a snapshot of one request seen by a Recorder.
type RecordedRequest struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

// NewRecorder returns a Recorder answering 200 with an empty JSON object.
func NewRecorder() *Recorder {
	return &Recorder{
		status:  http.StatusOK,
		body:    []byte("{}"),
		headers: map[string]string{"Content-Type": "application/json"},
	}
}

// WithStatus sets the response status code.
func (r *Recorder) WithStatus(code int) *Recorder {
	r.status = code
	return r
}

// WithJSON sets the response body as JSON.
func (r *Recorder) WithJSON(v any) *Recorder {
	data, _ := json.Marshal(v)
	r.body = data
	r.headers["Content-Type"] = "application/json"
	return r
}

// WithBody sets the raw response body.
func (r *Recorder) WithBody(body string) *Recorder {
	r.body = []byte(body)
	return r
}

// WithHeader adds a response header.
func (r *Recorder) WithHeader(key, value string) *Recorder {
	r.headers[key] = value
	return r
}

// WithError makes every round trip fail with err.
func (r *Recorder) WithError(err error) *Recorder {
	r.err = err
	return r
}

// Client returns an *http.Client using r as its transport.
func (r *Recorder) Client() *http.Client {
	return &http.Client{Transport: r}
}

// RoundTrip implements http.RoundTripper.
func (r *Recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := &RecordedRequest{
		Method: req.Method,
		URL:    req.URL,
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		rec.Body = data
	}

	r.mu.Lock()
	r.requests = append(r.requests, rec)
	r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}

	header := make(http.Header, len(r.headers))
	for k, v := range r.headers {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode: r.status,
		Status:     http.StatusText(r.status),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(r.body)),
		Request:    req,
	}, nil
}

// Requests returns every recorded request in order.
func (r *Recorder) Requests() []*RecordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*RecordedRequest(nil), r.requests...)
}

// Count returns the number of recorded requests.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// Last returns the most recent request. It fails the test when none was recorded.
func (r *Recorder) Last(t *testing.T) *RecordedRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		t.Fatal("expected at least one recorded request")
	}
	return r.requests[len(r.requests)-1]
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, resp *http.Response, expectedStatus int) {
	t.Helper()
	if resp.StatusCode != expectedStatus {
		t.Errorf("expected status %d, got %d", expectedStatus, resp.StatusCode)
	}
}

// AssertQuery checks that the request carries the query values, in order.
func AssertQuery(t *testing.T, req *RecordedRequest, key string, expected ...string) {
	t.Helper()
	actual := req.URL.Query()[key]
	if len(actual) != len(expected) {
		t.Errorf("expected query %s=%v, got %v", key, expected, actual)
		return
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("expected query %s=%v, got %v", key, expected, actual)
			return
		}
	}
}

// AssertNoQuery checks that the request has no value for key.
func AssertNoQuery(t *testing.T, req *RecordedRequest, key string) {
	t.Helper()
	if req.URL.Query().Has(key) {
		t.Errorf("expected no query %s, got %v", key, req.URL.Query()[key])
	}
}

// AssertHeader checks that a request header has the expected value.
func AssertHeader(t *testing.T, req *RecordedRequest, key, expectedValue string) {
	t.Helper()
	actual := req.Header.Get(key)
	if actual != expectedValue {
		t.Errorf("expected header %s=%s, got %s", key, expectedValue, actual)
	}
}

// DecodeJSON decodes the recorded request body into v.
func DecodeJSON(t *testing.T, req *RecordedRequest, v any) {
	t.Helper()
	if err := json.Unmarshal(req.Body, v); err != nil {
		t.Fatalf("failed to decode request body: %v\nBody: %s", err, req.Body)
	}
}
