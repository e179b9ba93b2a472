package peopledatalabs

import (
	"context"
	"net/http"
)

// SendFunc sends an assembled request. It is the next step in an
// interceptor chain.
type SendFunc func(ctx context.Context, req *Request) (*http.Response, error)

// Interceptor wraps every outgoing send.
//
//	func timing(ctx context.Context, req *peopledatalabs.Request, next peopledatalabs.SendFunc) (*http.Response, error) {
//	    start := time.Now()
//	    resp, err := next(ctx, req)
//	    log.Printf("%s took %v", req.Endpoint.ID(), time.Since(start))
//	    return resp, err
//	}
//
// Interceptors can:
//   - Inspect or modify the request before calling next
//   - Inspect the response after calling next
//   - Short-circuit by returning without calling next
//
// The response must be passed back unmodified for the caller to interpret.
type Interceptor func(ctx context.Context, req *Request, next SendFunc) (*http.Response, error)

// chainInterceptors combines interceptors into one. The first interceptor
// in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []Interceptor) Interceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, req *Request, send SendFunc) (*http.Response, error) {
		chain := send
		for i := len(interceptors) - 1; i >= 0; i-- {
			current := interceptors[i]
			next := chain
			chain = func(ctx context.Context, req *Request) (*http.Response, error) {
				return current(ctx, req, next)
			}
		}
		return chain(ctx, req)
	}
}
