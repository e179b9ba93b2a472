package peopledatalabs

import (
	"context"
)

type contextKey struct {
	name string
}

var endpointKey = &contextKey{"endpoint"}

// EndpointFromContext returns the endpoint of the call in progress. It is
// set for interceptors and transports.
func EndpointFromContext(ctx context.Context) (Endpoint, bool) {
	ep, ok := ctx.Value(endpointKey).(Endpoint)
	return ep, ok
}

// WithEndpoint returns a copy of ctx carrying ep.
func WithEndpoint(ctx context.Context, ep Endpoint) context.Context {
	return context.WithValue(ctx, endpointKey, ep)
}
