package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pdl "github.com/peopledatalabs/peopledatalabs-go"
)

// Metrics records Prometheus metrics for outgoing calls. It is safe for
// concurrent use.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors on registry. Use a fresh
// prometheus.NewRegistry() in tests; registering twice on the same
// registry panics.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "peopledatalabs_requests_total",
				Help: "Total number of API requests sent",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "peopledatalabs_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "method"},
		),
	}
}

// Interceptor returns an interceptor that records every send. Transport
// errors are counted with status_code "error".
func (m *Metrics) Interceptor() pdl.Interceptor {
	return func(ctx context.Context, req *pdl.Request, next pdl.SendFunc) (*http.Response, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		endpoint := endpointID(ctx, req)
		status := "error"
		if err == nil && resp != nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		m.requestsTotal.WithLabelValues(endpoint, req.Method, status).Inc()
		m.requestDuration.WithLabelValues(endpoint, req.Method).Observe(time.Since(start).Seconds())
		return resp, err
	}
}
