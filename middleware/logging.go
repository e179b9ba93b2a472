package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	pdl "github.com/peopledatalabs/peopledatalabs-go"
)

// LoggingInterceptor creates an interceptor that logs outgoing calls using slog.
// It logs the start and end of each call, including status and duration.
// The credential is never logged.
func LoggingInterceptor(logger *slog.Logger) pdl.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req *pdl.Request, next pdl.SendFunc) (*http.Response, error) {
		start := time.Now()
		endpoint := endpointID(ctx, req)

		logger.InfoContext(ctx, "request started",
			slog.String("endpoint", endpoint),
			slog.String("method", req.Method),
		)

		resp, err := next(ctx, req)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "request failed",
				slog.String("endpoint", endpoint),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			status := 0
			if resp != nil {
				status = resp.StatusCode
			}
			logger.InfoContext(ctx, "request completed",
				slog.String("endpoint", endpoint),
				slog.Int("status", status),
				slog.Duration("duration", duration),
			)
		}

		return resp, err
	}
}

func endpointID(ctx context.Context, req *pdl.Request) string {
	if ep, ok := pdl.EndpointFromContext(ctx); ok {
		return ep.ID()
	}
	return req.Endpoint.ID()
}
