// Package quickstart provides simple example code for documentation.
package quickstart

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	pdl "github.com/peopledatalabs/peopledatalabs-go"
	"github.com/peopledatalabs/peopledatalabs-go/middleware"
)

func exampleClient() *pdl.Client {
	// [snippet:client]
	cfg, err := pdl.LoadConfig("") // reads .env and PDL_* variables
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)

	client, err := pdl.New(cfg,
		pdl.WithLogger(logger),
		pdl.WithInterceptor(middleware.LoggingInterceptor(logger)),
		pdl.WithInterceptor(metrics.Interceptor()),
	)
	if err != nil {
		log.Fatal(err)
	}
	// [/snippet:client]
	return client
}

func exampleEnrich(client *pdl.Client) {
	ctx := context.Background()
	// [snippet:enrich]
	resp, err := client.Person().Enrichment(ctx, pdl.Params{
		"profile":        "linkedin.com/in/seanthorne",
		"min_likelihood": 6,
	})
	switch {
	case errors.Is(err, pdl.ErrRangeViolation), errors.Is(err, pdl.ErrCrossFieldViolation):
		log.Fatalf("bad parameters: %v", err)
	case err != nil:
		log.Fatal(err)
	}
	defer resp.Body.Close()

	// Non-2xx responses are returned as-is.
	body, _ := io.ReadAll(resp.Body)
	log.Printf("%d %s", resp.StatusCode, body)
	// [/snippet:enrich]
}

func exampleSearch(client *pdl.Client) {
	ctx := context.Background()
	// [snippet:search collapse]
	resp, err := client.Company().Search(ctx, pdl.Params{
		"sql":  "SELECT * FROM company WHERE website='google.com'",
		"size": 10,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	// [/snippet:search]
}

func exampleStruct(client *pdl.Client) {
	ctx := context.Background()
	// [snippet:struct]
	type lookup struct {
		Email  string `schema:"email,omitempty"`
		Pretty bool   `schema:"pretty,omitempty"`
	}
	params, err := pdl.ParamsFromStruct(lookup{Email: "sean@peopledatalabs.com", Pretty: true})
	if err != nil {
		log.Fatal(err)
	}
	resp, err := client.Person().Identify(ctx, params)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	// [/snippet:struct]
}

// Keep imports used.
var (
	_ = exampleClient
	_ = exampleEnrich
	_ = exampleSearch
	_ = exampleStruct
)
