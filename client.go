// Package peopledatalabs is a client for the People Data Labs REST API. Every
// call is checked against a declarative schema before it reaches the network.
package peopledatalabs

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"time"
)

// Client calls the People Data Labs API. A Client is immutable after New
// and safe for concurrent use.
type Client struct {
	apiKey       string
	baseURL      string
	headers      map[string]string
	transport    Transport
	interceptors []Interceptor
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	logger       *slog.Logger
	transport    Transport
	httpClient   *http.Client
	timeout      time.Duration
	timeoutIsSet bool
	interceptors []Interceptor
	headers      map[string]string
}

// WithLogger sets the logger. If not set, a text logger at the configured
// log level is used, or slog.Default() when no level is configured.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithHTTPClient sends requests through c. Ignored when WithTransport is used.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithTimeout sets the HTTP timeout, overriding Config.Timeout. Zero
// disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
		o.timeoutIsSet = true
	}
}

// WithInterceptor adds an interceptor around every send. Interceptors run
// in the order they were added; the first added is outermost.
func WithInterceptor(i Interceptor) Option {
	return func(o *clientOptions) {
		o.interceptors = append(o.interceptors, i)
	}
}

// WithHeader adds a header to every request. Endpoint-specific headers
// still take precedence.
func WithHeader(key, value string) Option {
	return func(o *clientOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// New validates cfg and returns a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.ResolvedBaseURL(),
		headers:      maps.Clone(o.headers),
		transport:    o.transport,
		interceptors: o.interceptors,
		logger:       o.logger,
	}

	if c.logger == nil {
		if level, ok := cfg.SlogLevel(); ok {
			c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		} else {
			c.logger = slog.Default()
		}
	}
	c.logger = c.logger.With(slog.String("component", "peopledatalabs"))

	if c.transport == nil {
		timeout := cfg.Timeout
		if o.timeoutIsSet {
			timeout = o.timeout
		}
		httpClient := o.httpClient
		if httpClient == nil {
			httpClient = &http.Client{}
		} else {
			clone := *httpClient
			httpClient = &clone
		}
		if timeout > 0 || o.timeoutIsSet {
			httpClient.Timeout = timeout
		}
		c.transport = &HTTPTransport{Client: httpClient}
	}

	return c, nil
}

// BaseURL returns the API root the client sends to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call invokes op within section with params.
func (c *Client) Call(ctx context.Context, section Section, op Operation, params Params) (*http.Response, error) {
	return c.do(ctx, section, op, "", params)
}

// Prepare runs every check Call runs and returns the request that would be
// sent, without sending it. id is only used by retrieve.
func (c *Client) Prepare(section Section, op Operation, id string, params Params) (*Request, error) {
	if len(params) == 0 && id == "" {
		return nil, Errorf(CodeEmptyParameters, "%s called without parameters", op).
			WithDetails(map[string]any{"section": section.String(), "operation": string(op)})
	}

	ep, err := Resolve(section, op)
	if err != nil {
		return nil, err
	}

	schema, _ := LookupSchema(ep.SchemaID)
	normalized, err := Validate(schema, params)
	if err != nil {
		c.logger.Debug("parameter validation failed",
			slog.String("endpoint", ep.ID()),
			slog.String("code", string(CodeOf(err))),
			slog.Any("error", err))
		return nil, err
	}
	c.logger.Debug("parameters validated",
		slog.String("endpoint", ep.ID()),
		slog.Any("params", normalized))

	return Assemble(c.baseURL, ep, id, normalized, c.apiKey, c.headers)
}

func (c *Client) do(ctx context.Context, section Section, op Operation, id string, params Params) (*http.Response, error) {
	req, err := c.Prepare(section, op, id, params)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "calling endpoint",
		slog.String("endpoint", req.Endpoint.ID()),
		slog.String("method", req.Method),
		slog.String("url", req.URL))

	ctx = WithEndpoint(ctx, req.Endpoint)
	if chain := chainInterceptors(c.interceptors); chain != nil {
		return chain(ctx, req, c.transport.Send)
	}
	return c.transport.Send(ctx, req)
}

// Autocomplete calls the autocomplete API.
func (c *Client) Autocomplete(ctx context.Context, params Params) (*http.Response, error) {
	return c.do(ctx, SectionNone, OpAutocomplete, "", params)
}

// Skill calls the skill enrichment API.
func (c *Client) Skill(ctx context.Context, params Params) (*http.Response, error) {
	return c.do(ctx, SectionNone, OpSkill, "", params)
}

// JobTitle calls the job title enrichment API.
func (c *Client) JobTitle(ctx context.Context, params Params) (*http.Response, error) {
	return c.do(ctx, SectionNone, OpJobTitle, "", params)
}

// IP calls the IP enrichment API.
func (c *Client) IP(ctx context.Context, params Params) (*http.Response, error) {
	return c.do(ctx, SectionNone, OpIP, "", params)
}

// Person returns the person section.
func (c *Client) Person() *PersonAPI {
	return &PersonAPI{sectionAPI{client: c, section: SectionPerson}}
}

// Company returns the company section.
func (c *Client) Company() *CompanyAPI {
	return &CompanyAPI{sectionAPI{client: c, section: SectionCompany}}
}

// Location returns the location section.
func (c *Client) Location() *LocationAPI {
	return &LocationAPI{sectionAPI{client: c, section: SectionLocation}}
}

// School returns the school section.
func (c *Client) School() *SchoolAPI {
	return &SchoolAPI{sectionAPI{client: c, section: SectionSchool}}
}
