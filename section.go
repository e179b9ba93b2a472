package peopledatalabs

import (
	"context"
	"net/http"
)

type sectionAPI struct {
	client  *Client
	section Section
}

// Section returns the section this API calls into.
func (s sectionAPI) Section() Section {
	return s.section
}

// Operations returns the operations this section supports.
func (s sectionAPI) Operations() []Operation {
	return Operations(s.section)
}

// Call invokes op by name. It fails with invalid_endpoint when the section
// does not support op.
func (s sectionAPI) Call(ctx context.Context, op Operation, params Params) (*http.Response, error) {
	return s.client.do(ctx, s.section, op, "", params)
}

// PersonAPI groups the person endpoints.
type PersonAPI struct{ sectionAPI }

// Enrichment calls person/enrich.
func (p *PersonAPI) Enrichment(ctx context.Context, params Params) (*http.Response, error) {
	return p.Call(ctx, OpEnrichment, params)
}

// Identify calls person/identify. No parameter may hold a list.
func (p *PersonAPI) Identify(ctx context.Context, params Params) (*http.Response, error) {
	return p.Call(ctx, OpIdentify, params)
}

// Search calls person/search with either an Elasticsearch query or SQL.
func (p *PersonAPI) Search(ctx context.Context, params Params) (*http.Response, error) {
	return p.Call(ctx, OpSearch, params)
}

// Bulk calls person/bulk.
func (p *PersonAPI) Bulk(ctx context.Context, params Params) (*http.Response, error) {
	return p.Call(ctx, OpBulk, params)
}

// Changelog calls person/changelog.
func (p *PersonAPI) Changelog(ctx context.Context, params Params) (*http.Response, error) {
	return p.Call(ctx, OpChangelog, params)
}

// Retrieve calls person/retrieve/{id}. params may be nil.
func (p *PersonAPI) Retrieve(ctx context.Context, id string, params Params) (*http.Response, error) {
	return p.client.do(ctx, p.section, OpRetrieve, id, params)
}

// CompanyAPI groups the company endpoints.
type CompanyAPI struct{ sectionAPI }

// Enrichment calls company/enrich. One of pdl_id, name, profile, ticker or
// website is required.
func (c *CompanyAPI) Enrichment(ctx context.Context, params Params) (*http.Response, error) {
	return c.Call(ctx, OpEnrichment, params)
}

// Search calls company/search.
func (c *CompanyAPI) Search(ctx context.Context, params Params) (*http.Response, error) {
	return c.Call(ctx, OpSearch, params)
}

// Bulk calls company/enrich/bulk.
func (c *CompanyAPI) Bulk(ctx context.Context, params Params) (*http.Response, error) {
	return c.Call(ctx, OpBulk, params)
}

// Cleaner calls company/clean.
func (c *CompanyAPI) Cleaner(ctx context.Context, params Params) (*http.Response, error) {
	return c.Call(ctx, OpCleaner, params)
}

// LocationAPI groups the location endpoints.
type LocationAPI struct{ sectionAPI }

// Cleaner calls location/clean.
func (l *LocationAPI) Cleaner(ctx context.Context, params Params) (*http.Response, error) {
	return l.Call(ctx, OpCleaner, params)
}

// SchoolAPI groups the school endpoints.
type SchoolAPI struct{ sectionAPI }

// Cleaner calls school/clean.
func (s *SchoolAPI) Cleaner(ctx context.Context, params Params) (*http.Response, error) {
	return s.Call(ctx, OpCleaner, params)
}
