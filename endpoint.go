package peopledatalabs

import (
	"net/http"
	"slices"
)

// Section is a top-level API resource category.
type Section string

const (
	SectionNone     Section = ""
	SectionPerson   Section = "person"
	SectionCompany  Section = "company"
	SectionLocation Section = "location"
	SectionSchool   Section = "school"
)

func (s Section) String() string {
	if s == SectionNone {
		return "none"
	}
	return string(s)
}

// Operation is a named capability within a section.
type Operation string

const (
	OpEnrichment   Operation = "enrichment"
	OpSearch       Operation = "search"
	OpIdentify     Operation = "identify"
	OpRetrieve     Operation = "retrieve"
	OpBulk         Operation = "bulk"
	OpCleaner      Operation = "cleaner"
	OpChangelog    Operation = "changelog"
	OpAutocomplete Operation = "autocomplete"
	OpSkill        Operation = "skill"
	OpJobTitle     Operation = "job_title"
	OpIP           Operation = "ip"
)

// CredentialPlacement says where the API key travels.
type CredentialPlacement int

const (
	CredentialQuery CredentialPlacement = iota
	CredentialHeader
)

func (c CredentialPlacement) String() string {
	if c == CredentialHeader {
		return "header"
	}
	return "query"
}

// Endpoint describes one (section, operation) pair of the remote API.
type Endpoint struct {
	Section    Section
	Operation  Operation
	Method     string
	Path       []string
	Credential CredentialPlacement
	SchemaID   string
	// Headers override the client's default headers for this endpoint.
	Headers map[string]string
}

// ID returns "section.operation", or the bare operation for SectionNone.
func (e Endpoint) ID() string {
	if e.Section == SectionNone {
		return string(e.Operation)
	}
	return string(e.Section) + "." + string(e.Operation)
}

// credentialForMethod maps an HTTP method to its credential placement:
// GET requests carry the key in the query string, everything else in a
// header.
func credentialForMethod(method string) CredentialPlacement {
	switch method {
	case http.MethodGet:
		return CredentialQuery
	default:
		return CredentialHeader
	}
}

func endpoint(section Section, op Operation, method, schemaID string, path ...string) Endpoint {
	return Endpoint{
		Section:    section,
		Operation:  op,
		Method:     method,
		Path:       path,
		Credential: credentialForMethod(method),
		SchemaID:   schemaID,
	}
}

var routes = buildRoutes()

func buildRoutes() map[Section]map[Operation]Endpoint {
	list := []Endpoint{
		endpoint(SectionNone, OpAutocomplete, http.MethodGet, SchemaAutocomplete, "autocomplete"),
		endpoint(SectionNone, OpSkill, http.MethodGet, SchemaSkill, "skill", "enrich"),
		endpoint(SectionNone, OpJobTitle, http.MethodGet, SchemaJobTitle, "job_title", "enrich"),
		endpoint(SectionNone, OpIP, http.MethodGet, SchemaIP, "ip", "enrich"),

		endpoint(SectionPerson, OpEnrichment, http.MethodGet, SchemaPersonEnrichment, "person", "enrich"),
		endpoint(SectionPerson, OpIdentify, http.MethodGet, SchemaPersonIdentify, "person", "identify"),
		endpoint(SectionPerson, OpRetrieve, http.MethodGet, SchemaPersonRetrieve, "person", "retrieve"),
		endpoint(SectionPerson, OpSearch, http.MethodPost, SchemaPersonSearch, "person", "search"),
		endpoint(SectionPerson, OpBulk, http.MethodPost, SchemaPersonBulk, "person", "bulk"),
		endpoint(SectionPerson, OpChangelog, http.MethodPost, SchemaPersonChangelog, "person", "changelog"),

		endpoint(SectionCompany, OpEnrichment, http.MethodGet, SchemaCompanyEnrichment, "company", "enrich"),
		endpoint(SectionCompany, OpSearch, http.MethodPost, SchemaCompanySearch, "company", "search"),
		endpoint(SectionCompany, OpBulk, http.MethodPost, SchemaCompanyBulk, "company", "enrich", "bulk"),
		endpoint(SectionCompany, OpCleaner, http.MethodGet, SchemaCompanyCleaner, "company", "clean"),

		endpoint(SectionLocation, OpCleaner, http.MethodGet, SchemaLocationCleaner, "location", "clean"),

		endpoint(SectionSchool, OpCleaner, http.MethodGet, SchemaSchoolCleaner, "school", "clean"),
	}

	out := make(map[Section]map[Operation]Endpoint)
	for _, ep := range list {
		if _, ok := schemas[ep.SchemaID]; !ok {
			panic("peopledatalabs: endpoint " + ep.ID() + " names unknown schema " + ep.SchemaID)
		}
		if out[ep.Section] == nil {
			out[ep.Section] = make(map[Operation]Endpoint)
		}
		out[ep.Section][ep.Operation] = ep
	}
	return out
}

// Resolve returns the endpoint for op within section. It fails with
// invalid_endpoint when the section does not support op.
func Resolve(section Section, op Operation) (Endpoint, error) {
	ep, ok := routes[section][op]
	if !ok {
		return Endpoint{}, Errorf(CodeInvalidEndpoint, "invalid method %s called for section %s", op, section).
			WithDetails(map[string]any{"section": section.String(), "operation": string(op)})
	}
	return ep, nil
}

// Sections returns every section with at least one operation.
func Sections() []Section {
	out := make([]Section, 0, len(routes))
	for s := range routes {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Operations returns the operations supported by section, sorted.
func Operations(section Section) []Operation {
	ops := make([]Operation, 0, len(routes[section]))
	for op := range routes[section] {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// Endpoints returns every endpoint, ordered by section then operation.
func Endpoints() []Endpoint {
	var out []Endpoint
	for _, s := range Sections() {
		for _, op := range Operations(s) {
			out = append(out, routes[s][op])
		}
	}
	return out
}
