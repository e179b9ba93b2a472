package peopledatalabs

import (
	"slices"
)

// Schema identifiers. Each endpoint in the route table names one of these.
const (
	SchemaAutocomplete      = "autocomplete"
	SchemaSkill             = "skill"
	SchemaJobTitle          = "job_title"
	SchemaIP                = "ip"
	SchemaPersonEnrichment  = "person/enrichment"
	SchemaPersonIdentify    = "person/identify"
	SchemaPersonSearch      = "person/search"
	SchemaPersonBulk        = "person/bulk"
	SchemaPersonRetrieve    = "person/retrieve"
	SchemaPersonChangelog   = "person/changelog"
	SchemaCompanyEnrichment = "company/enrichment"
	SchemaCompanySearch     = "company/search"
	SchemaCompanyBulk       = "company/bulk"
	SchemaCompanyCleaner    = "company/cleaner"
	SchemaLocationCleaner   = "location/cleaner"
	SchemaSchoolCleaner     = "school/cleaner"
)

// Base layers shared across endpoints.
var (
	requestOptions = Layer{
		Name: "request_options",
		Fields: []Field{
			Bool("pretty"),
			Int("size", 1, 100),
		},
	}

	matchOptions = Layer{
		Name: "match_options",
		Fields: []Field{
			Int("min_likelihood", 1, 10),
			String("required"),
			Bool("titlecase"),
			String("data_include"),
			Bool("include_if_matched"),
		},
	}

	searchOptions = Layer{
		Name: "search_options",
		Fields: []Field{
			Object("query"),
			String("sql"),
			Int("from", 0, 9999),
			String("scroll_token"),
			Bool("titlecase"),
		},
		Rules: []Rule{ExactlyOneOf("query_or_sql", "query", "sql")},
	}

	personIdentity = Layer{
		Name: "person_identity",
		Fields: []Field{
			Strings("birth_date"),
			Strings("company"),
			String("country"),
			Strings("email").WithType(TypeEmail),
			Strings("email_hash"),
			Strings("first_name"),
			Strings("last_name"),
			Strings("lid"),
			String("locality"),
			Strings("location"),
			Strings("middle_name"),
			Strings("name"),
			Strings("phone"),
			String("pdl_id"),
			Strings("postal_code"),
			Strings("profile"),
			String("region"),
			Strings("school"),
			String("street_address"),
		},
		Rules: []Rule{AtLeastOneOf("person_identity", personIdentityFields...)},
	}

	companyIdentity = Layer{
		Name: "company_identity",
		Fields: []Field{
			String("country"),
			String("locality"),
			Strings("location"),
			String("name"),
			String("pdl_id"),
			String("postal_code"),
			String("profile"),
			String("region"),
			String("street_address"),
			String("ticker"),
			String("website"),
		},
		Rules: []Rule{AtLeastOneOf("non_ambiguous", "pdl_id", "name", "profile", "ticker", "website")},
	}

	cleanerIdentity = Layer{
		Name: "cleaner_identity",
		Fields: []Field{
			String("name"),
			String("website"),
			String("profile"),
		},
		Rules: []Rule{AtLeastOneOf("cleaner_identity", "name", "website", "profile")},
	}
)

var personIdentityFields = []string{
	"birth_date", "company", "country", "email", "email_hash", "first_name",
	"last_name", "lid", "locality", "location", "middle_name", "name", "phone",
	"pdl_id", "postal_code", "profile", "region", "school", "street_address",
}

// Literal sets for enum fields.
var (
	AutocompleteFields = []string{
		"class", "company", "country", "industry", "location", "major", "region",
		"role", "school", "sub_role", "skill", "title", "website",
	}
	SearchDatasets = []string{
		"resume", "email", "phone", "mobile_phone", "street_address",
		"consumer_social", "developer", "all",
	}
	ConfidenceLevels = []string{"very high", "high", "moderate", "low", "very low"}
	ChangelogTypes   = []string{"added", "deleted", "merged", "opted_out", "updated"}
)

// bulkLayer builds the layer for a bulk endpoint whose entries carry params
// checked against the fields of the matching enrichment schema. The identity
// layer's own rules do not apply per entry; an entry only needs at least one
// parameter.
func bulkLayer(name string, identity Layer) Layer {
	entryParams := MustCompose(name+"/params", requestOptions, identity.FieldsOnly(), matchOptions, Layer{
		Name:  "bulk_params",
		Rules: []Rule{NotEmpty("params_not_empty")},
	})
	entry := MustCompose(name+"/entry", Layer{
		Name: "bulk_entry",
		Fields: []Field{
			Object("metadata"),
			{Name: "params", Shape: ShapeScalar, Type: TypeObject, Schema: entryParams, Required: true},
		},
	})
	return Layer{
		Name: "bulk_requests",
		Fields: []Field{
			{Name: "requests", Shape: ShapeList, Type: TypeObject, Schema: entry},
		},
		Rules: []Rule{NonEmptyList("requests_not_empty", "requests")},
	}
}

var schemas = buildSchemas()

func buildSchemas() map[string]*Schema {
	list := []*Schema{
		MustCompose(SchemaAutocomplete, requestOptions, Layer{
			Name: "autocomplete",
			Fields: []Field{
				Enum("field", AutocompleteFields...).AsRequired(),
				String("text"),
				Bool("titlecase"),
				Bool("updated_title_roles"),
			},
		}),
		MustCompose(SchemaSkill, requestOptions, Layer{
			Name: "skill",
			Fields: []Field{
				String("skill").AsRequired(),
				Bool("titlecase"),
			},
		}),
		MustCompose(SchemaJobTitle, requestOptions, Layer{
			Name: "job_title",
			Fields: []Field{
				String("job_title").AsRequired(),
				Bool("titlecase"),
			},
		}),
		MustCompose(SchemaIP, Layer{
			Name: "ip",
			Fields: []Field{
				String("ip").AsRequired(),
				Bool("return_ip_metadata"),
				Bool("return_ip_location"),
				Bool("return_person"),
				Bool("return_if_unmatched"),
				Bool("pretty"),
				Bool("titlecase"),
				Enum("min_confidence", ConfidenceLevels...),
			},
		}),

		MustCompose(SchemaPersonEnrichment, requestOptions, personIdentity, matchOptions),
		MustCompose(SchemaPersonIdentify, requestOptions, personIdentity, matchOptions, Layer{
			Name:  "identify",
			Rules: []Rule{NoLists("no_lists")},
		}),
		MustCompose(SchemaPersonSearch, requestOptions, searchOptions, Layer{
			Name: "person_search",
			Fields: []Field{
				{Name: "dataset", Shape: ShapeScalar, Type: TypeEnum, Enum: SearchDatasets, Delimited: true, Negatable: true},
			},
		}),
		MustCompose(SchemaPersonBulk, requestOptions, matchOptions, bulkLayer("person/bulk", personIdentity)),
		MustCompose(SchemaPersonRetrieve, requestOptions, Layer{
			Name:   "retrieve",
			Fields: []Field{Bool("titlecase")},
		}),
		MustCompose(SchemaPersonChangelog, Layer{
			Name: "changelog",
			Fields: []Field{
				String("current_version").AsRequired(),
				String("origin_version").AsRequired(),
				Enum("type", ChangelogTypes...),
				{Name: "ids", Shape: ShapeList, Type: TypeString},
				String("scroll_token"),
			},
		}),

		MustCompose(SchemaCompanyEnrichment, requestOptions, companyIdentity, matchOptions),
		MustCompose(SchemaCompanySearch, requestOptions, searchOptions),
		MustCompose(SchemaCompanyBulk, requestOptions, matchOptions, bulkLayer("company/bulk", companyIdentity)),
		MustCompose(SchemaCompanyCleaner, requestOptions, cleanerIdentity),

		MustCompose(SchemaLocationCleaner, requestOptions, Layer{
			Name:   "location_cleaner",
			Fields: []Field{String("location").AsRequired()},
		}),
		MustCompose(SchemaSchoolCleaner, requestOptions, cleanerIdentity),
	}

	out := make(map[string]*Schema, len(list))
	for _, s := range list {
		out[s.ID()] = s
	}
	return out
}

// LookupSchema returns the registered schema with the given identifier.
func LookupSchema(id string) (*Schema, bool) {
	s, ok := schemas[id]
	return s, ok
}

// SchemaIDs returns every registered schema identifier, sorted.
func SchemaIDs() []string {
	ids := make([]string, 0, len(schemas))
	for id := range schemas {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
