package peopledatalabs

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func mustSchema(t *testing.T, id string) *Schema {
	t.Helper()
	s, ok := LookupSchema(id)
	if !ok {
		t.Fatalf("schema %s not registered", id)
	}
	return s
}

func assertCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := CodeOf(err); got != want {
		t.Fatalf("expected code %s, got %s (%v)", want, got, err)
	}
}

func TestValidate_DropsNilFields(t *testing.T) {
	s := MustCompose("test", Layer{Name: "l", Fields: []Field{String("a"), String("b")}})

	out, err := Validate(s, Params{"a": "x", "b": nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Params{"a": "x"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("expected %v, got %v", want, out)
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	s := mustSchema(t, SchemaPersonEnrichment)
	raw := Params{"email": "a@b.co", "size": "5", "company": nil}

	if _, err := Validate(s, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw["size"] != "5" {
		t.Errorf("expected raw size to stay a string, got %#v", raw["size"])
	}
	if _, ok := raw["company"]; !ok {
		t.Error("expected raw nil field to stay in the input")
	}
}

func TestValidate_UnknownField(t *testing.T) {
	_, err := Validate(mustSchema(t, SchemaPersonEnrichment), Params{"email": "a@b.co", "favorite_color": "blue"})
	assertCode(t, err, CodeUnknownField)
	if e := err.(*Error); e.Details["field"] != "favorite_color" {
		t.Errorf("expected field detail, got %v", e.Details)
	}
}

func TestValidate_Search(t *testing.T) {
	for _, id := range []string{SchemaPersonSearch, SchemaCompanySearch} {
		s := mustSchema(t, id)
		t.Run(id, func(t *testing.T) {
			_, err := Validate(s, Params{"sql": "SELECT * FROM person", "query": Params{"term": Params{"a": "b"}}})
			assertCode(t, err, CodeCrossFieldViolation)

			_, err = Validate(s, Params{"size": 10})
			assertCode(t, err, CodeCrossFieldViolation)

			if _, err := Validate(s, Params{"sql": "SELECT * FROM person"}); err != nil {
				t.Errorf("sql only: unexpected error: %v", err)
			}
			if _, err := Validate(s, Params{"query": map[string]any{"bool": map[string]any{}}}); err != nil {
				t.Errorf("query only: unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_IdentifyRejectsLists(t *testing.T) {
	s := mustSchema(t, SchemaPersonIdentify)

	_, err := Validate(s, Params{"name": []string{"Sean Thorne", "Sean T"}})
	assertCode(t, err, CodeCrossFieldViolation)
	if e := err.(*Error); e.Details["rule"] != "no_lists" {
		t.Errorf("expected no_lists rule, got %v", e.Details)
	}

	out, err := Validate(s, Params{"name": "Sean Thorne"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["name"] != "Sean Thorne" {
		t.Errorf("expected scalar name, got %#v", out["name"])
	}
}

func TestValidate_CompanyEnrichmentIdentity(t *testing.T) {
	s := mustSchema(t, SchemaCompanyEnrichment)

	_, err := Validate(s, Params{"country": "united states", "locality": "san francisco"})
	assertCode(t, err, CodeCrossFieldViolation)

	for _, field := range []string{"pdl_id", "name", "profile", "ticker", "website"} {
		t.Run(field, func(t *testing.T) {
			if _, err := Validate(s, Params{field: "google"}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_PersonEnrichmentNeedsIdentity(t *testing.T) {
	s := mustSchema(t, SchemaPersonEnrichment)

	_, err := Validate(s, Params{"min_likelihood": 5})
	assertCode(t, err, CodeCrossFieldViolation)

	out, err := Validate(s, Params{"profile": "linkedin.com/in/seanthorne", "min_likelihood": "6"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["min_likelihood"] != 6 {
		t.Errorf("expected coerced int 6, got %#v", out["min_likelihood"])
	}
}

func TestValidate_Bulk(t *testing.T) {
	for _, id := range []string{SchemaPersonBulk, SchemaCompanyBulk} {
		s := mustSchema(t, id)
		t.Run(id, func(t *testing.T) {
			_, err := Validate(s, Params{"requests": []any{}})
			assertCode(t, err, CodeCrossFieldViolation)

			_, err = Validate(s, Params{"pretty": true})
			assertCode(t, err, CodeCrossFieldViolation)

			_, err = Validate(s, Params{"requests": []any{Params{"params": Params{}}}})
			assertCode(t, err, CodeCrossFieldViolation)
			if e := err.(*Error); e.Details["field"] != "requests[0].params" {
				t.Errorf("expected nested path, got %v", e.Details)
			}

			_, err = Validate(s, Params{"requests": []any{Params{"metadata": Params{"id": 1}}}})
			assertCode(t, err, CodeCrossFieldViolation)

			_, err = Validate(s, Params{"requests": []any{Params{"params": Params{"bogus": "x"}}}})
			assertCode(t, err, CodeUnknownField)

			out, err := Validate(s, Params{
				"requests": []map[string]any{
					{"metadata": map[string]any{"user_id": "123"}, "params": map[string]any{"name": "google"}},
				},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			reqs, ok := out["requests"].([]any)
			if !ok || len(reqs) != 1 {
				t.Fatalf("expected one normalized request, got %#v", out["requests"])
			}
		})
	}
}

func TestValidate_BulkEntrySkipsIdentityRule(t *testing.T) {
	// country alone is not enough for company/enrich, but is accepted per entry.
	s := mustSchema(t, SchemaCompanyBulk)
	if _, err := Validate(s, Params{"requests": []any{Params{"params": Params{"country": "us"}}}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_BulkEntryAcceptsEnrichmentOptions(t *testing.T) {
	tests := []struct {
		id     string
		base   string
		params Params
	}{
		{SchemaPersonBulk, SchemaPersonEnrichment, Params{"profile": "linkedin.com/in/seanthorne", "min_likelihood": 5, "required": "emails"}},
		{SchemaCompanyBulk, SchemaCompanyEnrichment, Params{"website": "google.com", "required": "website", "include_if_matched": true, "pretty": true}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if _, err := Validate(mustSchema(t, tt.base), tt.params); err != nil {
				t.Fatalf("base schema rejected params: %v", err)
			}
			out, err := Validate(mustSchema(t, tt.id), Params{"requests": []any{Params{"params": tt.params}}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			entry := out["requests"].([]any)[0].(Params)
			if len(entry["params"].(Params)) != len(tt.params) {
				t.Errorf("expected every entry param to survive, got %v", entry["params"])
			}

			bad := tt.params.Clone()
			bad["min_likelihood"] = 11
			_, err = Validate(mustSchema(t, tt.id), Params{"requests": []any{Params{"params": bad}}})
			assertCode(t, err, CodeRangeViolation)
		})
	}
}

func TestValidate_PersonPDLIDIsScalar(t *testing.T) {
	s := mustSchema(t, SchemaPersonEnrichment)
	if _, err := Validate(s, Params{"pdl_id": "qEnOZ5Oh0poWnQ1luFBfVw_0000"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	_, err := Validate(s, Params{"pdl_id": []string{"a", "b"}})
	assertCode(t, err, CodeTypeMismatch)
}

func TestValidate_IntOverflow(t *testing.T) {
	s := mustSchema(t, SchemaPersonEnrichment)

	tests := []struct {
		name  string
		value any
		code  ErrorCode
	}{
		{"max uint64", uint64(math.MaxUint64), CodeTypeMismatch},
		{"huge float", 1e20, CodeTypeMismatch},
		{"huge json number", json.Number("1e20"), CodeTypeMismatch},
		{"integral json float", json.Number("5.0"), ""},
		{"fractional json float", json.Number("5.5"), CodeTypeMismatch},
		{"large in-range uint", uint64(50), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Validate(s, Params{"email": "a@b.co", "size": tt.value})
			if tt.code != "" {
				assertCode(t, err, tt.code)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := out["size"].(int); !ok {
				t.Errorf("expected int size, got %#v", out["size"])
			}
		})
	}
}

func TestValidate_DatasetEnum(t *testing.T) {
	s := mustSchema(t, SchemaPersonSearch)

	tests := []struct {
		name    string
		dataset string
		want    string
		code    ErrorCode
	}{
		{"two tokens", "phone, mobile_phone", "phone,mobile_phone", ""},
		{"single", "resume", "resume", ""},
		{"negated", "all,-resume", "all,-resume", ""},
		{"invalid", "invalid", "", CodeEnumViolation},
		{"one invalid token", "phone,bogus", "", CodeEnumViolation},
		{"empty", " , ", "", CodeEnumViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Validate(s, Params{"sql": "SELECT 1", "dataset": tt.dataset})
			if tt.code != "" {
				assertCode(t, err, tt.code)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out["dataset"] != tt.want {
				t.Errorf("expected %q, got %#v", tt.want, out["dataset"])
			}
		})
	}
}

func TestValidate_Ranges(t *testing.T) {
	s := mustSchema(t, SchemaPersonEnrichment)

	tests := []struct {
		field string
		value any
		ok    bool
	}{
		{"min_likelihood", 0, false},
		{"min_likelihood", 1, true},
		{"min_likelihood", 10, true},
		{"min_likelihood", 11, false},
		{"min_likelihood", "11", false},
		{"size", 0, false},
		{"size", 1, true},
		{"size", 100, true},
		{"size", 101, false},
		{"size", json.Number("50"), true},
		{"size", 2.0, true},
	}

	for _, tt := range tests {
		params := Params{"email": "sean@peopledatalabs.com", tt.field: tt.value}
		_, err := Validate(s, params)
		if tt.ok {
			if err != nil {
				t.Errorf("%s=%v: unexpected error: %v", tt.field, tt.value, err)
			}
			continue
		}
		if CodeOf(err) != CodeRangeViolation {
			t.Errorf("%s=%v: expected range_violation, got %v", tt.field, tt.value, err)
		}
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	s := mustSchema(t, SchemaPersonEnrichment)

	tests := []struct {
		name   string
		params Params
	}{
		{"int from word", Params{"email": "a@b.co", "size": "ten"}},
		{"fractional int", Params{"email": "a@b.co", "size": 2.5}},
		{"bool from word", Params{"email": "a@b.co", "pretty": "yes"}},
		{"string from int", Params{"email": "a@b.co", "country": 7}},
		{"bad email", Params{"email": "not-an-email"}},
		{"list for scalar field", Params{"email": "a@b.co", "country": []string{"us", "ca"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(s, tt.params)
			assertCode(t, err, CodeTypeMismatch)
		})
	}
}

func TestValidate_ScalarOrList(t *testing.T) {
	s := mustSchema(t, SchemaPersonEnrichment)

	out, err := Validate(s, Params{"email": []string{"a@b.co", "c@d.co"}, "pretty": "TRUE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{"a@b.co", "c@d.co"}
	if !reflect.DeepEqual(out["email"], want) {
		t.Errorf("expected %v, got %#v", want, out["email"])
	}
	if out["pretty"] != true {
		t.Errorf("expected coerced bool, got %#v", out["pretty"])
	}

	_, err = Validate(s, Params{"email": []string{"a@b.co", "bad"}})
	assertCode(t, err, CodeTypeMismatch)
	if e := err.(*Error); e.Details["field"] != "email[1]" {
		t.Errorf("expected element path, got %v", e.Details)
	}
}

func TestValidate_RequiredField(t *testing.T) {
	_, err := Validate(mustSchema(t, SchemaAutocomplete), Params{"text": "goog"})
	assertCode(t, err, CodeCrossFieldViolation)
	if e := err.(*Error); e.Details["rule"] != "required:field" {
		t.Errorf("expected required rule, got %v", e.Details)
	}
}

func TestValidate_AutocompleteEnum(t *testing.T) {
	s := mustSchema(t, SchemaAutocomplete)

	if _, err := Validate(s, Params{"field": "company", "text": "goog", "size": 10}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	_, err := Validate(s, Params{"field": "planet"})
	assertCode(t, err, CodeEnumViolation)
	if e := err.(*Error); e.Details["allowed"] == nil {
		t.Error("expected allowed detail")
	}
}

func TestValidate_Changelog(t *testing.T) {
	s := mustSchema(t, SchemaPersonChangelog)

	_, err := Validate(s, Params{"origin_version": "31.0"})
	assertCode(t, err, CodeCrossFieldViolation)

	out, err := Validate(s, Params{
		"origin_version":  "31.0",
		"current_version": "31.1",
		"type":            "updated",
		"ids":             []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out["ids"], []any{"a", "b"}) {
		t.Errorf("unexpected ids %#v", out["ids"])
	}

	_, err = Validate(s, Params{"origin_version": "31.0", "current_version": "31.1", "ids": "a"})
	assertCode(t, err, CodeTypeMismatch)
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{5, 5, true},
		{int64(7), 7, true},
		{uint8(3), 3, true},
		{3.0, 3, true},
		{3.5, 0, false},
		{" 42 ", 42, true},
		{json.Number("9"), 9, true},
		{json.Number("9.5"), 0, false},
		{json.Number("9.0"), 9, true},
		{uint64(math.MaxUint64), 0, false},
		{uint(7), 7, true},
		{1e20, 0, false},
		{-1e20, 0, false},
		{math.NaN(), 0, false},
		{true, 0, false},
	}

	for _, tt := range tests {
		got, ok := toInt(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("toInt(%#v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
