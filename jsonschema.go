package peopledatalabs

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

const schemaIDBase = "https://api.peopledatalabs.com/schemas/"

// JSONSchema describes s as a JSON Schema document. Cross-field rules have
// no structural equivalent and are listed in the description.
func (s *Schema) JSONSchema() *jsonschema.Schema {
	js := s.objectSchema()
	js.Version = jsonschema.Version
	js.ID = jsonschema.ID(schemaIDBase + s.id)
	js.Title = s.id
	return js
}

func (s *Schema) objectSchema() *jsonschema.Schema {
	js := &jsonschema.Schema{
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
	for _, f := range s.Fields() {
		js.Properties.Set(f.Name, fieldSchema(f))
		if f.Required {
			js.Required = append(js.Required, f.Name)
		}
	}

	var rules []string
	for _, r := range s.rules {
		if strings.HasPrefix(r.Name, "required:") {
			continue
		}
		rules = append(rules, r.Name+": "+r.Message)
	}
	if len(rules) > 0 {
		js.Description = "Rules: " + strings.Join(rules, "; ")
	}
	return js
}

func fieldSchema(f Field) *jsonschema.Schema {
	item := scalarSchema(f)
	switch f.Shape {
	case ShapeList:
		return &jsonschema.Schema{Type: "array", Items: item}
	case ShapeScalarOrList:
		return &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{item, {Type: "array", Items: scalarSchema(f)}},
		}
	}
	return item
}

func scalarSchema(f Field) *jsonschema.Schema {
	switch f.Type {
	case TypeEmail:
		return &jsonschema.Schema{Type: "string", Format: "email"}
	case TypeURL:
		return &jsonschema.Schema{Type: "string", Format: "uri"}
	case TypeInt:
		js := &jsonschema.Schema{Type: "integer"}
		if f.Range != nil {
			js.Minimum = json.Number(strconv.Itoa(f.Range.Min))
			js.Maximum = json.Number(strconv.Itoa(f.Range.Max))
		}
		return js
	case TypeBool:
		return &jsonschema.Schema{Type: "boolean"}
	case TypeObject:
		if f.Schema != nil {
			return f.Schema.objectSchema()
		}
		return &jsonschema.Schema{Type: "object"}
	case TypeEnum:
		if f.Delimited {
			desc := "comma separated list of: " + strings.Join(f.Enum, ", ")
			if f.Negatable {
				desc += " (prefix with - to exclude)"
			}
			return &jsonschema.Schema{Type: "string", Description: desc}
		}
		enum := make([]any, len(f.Enum))
		for i, l := range f.Enum {
			enum[i] = l
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	}
	return &jsonschema.Schema{Type: "string"}
}
