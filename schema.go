package peopledatalabs

import (
	"slices"
)

// Phase tells the validator when a cross-field rule runs.
type Phase int

const (
	// PhasePre rules see the raw parameters, before any field is checked.
	PhasePre Phase = iota
	// PhasePost rules see the normalized parameters.
	PhasePost
)

// Rule is a check spanning more than one parameter.
type Rule struct {
	Name    string
	Phase   Phase
	Message string
	// Check reports whether p satisfies the rule.
	Check func(p Params) bool
}

// Layer is a named group of fields and rules. Schemas are composed from
// an ordered list of layers.
type Layer struct {
	Name   string
	Fields []Field
	Rules  []Rule
}

// Extend returns a new layer holding l's fields and rules followed by the
// given fields.
func (l Layer) Extend(name string, fields ...Field) Layer {
	return Layer{
		Name:   name,
		Fields: append(slices.Clone(l.Fields), fields...),
		Rules:  slices.Clone(l.Rules),
	}
}

// FieldsOnly returns a copy of l without its rules.
func (l Layer) FieldsOnly() Layer {
	return Layer{Name: l.Name, Fields: slices.Clone(l.Fields)}
}

// Schema is the validated set of parameters accepted by one endpoint.
// A Schema is immutable once composed and safe for concurrent use.
type Schema struct {
	id     string
	fields map[string]Field
	names  []string
	origin map[string]string
	rules  []Rule
}

// Compose merges layers into a Schema. Layers apply in order and a later
// definition of a field replaces an earlier one. Replacing a field with one
// of a different shape is an error unless the later field is marked
// Override.
//
// Every required field contributes a pre-normalization rule named
// "required:<field>", evaluated before the layers' own rules.
func Compose(id string, layers ...Layer) (*Schema, error) {
	s := &Schema{
		id:     id,
		fields: make(map[string]Field),
		origin: make(map[string]string),
	}
	var rules []Rule
	for _, layer := range layers {
		for _, f := range layer.Fields {
			if prev, ok := s.fields[f.Name]; ok && prev.Shape != f.Shape && !f.Override {
				return nil, Errorf(CodeInvalidConfig,
					"schema %s: layer %s redefines %s as %s, layer %s declared %s",
					id, layer.Name, f.Name, f.Shape, s.origin[f.Name], prev.Shape).
					WithDetail("field", f.Name)
			}
			s.fields[f.Name] = f
			s.origin[f.Name] = layer.Name
		}
		rules = append(rules, layer.Rules...)
	}

	s.names = make([]string, 0, len(s.fields))
	for name := range s.fields {
		s.names = append(s.names, name)
	}
	slices.Sort(s.names)

	for _, name := range s.names {
		if s.fields[name].Required {
			s.rules = append(s.rules, requiredRule(name))
		}
	}
	s.rules = append(s.rules, rules...)
	return s, nil
}

// MustCompose is like Compose but panics on error. It is meant for
// package-level registry construction.
func MustCompose(id string, layers ...Layer) *Schema {
	s, err := Compose(id, layers...)
	if err != nil {
		panic(err)
	}
	return s
}

// ID returns the schema identifier.
func (s *Schema) ID() string { return s.id }

// Field returns the constraint for name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Fields returns all field constraints sorted by name.
func (s *Schema) Fields() []Field {
	out := make([]Field, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.fields[name])
	}
	return out
}

// Origin returns the name of the layer that supplied the final definition
// of field name.
func (s *Schema) Origin(name string) string {
	return s.origin[name]
}

// Rules returns the schema's cross-field rules in evaluation order.
func (s *Schema) Rules() []Rule {
	return slices.Clone(s.rules)
}

func (s *Schema) rulesFor(phase Phase) []Rule {
	var out []Rule
	for _, r := range s.rules {
		if r.Phase == phase {
			out = append(out, r)
		}
	}
	return out
}
