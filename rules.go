package peopledatalabs

import (
	"fmt"
	"reflect"
	"strings"
)

// ExactlyOneOf requires exactly one of fields to carry a value.
func ExactlyOneOf(name string, fields ...string) Rule {
	return Rule{
		Name:    name,
		Phase:   PhasePre,
		Message: fmt.Sprintf("exactly one of %s must be provided", strings.Join(fields, ", ")),
		Check: func(p Params) bool {
			return countValued(p, fields) == 1
		},
	}
}

// AtLeastOneOf requires at least one of fields to carry a value.
func AtLeastOneOf(name string, fields ...string) Rule {
	return Rule{
		Name:    name,
		Phase:   PhasePre,
		Message: fmt.Sprintf("at least one of %s must be provided", strings.Join(fields, ", ")),
		Check: func(p Params) bool {
			return countValued(p, fields) > 0
		},
	}
}

// NoLists rejects parameter sets holding any list value.
func NoLists(name string) Rule {
	return Rule{
		Name:    name,
		Phase:   PhasePre,
		Message: "parameters do not accept multiple values",
		Check: func(p Params) bool {
			for _, v := range p {
				if isList(v) {
					return false
				}
			}
			return true
		},
	}
}

// NonEmptyList requires field to be a list with at least one element.
func NonEmptyList(name, field string) Rule {
	return Rule{
		Name:    name,
		Phase:   PhasePre,
		Message: fmt.Sprintf("%s must be a non-empty list", field),
		Check: func(p Params) bool {
			v, ok := p[field]
			if !ok || !isList(v) {
				return false
			}
			return reflect.ValueOf(v).Len() > 0
		},
	}
}

// NotEmpty requires at least one parameter to carry a value.
func NotEmpty(name string) Rule {
	return Rule{
		Name:    name,
		Phase:   PhasePre,
		Message: "parameters cannot be empty",
		Check: func(p Params) bool {
			for _, v := range p {
				if isValued(v) {
					return true
				}
			}
			return false
		},
	}
}

func requiredRule(field string) Rule {
	return Rule{
		Name:    "required:" + field,
		Phase:   PhasePre,
		Message: fmt.Sprintf("%s is required", field),
		Check: func(p Params) bool {
			v, ok := p[field]
			return ok && v != nil
		},
	}
}

func countValued(p Params, fields []string) int {
	n := 0
	for _, f := range fields {
		if isValued(p[f]) {
			n++
		}
	}
	return n
}

// isValued reports whether v counts as supplied: nil, empty strings and
// empty collections do not.
func isValued(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
