package peopledatalabs

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks raw against s and returns the normalized parameters.
//
// Pre-normalization rules run first against raw. Each supplied field must
// then be declared by s and match its shape, type, enum and range; numeric
// strings are coerced to int and "true"/"false" to bool. Nil values are
// treated as absent and never appear in the result. Post-normalization
// rules run last against the result.
//
// Validate has no side effects and is safe for concurrent use.
func Validate(s *Schema, raw Params) (Params, error) {
	return validateAt("", s, raw)
}

func validateAt(path string, s *Schema, raw Params) (Params, error) {
	for _, r := range s.rulesFor(PhasePre) {
		if !r.Check(raw) {
			return nil, ruleError(path, r)
		}
	}

	names := make([]string, 0, len(raw))
	for name, v := range raw {
		if v != nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	out := make(Params, len(names))
	for _, name := range names {
		fieldPath := joinPath(path, name)
		f, ok := s.fields[name]
		if !ok {
			return nil, fieldError(CodeUnknownField, fieldPath, "not accepted by %s", s.id)
		}
		v, err := normalizeField(fieldPath, f, raw[name])
		if err != nil {
			return nil, err
		}
		out[name] = v
	}

	for _, r := range s.rulesFor(PhasePost) {
		if !r.Check(out) {
			return nil, ruleError(path, r)
		}
	}
	return out, nil
}

func normalizeField(path string, f Field, v any) (any, error) {
	if isList(v) {
		if f.Shape == ShapeScalar {
			return nil, fieldError(CodeTypeMismatch, path, "expected a single %s, got a list", f.Type)
		}
		rv := reflect.ValueOf(v)
		out := make([]any, 0, rv.Len())
		for i := range rv.Len() {
			ev, err := normalizeScalar(fmt.Sprintf("%s[%d]", path, i), f, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, ev)
		}
		return out, nil
	}
	if f.Shape == ShapeList {
		return nil, fieldError(CodeTypeMismatch, path, "expected a list of %s", f.Type)
	}
	return normalizeScalar(path, f, v)
}

func normalizeScalar(path string, f Field, v any) (any, error) {
	switch f.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(path, f, v)
		}
		return s, nil

	case TypeEmail, TypeURL:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(path, f, v)
		}
		tag := "email"
		if f.Type == TypeURL {
			tag = "url"
		}
		if err := validate.Var(s, tag); err != nil {
			return nil, fieldError(CodeTypeMismatch, path, "must be a valid %s", f.Type)
		}
		return s, nil

	case TypeInt:
		n, ok := toInt(v)
		if !ok {
			return nil, mismatch(path, f, v)
		}
		if f.Range != nil && !f.Range.contains(n) {
			return nil, fieldError(CodeRangeViolation, path, "must be between %d and %d, got %d", f.Range.Min, f.Range.Max, n).
				WithDetails(map[string]any{"min": f.Range.Min, "max": f.Range.Max})
		}
		return n, nil

	case TypeBool:
		b, ok := toBool(v)
		if !ok {
			return nil, mismatch(path, f, v)
		}
		return b, nil

	case TypeObject:
		obj, ok := toObject(v)
		if !ok {
			return nil, mismatch(path, f, v)
		}
		if f.Schema != nil {
			return validateAt(path, f.Schema, obj)
		}
		return obj, nil

	case TypeEnum:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(path, f, v)
		}
		return normalizeEnum(path, f, s)
	}
	return nil, fieldError(CodeTypeMismatch, path, "unsupported type %s", f.Type)
}

func normalizeEnum(path string, f Field, s string) (string, error) {
	if !f.Delimited {
		if !f.allows(s) {
			return "", enumError(path, f, s)
		}
		return s, nil
	}
	var tokens []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		literal := tok
		if f.Negatable {
			literal = strings.TrimPrefix(tok, "-")
		}
		if !f.allows(literal) {
			return "", enumError(path, f, tok)
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return "", enumError(path, f, s)
	}
	return strings.Join(tokens, ","), nil
}

func enumError(path string, f Field, got string) *Error {
	return fieldError(CodeEnumViolation, path, "%q is not one of: %s", got, strings.Join(f.Enum, ", ")).
		WithDetail("allowed", f.Enum)
}

func mismatch(path string, f Field, v any) *Error {
	return fieldError(CodeTypeMismatch, path, "expected %s, got %T", f.Type, v)
}

func ruleError(path string, r Rule) *Error {
	msg := r.Message
	if path != "" {
		msg = path + ": " + msg
	}
	e := NewError(CodeCrossFieldViolation, msg).WithDetail("rule", r.Name)
	if path != "" {
		e = e.WithDetail("field", path)
	}
	return e
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return uintToInt(uint64(n))
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

func uintToInt(u uint64) (int, bool) {
	if u > math.MaxInt {
		return 0, false
	}
	return int(u), true
}

// floatToInt accepts integral values that fit in an int. 2^63 itself is
// representable as a float64 but not as an int64, hence the strict bound.
func floatToInt(f float64) (int, bool) {
	if math.Trunc(f) != f || math.IsInf(f, 0) || f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch {
		case strings.EqualFold(b, "true"):
			return true, true
		case strings.EqualFold(b, "false"):
			return false, true
		}
	}
	return false, false
}

func toObject(v any) (Params, bool) {
	switch m := v.(type) {
	case Params:
		return m, true
	case map[string]any:
		return Params(m), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(Params, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
