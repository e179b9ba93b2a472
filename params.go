package peopledatalabs

import (
	"net/url"

	"github.com/gorilla/schema"
)

var schemaEncoder = schema.NewEncoder()

// Params is a free-form set of named API parameters. Values may be scalars
// (string, bool, integers), lists of scalars, or nested objects.
type Params map[string]any

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ParamsFromValues converts url.Values into Params. Keys with a single value
// become scalars and repeated keys become lists.
func ParamsFromValues(values url.Values) Params {
	p := make(Params, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			p[k] = vs[0]
		default:
			p[k] = append([]string(nil), vs...)
		}
	}
	return p
}

// ParamsFromStruct encodes a struct tagged with `schema:"name"` into Params.
// Fields tagged omitempty are dropped when zero. Every value is encoded as
// a string; the validator coerces numbers and booleans back.
//
//	type lookup struct {
//	    Email string `schema:"email,omitempty"`
//	    Size  int    `schema:"size,omitempty"`
//	}
//	params, err := peopledatalabs.ParamsFromStruct(lookup{Email: "a@b.co", Size: 5})
func ParamsFromStruct(src any) (Params, error) {
	values := make(map[string][]string)
	if err := schemaEncoder.Encode(src, values); err != nil {
		return nil, Errorf(CodeTypeMismatch, "encode parameters: %v", err)
	}
	return ParamsFromValues(values), nil
}
