package peopledatalabs

// ValueShape says whether a parameter takes a single value, a list, or either.
type ValueShape int

const (
	ShapeScalar ValueShape = iota
	ShapeScalarOrList
	ShapeList
)

func (s ValueShape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeScalarOrList:
		return "scalarOrList"
	case ShapeList:
		return "list"
	default:
		return "unknown"
	}
}

// ScalarType is the type of a single parameter value (or of each list element).
type ScalarType int

const (
	TypeString ScalarType = iota
	TypeInt
	TypeBool
	TypeEmail
	TypeURL
	TypeObject
	TypeEnum
)

func (t ScalarType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeEmail:
		return "email"
	case TypeURL:
		return "url"
	case TypeObject:
		return "object"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Range bounds an int field, both ends inclusive.
type Range struct {
	Min int
	Max int
}

func (r Range) contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Field is the constraint on one named parameter.
type Field struct {
	Name     string
	Shape    ValueShape
	Type     ScalarType
	Range    *Range
	Required bool

	// Enum holds the allowed literals when Type is TypeEnum.
	Enum []string
	// Delimited enums accept a comma separated list of literals in one string.
	Delimited bool
	// Negatable enums accept literals prefixed with "-" (exclusions).
	Negatable bool

	// Schema, when set on a TypeObject field, validates the nested object.
	Schema *Schema

	// Override lets this definition replace an earlier layer's field of the
	// same name even when the shapes differ.
	Override bool
}

// String declares an optional scalar string field.
func String(name string) Field {
	return Field{Name: name, Shape: ShapeScalar, Type: TypeString}
}

// Strings declares an optional string field that also accepts a list.
func Strings(name string) Field {
	return Field{Name: name, Shape: ShapeScalarOrList, Type: TypeString}
}

// Int declares an optional int field bounded by [lo, hi].
func Int(name string, lo, hi int) Field {
	return Field{Name: name, Shape: ShapeScalar, Type: TypeInt, Range: &Range{Min: lo, Max: hi}}
}

// Bool declares an optional bool field.
func Bool(name string) Field {
	return Field{Name: name, Shape: ShapeScalar, Type: TypeBool}
}

// Object declares an optional free-form object field.
func Object(name string) Field {
	return Field{Name: name, Shape: ShapeScalar, Type: TypeObject}
}

// Enum declares an optional field restricted to the given literals.
func Enum(name string, literals ...string) Field {
	return Field{Name: name, Shape: ShapeScalar, Type: TypeEnum, Enum: literals}
}

// AsRequired returns a copy of f marked as required.
func (f Field) AsRequired() Field {
	f.Required = true
	return f
}

// AsOverride returns a copy of f allowed to replace a conflicting parent field.
func (f Field) AsOverride() Field {
	f.Override = true
	return f
}

// WithShape returns a copy of f with the given shape.
func (f Field) WithShape(shape ValueShape) Field {
	f.Shape = shape
	return f
}

// WithType returns a copy of f with the given scalar type.
func (f Field) WithType(t ScalarType) Field {
	f.Type = t
	return f
}

func (f Field) allows(literal string) bool {
	for _, l := range f.Enum {
		if l == literal {
			return true
		}
	}
	return false
}
