package schema

// A Type represents the dialect-neutral logical type of an attribute,
// prior to any dialect-specific rendering.
type Type uint8

// List of logical types.
const (
	TypeInvalid Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeUUID
	TypeArray
	TypeObject
	TypeBytes
	TypeUnstructured
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:      "invalid",
	TypeString:       "string",
	TypeInt:          "integer",
	TypeFloat:        "float",
	TypeBool:         "boolean",
	TypeTime:         "datetime",
	TypeUUID:         "uuid",
	TypeArray:        "array",
	TypeObject:       "object",
	TypeBytes:        "binary",
	TypeUnstructured: "unstructured",
}

// String returns the name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a recognized logical type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// ConstName returns the constant name of the type, usable in generated code.
func (t Type) ConstName() string {
	switch t {
	case TypeString:
		return "TypeString"
	case TypeInt:
		return "TypeInt"
	case TypeFloat:
		return "TypeFloat"
	case TypeBool:
		return "TypeBool"
	case TypeTime:
		return "TypeTime"
	case TypeUUID:
		return "TypeUUID"
	case TypeArray:
		return "TypeArray"
	case TypeObject:
		return "TypeObject"
	case TypeBytes:
		return "TypeBytes"
	case TypeUnstructured:
		return "TypeUnstructured"
	default:
		return "TypeInvalid"
	}
}

// MarshalText implements encoding.TextMarshaler. Types serialize by name
// so models round-trip through JSON with stable, readable type tags.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// to TypeInvalid rather than failing, so externally supplied models reach
// the validator with a locatable error instead of a decode failure.
func (t *Type) UnmarshalText(text []byte) error {
	*t = TypeFromName(string(text))
	return nil
}

// TypeFromName returns the logical type with the given name, or
// TypeInvalid if the name is not recognized.
func TypeFromName(name string) Type {
	for t, n := range typeNames {
		if n == name && Type(t) != TypeInvalid {
			return Type(t)
		}
	}
	return TypeInvalid
}
