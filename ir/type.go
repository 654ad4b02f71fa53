package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	UUIDType
	DateType
	TimeType
	DateTimeType
	ObjectType
	ArrayType
)

var typeNames = map[Type]string{
	NullType:     "Null",
	BoolType:     "Bool",
	IntType:      "Int",
	FloatType:    "Float",
	StringType:   "String",
	UUIDType:     "UUID",
	DateType:     "Date",
	TimeType:     "Time",
	DateTimeType: "DateTime",
	ObjectType:   "Object",
	ArrayType:    "Array",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, name := range typeNames {
		if name == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		FloatType,
		StringType,
		UUIDType,
		DateType,
		TimeType,
		DateTimeType,
		ObjectType,
		ArrayType,
	}
}

// IsLeaf reports whether nodes of type t are scalars, which are compared by
// value and never recursed into.
func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}
