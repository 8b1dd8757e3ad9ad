package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	IntegerType
	FloatType
	StringType
	SequenceType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:     "Null",
		BoolType:     "Bool",
		IntegerType:  "Integer",
		FloatType:    "Float",
		StringType:   "String",
		SequenceType: "Sequence",
		ObjectType:   "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":     NullType,
		"Bool":     BoolType,
		"Integer":  IntegerType,
		"Float":    FloatType,
		"String":   StringType,
		"Sequence": SequenceType,
		"Object":   ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntegerType,
		FloatType,
		StringType,
		SequenceType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, SequenceType:
		return false
	default:
		return true
	}
}
