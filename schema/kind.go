package schema

import (
	"fmt"

	"github.com/appcove/AS3/ir"
)

// Kind is one case of the closed schema type enumeration. Surface syntax
// maps type tokens onto Kind at construction time; validation dispatches on
// Kind only, never on strings.
type Kind int

const (
	AnyKind Kind = iota
	BoolKind
	IntegerKind
	FloatKind
	StringKind
	DateKind
	SequenceKind
	MapKind
	ObjectKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		AnyKind:      "Any",
		BoolKind:     "Bool",
		IntegerKind:  "Integer",
		FloatKind:    "Float",
		StringKind:   "String",
		DateKind:     "Date",
		SequenceKind: "Sequence",
		MapKind:      "Map",
		ObjectKind:   "Object",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// ParseKind maps a type name to its Kind. The aliases Decimal, Boolean and
// List are accepted; String always renders the canonical name.
func ParseKind(v string) (Kind, error) {
	k, ok := map[string]Kind{
		"Any":      AnyKind,
		"Bool":     BoolKind,
		"Boolean":  BoolKind,
		"Integer":  IntegerKind,
		"Float":    FloatKind,
		"Decimal":  FloatKind,
		"String":   StringKind,
		"Date":     DateKind,
		"Sequence": SequenceKind,
		"List":     SequenceKind,
		"Map":      MapKind,
		"Object":   ObjectKind,
	}[v]
	if ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, v)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		AnyKind,
		BoolKind,
		IntegerKind,
		FloatKind,
		StringKind,
		DateKind,
		SequenceKind,
		MapKind,
		ObjectKind,
	}
}

// accepts reports whether a value of type t can satisfy kind k, before any
// constraint checks. Float accepts Integer values (widening); Integer does
// not accept Float values.
func (k Kind) accepts(t ir.Type) bool {
	switch k {
	case AnyKind:
		return true
	case BoolKind:
		return t == ir.BoolType
	case IntegerKind:
		return t == ir.IntegerType
	case FloatKind:
		return t == ir.FloatType || t == ir.IntegerType
	case StringKind, DateKind:
		return t == ir.StringType
	case SequenceKind:
		return t == ir.SequenceType
	case MapKind, ObjectKind:
		return t == ir.ObjectType
	default:
		return false
	}
}
