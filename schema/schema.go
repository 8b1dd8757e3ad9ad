package schema

import (
	"regexp"

	"github.com/expr-lang/expr/vm"
)

// Field is one named entry of an object schema.
type Field struct {
	Name   string
	Schema *Node
}

// F is shorthand for building a Field.
func F(name string, s *Node) Field {
	return Field{Name: name, Schema: s}
}

// Node is one schema tree node before compilation. Kind selects which of
// the remaining fields apply; Compile rejects combinations that do not
// belong to the kind. Required demands the field's presence in the
// enclosing data object; Nullable makes Null conformant in place of the
// kinded value.
type Node struct {
	Kind     Kind
	Required bool
	Nullable bool

	// ObjectKind, declaration order preserved
	Fields []Field

	// SequenceKind element schema (optional) and MapKind value schema
	Elem *Node
	// MapKind key schema
	Key *Node

	// StringKind
	Pattern string
	MinLen  *int
	MaxLen  *int

	// IntegerKind
	MinInt *int64
	MaxInt *int64

	// FloatKind
	MinFloat *float64
	MaxFloat *float64

	// any kind, expr-lang predicate over value
	CheckExpr string

	re    *regexp.Regexp
	check *vm.Program
}

// Option mutates a node under construction. Options are blind to kind;
// Compile enforces applicability.
type Option func(*Node)

func Required() Option {
	return func(n *Node) { n.Required = true }
}

func Nullable() Option {
	return func(n *Node) { n.Nullable = true }
}

func Pattern(re string) Option {
	return func(n *Node) { n.Pattern = re }
}

func MinLen(v int) Option {
	return func(n *Node) { n.MinLen = &v }
}

func MaxLen(v int) Option {
	return func(n *Node) { n.MaxLen = &v }
}

// Min sets an integer lower bound. On a Float node the bound widens to
// float at compile time.
func Min(v int64) Option {
	return func(n *Node) { n.MinInt = &v }
}

func Max(v int64) Option {
	return func(n *Node) { n.MaxInt = &v }
}

func MinF(v float64) Option {
	return func(n *Node) { n.MinFloat = &v }
}

func MaxF(v float64) Option {
	return func(n *Node) { n.MaxFloat = &v }
}

// Check attaches an expr-lang predicate evaluated against each conformant
// value, bound as "value"; "path" holds the value's path string.
func Check(src string) Option {
	return func(n *Node) { n.CheckExpr = src }
}

func Object(fields ...Field) *Node {
	return &Node{Kind: ObjectKind, Fields: fields}
}

func Any(opts ...Option) *Node {
	return newNode(AnyKind, opts)
}

func Bool(opts ...Option) *Node {
	return newNode(BoolKind, opts)
}

func Integer(opts ...Option) *Node {
	return newNode(IntegerKind, opts)
}

func Float(opts ...Option) *Node {
	return newNode(FloatKind, opts)
}

func String(opts ...Option) *Node {
	return newNode(StringKind, opts)
}

func Date(opts ...Option) *Node {
	return newNode(DateKind, opts)
}

func Sequence(elem *Node, opts ...Option) *Node {
	n := newNode(SequenceKind, opts)
	n.Elem = elem
	return n
}

func Map(key, val *Node, opts ...Option) *Node {
	n := newNode(MapKind, opts)
	n.Key = key
	n.Elem = val
	return n
}

// With applies options to an existing node and returns it, chainable
// after Object and the other constructors.
func (n *Node) With(opts ...Option) *Node {
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func newNode(k Kind, opts []Option) *Node {
	n := &Node{Kind: k}
	return n.With(opts...)
}

func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{
		Kind:      n.Kind,
		Required:  n.Required,
		Nullable:  n.Nullable,
		Pattern:   n.Pattern,
		CheckExpr: n.CheckExpr,
	}
	if n.Fields != nil {
		res.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			res.Fields[i] = Field{Name: f.Name, Schema: f.Schema.clone()}
		}
	}
	res.Elem = n.Elem.clone()
	res.Key = n.Key.clone()
	res.MinLen = clonePtr(n.MinLen)
	res.MaxLen = clonePtr(n.MaxLen)
	res.MinInt = clonePtr(n.MinInt)
	res.MaxInt = clonePtr(n.MaxInt)
	res.MinFloat = clonePtr(n.MinFloat)
	res.MaxFloat = clonePtr(n.MaxFloat)
	return res
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
