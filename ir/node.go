package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Node is one decoded value in a data tree. Type selects which of the
// remaining fields carry the value: Fields and Values for objects (parallel
// slices, Fields[i] names Values[i]), Values alone for sequences, and the
// scalar fields otherwise. Object field names are unique within a node.
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String  string
	Bool    bool
	Int64   int64
	Float64 float64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Int64 = y.Int64
	dst.Float64 = y.Float64
	if y.Fields != nil {
		dst.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  IntegerType,
		Int64: v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    FloatType,
		Float64: f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i]] = node.Values[i]
	}
	return res
}

// FromMap builds an object node from a Go map. Keys are stored in sorted
// order so the result is independent of map iteration.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	keys := slices.Sorted(maps.Keys(yMap))
	res.Fields = make([]string, len(keys))
	res.Values = make([]*Node, len(keys))
	for i, key := range keys {
		res.Fields[i] = key
		res.Values[i] = yMap[key]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object node keeping the given field order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]string, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Fields[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{Type: SequenceType}
	res.Values = ySlice
	return res
}

// Get returns the value of field in an object node, or nil when the field
// is absent. A present Null field returns a NullType node, not nil.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i] == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// FromAny converts a decoded Go value to a node. Maps sort their keys; a
// json.Number becomes an Integer when it parses exactly as int64, a Float
// otherwise.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		if x > 1<<63-1 {
			return FromFloat(float64(x)), nil
		}
		return FromInt(int64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrBadValue, x.String())
		}
		return FromFloat(f), nil
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		res := &Node{Type: ObjectType}
		res.Fields = make([]string, len(keys))
		res.Values = make([]*Node, len(keys))
		for i, key := range keys {
			val, err := FromAny(x[key])
			if err != nil {
				return nil, err
			}
			res.Fields[i] = key
			res.Values[i] = val
		}
		return res, nil
	case []any:
		vals := make([]*Node, len(x))
		for i, xv := range x {
			val, err := FromAny(xv)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return FromSlice(vals), nil
	default:
		return nil, fmt.Errorf("%w: unsupported Go type %T", ErrBadValue, v)
	}
}

// ToAny converts a node to plain Go values: nil, bool, int64, float64,
// string, []any, map[string]any. Object field order is not preserved.
func ToAny(y *Node) any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case IntegerType:
		return y.Int64
	case FloatType:
		return y.Float64
	case StringType:
		return y.String
	case SequenceType:
		res := make([]any, len(y.Values))
		for i, yv := range y.Values {
			res[i] = ToAny(yv)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i := range y.Fields {
			res[y.Fields[i]] = ToAny(y.Values[i])
		}
		return res
	default:
		return nil
	}
}
