package schema

import "github.com/appcove/AS3/ir"

// IR renders the compiled schema as a document tree in normal form:
// every declaration long form, markers and constraints as explicit
// directives, directives before fields, fields in declaration order.
// Encoding the result gives a schema document that parses back to an
// equivalent schema.
func (s *Schema) IR() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{{Key: rootKey, Val: nodeIR(s.root)}})
}

func nodeIR(n *Node) *ir.Node {
	kvs := []ir.KeyVal{{Key: dirType, Val: ir.FromString(n.Kind.String())}}
	if n.Required {
		kvs = append(kvs, ir.KeyVal{Key: dirRequired, Val: ir.FromBool(true)})
	}
	if n.Nullable {
		kvs = append(kvs, ir.KeyVal{Key: dirNullable, Val: ir.FromBool(true)})
	}
	if n.Pattern != "" {
		kvs = append(kvs, ir.KeyVal{Key: dirRegex, Val: ir.FromString(n.Pattern)})
	}
	if n.MinLen != nil {
		kvs = append(kvs, ir.KeyVal{Key: "+minLength", Val: ir.FromInt(int64(*n.MinLen))})
	}
	if n.MaxLen != nil {
		kvs = append(kvs, ir.KeyVal{Key: "+maxLength", Val: ir.FromInt(int64(*n.MaxLen))})
	}
	if n.MinInt != nil {
		kvs = append(kvs, ir.KeyVal{Key: dirMin, Val: ir.FromInt(*n.MinInt)})
	}
	if n.MaxInt != nil {
		kvs = append(kvs, ir.KeyVal{Key: dirMax, Val: ir.FromInt(*n.MaxInt)})
	}
	if n.MinFloat != nil {
		kvs = append(kvs, ir.KeyVal{Key: dirMin, Val: ir.FromFloat(*n.MinFloat)})
	}
	if n.MaxFloat != nil {
		kvs = append(kvs, ir.KeyVal{Key: dirMax, Val: ir.FromFloat(*n.MaxFloat)})
	}
	if n.CheckExpr != "" {
		kvs = append(kvs, ir.KeyVal{Key: dirCheck, Val: ir.FromString(n.CheckExpr)})
	}
	if n.Key != nil {
		kvs = append(kvs, ir.KeyVal{Key: dirKeyType, Val: nodeIR(n.Key)})
	}
	if n.Elem != nil {
		kvs = append(kvs, ir.KeyVal{Key: dirValueType, Val: nodeIR(n.Elem)})
	}
	for _, f := range n.Fields {
		kvs = append(kvs, ir.KeyVal{Key: f.Name, Val: nodeIR(f.Schema)})
	}
	return ir.FromKeyVals(kvs)
}
