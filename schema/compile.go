package schema

import (
	"regexp"

	"github.com/appcove/AS3/debug"
	"github.com/appcove/AS3/ir"
)

// Schema is a compiled, immutable schema tree. One Schema may be shared
// read-only across any number of concurrent Validate calls.
type Schema struct {
	root *Node
}

// Compile validates every construction invariant of the node tree, compiles
// regex and check constraints, and returns the resulting Schema. The input
// tree is cloned first, so later mutation of n leaves the Schema intact.
func (n *Node) Compile() (*Schema, error) {
	root := n.clone()
	if err := compileAt(root, ir.Path{}, true); err != nil {
		return nil, err
	}
	return &Schema{root: root}, nil
}

func compileAt(n *Node, p ir.Path, isRoot bool) error {
	if isRoot && n.Required {
		return schemaErrf(p, ErrRequiredRoot, "the root is not contained in an object")
	}
	if err := checkDirectives(n, p); err != nil {
		return err
	}
	if err := checkRanges(n, p); err != nil {
		return err
	}
	if n.Pattern != "" {
		re, err := regexp.Compile(n.Pattern)
		if err != nil {
			return schemaErrf(p, ErrBadPattern, "%q: %v", n.Pattern, err)
		}
		n.re = re
	}
	if n.CheckExpr != "" {
		prg, err := compileCheck(n.CheckExpr)
		if err != nil {
			return schemaErrf(p, ErrBadCheck, "%q: %v", n.CheckExpr, err)
		}
		n.check = prg
	}

	switch n.Kind {
	case AnyKind, BoolKind, IntegerKind, FloatKind, StringKind, DateKind:
	case SequenceKind:
		if n.Elem != nil {
			if err := compileAt(n.Elem, p.Field(dirValueType), false); err != nil {
				return err
			}
		}
	case MapKind:
		if n.Key == nil || n.Elem == nil {
			return schemaErrf(p, ErrBadDirective, "Map requires +KeyType and +ValueType")
		}
		switch n.Key.Kind {
		case StringKind, IntegerKind, BoolKind, DateKind:
		default:
			return schemaErrf(p.Field(dirKeyType), ErrBadKeyKind, "%s", n.Key.Kind)
		}
		if n.Key.Required || n.Key.Nullable {
			return schemaErrf(p.Field(dirKeyType), ErrBadDirective, "markers on a map key")
		}
		if err := compileAt(n.Key, p.Field(dirKeyType), false); err != nil {
			return err
		}
		if err := compileAt(n.Elem, p.Field(dirValueType), false); err != nil {
			return err
		}
	case ObjectKind:
		seen := make(map[string]bool, len(n.Fields))
		for _, f := range n.Fields {
			if seen[f.Name] {
				return schemaErrf(p, ErrDuplicateField, "%q", f.Name)
			}
			seen[f.Name] = true
			if f.Schema == nil {
				return schemaErrf(p.Field(f.Name), ErrBadDeclaration, "nil field schema")
			}
			if err := compileAt(f.Schema, p.Field(f.Name), false); err != nil {
				return err
			}
		}
	default:
		return schemaErrf(p, ErrUnknownKind, "kind %d", int(n.Kind))
	}
	if debug.Schema() {
		debug.Logf("schema: compiled %s node at %s\n", n.Kind.String(), p.String())
	}
	return nil
}

// checkDirectives rejects constraints that do not belong to the node's
// kind. Min/Max on a Float node widen to the float bounds here.
func checkDirectives(n *Node, p ir.Path) error {
	if n.Kind == FloatKind {
		if n.MinInt != nil {
			if n.MinFloat != nil {
				return schemaErrf(p, ErrConflictingDirectives, "integer and float minimum")
			}
			f := float64(*n.MinInt)
			n.MinFloat = &f
			n.MinInt = nil
		}
		if n.MaxInt != nil {
			if n.MaxFloat != nil {
				return schemaErrf(p, ErrConflictingDirectives, "integer and float maximum")
			}
			f := float64(*n.MaxInt)
			n.MaxFloat = &f
			n.MaxInt = nil
		}
	}
	if n.Pattern != "" && n.Kind != StringKind {
		return schemaErrf(p, ErrBadDirective, "+regex on %s", n.Kind)
	}
	if (n.MinLen != nil || n.MaxLen != nil) && n.Kind != StringKind {
		return schemaErrf(p, ErrBadDirective, "length bounds on %s", n.Kind)
	}
	if (n.MinInt != nil || n.MaxInt != nil) && n.Kind != IntegerKind {
		return schemaErrf(p, ErrBadDirective, "integer bounds on %s", n.Kind)
	}
	if (n.MinFloat != nil || n.MaxFloat != nil) && n.Kind != FloatKind {
		return schemaErrf(p, ErrBadDirective, "float bounds on %s", n.Kind)
	}
	if n.Elem != nil && n.Kind != SequenceKind && n.Kind != MapKind {
		return schemaErrf(p, ErrBadDirective, "+ValueType on %s", n.Kind)
	}
	if n.Key != nil && n.Kind != MapKind {
		return schemaErrf(p, ErrBadDirective, "+KeyType on %s", n.Kind)
	}
	if len(n.Fields) > 0 && n.Kind != ObjectKind {
		return schemaErrf(p, ErrBadDeclaration, "field declarations on %s", n.Kind)
	}
	return nil
}

func checkRanges(n *Node, p ir.Path) error {
	if n.MinLen != nil && *n.MinLen < 0 {
		return schemaErrf(p, ErrBadRange, "negative minimum length %d", *n.MinLen)
	}
	if n.MaxLen != nil && *n.MaxLen < 0 {
		return schemaErrf(p, ErrBadRange, "negative maximum length %d", *n.MaxLen)
	}
	if n.MinLen != nil && n.MaxLen != nil && *n.MinLen > *n.MaxLen {
		return schemaErrf(p, ErrBadRange, "minimum length %d above maximum %d", *n.MinLen, *n.MaxLen)
	}
	if n.MinInt != nil && n.MaxInt != nil && *n.MinInt > *n.MaxInt {
		return schemaErrf(p, ErrBadRange, "minimum %d above maximum %d", *n.MinInt, *n.MaxInt)
	}
	if n.MinFloat != nil && n.MaxFloat != nil && *n.MinFloat > *n.MaxFloat {
		return schemaErrf(p, ErrBadRange, "minimum %v above maximum %v", *n.MinFloat, *n.MaxFloat)
	}
	return nil
}
