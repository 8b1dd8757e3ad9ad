package schema

import (
	"fmt"
	"strings"

	"github.com/appcove/AS3/encode"
	"github.com/appcove/AS3/ir"
	"github.com/appcove/AS3/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

const (
	rootKey      = "Root"
	requiredWord = "required"

	dirType      = "+type"
	dirRequired  = "+required"
	dirNullable  = "+nullable"
	dirCheck     = "+check"
	dirRegex     = "+regex"
	dirMin       = "+min"
	dirMax       = "+max"
	dirValueType = "+ValueType"
	dirKeyType   = "+KeyType"
)

// Parse reads a YAML schema document and compiles it. The document is
// a mapping with the single top-level key "Root" holding the root
// declaration. Duplicate mapping keys anywhere in the document are an
// error rather than last-one-wins, unlike data parsing.
func Parse(doc []byte) (*Schema, error) {
	n, err := parse.Parse(doc, parse.ParseYAML(), parse.ParseStrictKeys())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSchemaDoc, err)
	}
	root, err := fromDoc(n)
	if err != nil {
		return nil, err
	}
	return root.Compile()
}

// ParseLayers parses docs in order, merges each subsequent document
// onto the first with RFC 7386 merge-patch semantics, and compiles the
// result. A null declaration in a later layer removes the declaration
// from the earlier one. Merging round-trips through JSON, so layered
// schemas validate object fields in key-sorted order rather than
// first-document order.
func ParseLayers(docs ...[]byte) (*Schema, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents", ErrBadSchemaDoc)
	}
	if len(docs) == 1 {
		return Parse(docs[0])
	}
	base, err := docJSON(docs[0])
	if err != nil {
		return nil, err
	}
	for _, d := range docs[1:] {
		patch, err := docJSON(d)
		if err != nil {
			return nil, err
		}
		base, err = jsonpatch.MergePatch(base, patch)
		if err != nil {
			return nil, fmt.Errorf("%w: merge: %v", ErrBadSchemaDoc, err)
		}
	}
	merged, err := parse.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSchemaDoc, err)
	}
	root, err := fromDoc(merged)
	if err != nil {
		return nil, err
	}
	return root.Compile()
}

func docJSON(d []byte) ([]byte, error) {
	n, err := parse.Parse(d, parse.ParseYAML(), parse.ParseStrictKeys())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSchemaDoc, err)
	}
	return encode.EncodeJSON(n)
}

func fromDoc(doc *ir.Node) (*Node, error) {
	if doc.Type != ir.ObjectType {
		return nil, schemaErrf(ir.Path{}, ErrBadSchemaDoc, "document is %s, want a mapping", doc.Type)
	}
	decl := ir.Get(doc, rootKey)
	if decl == nil {
		return nil, schemaErrf(ir.Path{}, ErrMissingRoot, "no top-level %q key", rootKey)
	}
	return fromIR(decl, ir.Path{}.Field(rootKey))
}

// fromIR builds the raw schema node for one declaration. Scalars are
// short-form type tokens, mappings are long form. Compile vets the
// result, so fromIR only rejects shapes it cannot read at all.
func fromIR(decl *ir.Node, p ir.Path) (*Node, error) {
	switch decl.Type {
	case ir.StringType:
		n := &Node{}
		if err := applyToken(n, decl.String, p); err != nil {
			return nil, err
		}
		return n, nil
	case ir.ObjectType:
		return fromMapping(decl, p)
	default:
		return nil, schemaErrf(p, ErrBadDeclaration, "declaration is %s, want a type token or a mapping", decl.Type)
	}
}

// applyToken parses "[required ]TypeName[?]" onto n.
func applyToken(n *Node, tok string, p ir.Path) error {
	s := strings.TrimSpace(tok)
	if rest, ok := strings.CutPrefix(s, requiredWord+" "); ok {
		n.Required = true
		s = strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(s, "?"); ok {
		n.Nullable = true
		s = strings.TrimSpace(rest)
	}
	k, err := ParseKind(s)
	if err != nil {
		return schemaErrf(p, ErrUnknownKind, "%q", s)
	}
	n.Kind = k
	return nil
}

func fromMapping(decl *ir.Node, p ir.Path) (*Node, error) {
	n := &Node{}
	var (
		sawType     bool
		reqDir      *bool
		nulDir      *bool
		minLenSpell string
		maxLenSpell string
	)
	for i, key := range decl.Fields {
		val := decl.Values[i]
		if !strings.HasPrefix(key, "+") {
			child, err := fromIR(val, p.Field(key))
			if err != nil {
				return nil, err
			}
			n.Fields = append(n.Fields, F(key, child))
			continue
		}
		switch key {
		case dirType:
			tok, err := directiveString(val, p, key)
			if err != nil {
				return nil, err
			}
			if err := applyToken(n, tok, p); err != nil {
				return nil, err
			}
			sawType = true
		case dirRequired:
			b, err := directiveBool(val, p, key)
			if err != nil {
				return nil, err
			}
			reqDir = &b
		case dirNullable:
			b, err := directiveBool(val, p, key)
			if err != nil {
				return nil, err
			}
			nulDir = &b
		case dirCheck:
			s, err := directiveString(val, p, key)
			if err != nil {
				return nil, err
			}
			n.CheckExpr = s
		case dirRegex:
			s, err := directiveString(val, p, key)
			if err != nil {
				return nil, err
			}
			n.Pattern = s
		case dirMin:
			if err := directiveBound(val, p, key, &n.MinInt, &n.MinFloat); err != nil {
				return nil, err
			}
		case dirMax:
			if err := directiveBound(val, p, key, &n.MaxInt, &n.MaxFloat); err != nil {
				return nil, err
			}
		case dirValueType:
			child, err := fromIR(val, p.Field(key))
			if err != nil {
				return nil, err
			}
			n.Elem = child
		case dirKeyType:
			child, err := fromIR(val, p.Field(key))
			if err != nil {
				return nil, err
			}
			n.Key = child
		case "+minLength", "+min_length", "+MinLength":
			if minLenSpell != "" {
				return nil, schemaErrf(p, ErrConflictingDirectives, "%s and %s both set the minimum length", minLenSpell, key)
			}
			minLenSpell = key
			v, err := directiveInt(val, p, key)
			if err != nil {
				return nil, err
			}
			n.MinLen = &v
		case "+maxLength", "+max_length", "+MaxLength":
			if maxLenSpell != "" {
				return nil, schemaErrf(p, ErrConflictingDirectives, "%s and %s both set the maximum length", maxLenSpell, key)
			}
			maxLenSpell = key
			v, err := directiveInt(val, p, key)
			if err != nil {
				return nil, err
			}
			n.MaxLen = &v
		default:
			return nil, schemaErrf(p, ErrUnknownDirective, "%q", key)
		}
	}
	if !sawType {
		return nil, schemaErrf(p, ErrBadDeclaration, "missing %s directive", dirType)
	}
	if reqDir != nil {
		n.Required = *reqDir
	}
	if nulDir != nil {
		n.Nullable = *nulDir
	}
	return n, nil
}

func directiveString(val *ir.Node, p ir.Path, key string) (string, error) {
	if val.Type != ir.StringType {
		return "", schemaErrf(p, ErrBadDirective, "%s wants a String, got %s", key, val.Type)
	}
	return val.String, nil
}

func directiveBool(val *ir.Node, p ir.Path, key string) (bool, error) {
	if val.Type != ir.BoolType {
		return false, schemaErrf(p, ErrBadDirective, "%s wants a Bool, got %s", key, val.Type)
	}
	return val.Bool, nil
}

func directiveInt(val *ir.Node, p ir.Path, key string) (int, error) {
	if val.Type != ir.IntegerType {
		return 0, schemaErrf(p, ErrBadDirective, "%s wants an Integer, got %s", key, val.Type)
	}
	return int(val.Int64), nil
}

// directiveBound reads +min or +max into the integer slot or the float
// slot according to the literal's type. Compile reconciles the slots
// against the declared kind.
func directiveBound(val *ir.Node, p ir.Path, key string, ip **int64, fp **float64) error {
	switch val.Type {
	case ir.IntegerType:
		v := val.Int64
		*ip = &v
	case ir.FloatType:
		v := val.Float64
		*fp = &v
	default:
		return schemaErrf(p, ErrBadDirective, "%s wants a number, got %s", key, val.Type)
	}
	return nil
}
