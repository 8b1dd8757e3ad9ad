package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/appcove/AS3/format"
	"github.com/appcove/AS3/ir"
)

var ErrParse = errors.New("parse error")

// Parse decodes one JSON or YAML document into an IR tree. The default
// format is JSON; use ParseYAML or ParseFormat to switch. Object field
// order follows the document; duplicate keys keep the last value at the
// first occurrence's position.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	switch pOpts.format {
	case format.JSONFormat:
		return parseJSON(d, pOpts)
	case format.YAMLFormat:
		return parseYAML(d, pOpts)
	default:
		return nil, fmt.Errorf("%w: %q", format.ErrBadFormat, pOpts.format)
	}
}

func parseJSON(d []byte, pOpts *parseOpts) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := jsonValue(dec, pOpts)
	if err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: trailing %v after document", ErrParse, tok)
	}
	return res, nil
}

func jsonValue(dec *json.Decoder, pOpts *parseOpts) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrParse)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return jsonObject(dec, pOpts)
		case '[':
			return jsonSequence(dec, pOpts)
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrParse, t.String())
		}
	case string:
		return ir.FromString(t), nil
	case bool:
		return ir.FromBool(t), nil
	case json.Number:
		node, err := ir.FromAny(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return node, nil
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
	}
}

func jsonObject(dec *json.Decoder, pOpts *parseOpts) (*ir.Node, error) {
	kvs := []ir.KeyVal{}
	at := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v", ErrParse, keyTok)
		}
		val, err := jsonValue(dec, pOpts)
		if err != nil {
			return nil, err
		}
		if i, dup := at[key]; dup {
			if pOpts.strictKeys {
				return nil, fmt.Errorf("%w: duplicate key %q", ErrParse, key)
			}
			kvs[i].Val = val
			continue
		}
		at[key] = len(kvs)
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return ir.FromKeyVals(kvs), nil
}

func jsonSequence(dec *json.Decoder, pOpts *parseOpts) (*ir.Node, error) {
	vals := []*ir.Node{}
	for dec.More() {
		val, err := jsonValue(dec, pOpts)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return ir.FromSlice(vals), nil
}
