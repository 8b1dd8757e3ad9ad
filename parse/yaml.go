package parse

import (
	"fmt"
	"strconv"

	"github.com/appcove/AS3/ir"
	"github.com/goccy/go-yaml"
)

func parseYAML(d []byte, pOpts *parseOpts) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromYAML(v, pOpts)
}

// fromYAML converts goccy's decoded form to IR. UseOrderedMap makes every
// mapping a yaml.MapSlice, so document field order survives.
func fromYAML(v any, pOpts *parseOpts) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		at := map[string]int{}
		for _, item := range x {
			key, err := yamlKey(item.Key)
			if err != nil {
				return nil, err
			}
			val, err := fromYAML(item.Value, pOpts)
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
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, xv := range x {
			val, err := fromYAML(xv, pOpts)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return ir.FromSlice(vals), nil
	default:
		node, err := ir.FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return node, nil
	}
}

// yamlKey renders a mapping key as a field name. YAML permits scalar keys
// of any type; the data model keys objects by string only.
func yamlKey(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case nil:
		return "null", nil
	default:
		return "", fmt.Errorf("%w: unsupported mapping key %v (%T)", ErrParse, k, k)
	}
}
