package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/appcove/AS3/format"
	"github.com/appcove/AS3/ir"
	"github.com/goccy/go-yaml"
)

var ErrEncode = errors.New("encode error")

type EncState struct {
	indent int
	format format.Format
}

// Encode writes node to w in the configured format (JSON by default).
// Object field order is preserved in both formats.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
		format: format.JSONFormat,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		d, err := jsonBytes(node, es.indent)
		if err != nil {
			return err
		}
		d = append(d, '\n')
		_, err = w.Write(d)
		return err
	case format.YAMLFormat:
		d, err := yamlBytes(node)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %q", format.ErrBadFormat, es.format)
	}
}

// EncodeJSON renders node as compact JSON, field order preserved.
func EncodeJSON(node *ir.Node) ([]byte, error) {
	return jsonBytes(node, 0)
}

// EncodeYAML renders node as YAML, field order preserved.
func EncodeYAML(node *ir.Node) ([]byte, error) {
	return yamlBytes(node)
}

func jsonBytes(node *ir.Node, indent int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(node, buf, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(node *ir.Node, buf *bytes.Buffer, indent, depth int) error {
	switch node.Type {
	case ir.NullType:
		buf.WriteString("null")
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(node.Bool))
	case ir.IntegerType:
		buf.WriteString(strconv.FormatInt(node.Int64, 10))
	case ir.FloatType:
		s, err := floatString(node.Float64)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case ir.StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
		buf.Write(d)
	case ir.SequenceType:
		if len(node.Values) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, val := range node.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONNL(buf, indent, depth+1)
			if err := writeJSON(val, buf, indent, depth+1); err != nil {
				return err
			}
		}
		writeJSONNL(buf, indent, depth)
		buf.WriteByte(']')
	case ir.ObjectType:
		if len(node.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i := range node.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONNL(buf, indent, depth+1)
			d, err := json.Marshal(node.Fields[i])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrEncode, err)
			}
			buf.Write(d)
			buf.WriteByte(':')
			if indent > 0 {
				buf.WriteByte(' ')
			}
			if err := writeJSON(node.Values[i], buf, indent, depth+1); err != nil {
				return err
			}
		}
		writeJSONNL(buf, indent, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: node type %s", ErrEncode, node.Type)
	}
	return nil
}

func writeJSONNL(buf *bytes.Buffer, indent, depth int) {
	if indent == 0 {
		return
	}
	buf.WriteByte('\n')
	for range indent * depth {
		buf.WriteByte(' ')
	}
}

// floatString keeps floats carrying a float marker so a rendered Float
// re-decodes as a Float, not an Integer.
func floatString(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: non-finite float %v", ErrEncode, f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

func yamlBytes(node *ir.Node) ([]byte, error) {
	v, err := toYAMLValue(node)
	if err != nil {
		return nil, err
	}
	d, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return d, nil
}

func toYAMLValue(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.IntegerType:
		return node.Int64, nil
	case ir.FloatType:
		if math.IsNaN(node.Float64) || math.IsInf(node.Float64, 0) {
			return nil, fmt.Errorf("%w: non-finite float %v", ErrEncode, node.Float64)
		}
		return node.Float64, nil
	case ir.StringType:
		return node.String, nil
	case ir.SequenceType:
		res := make([]any, len(node.Values))
		for i, val := range node.Values {
			v, err := toYAMLValue(val)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i := range node.Fields {
			v, err := toYAMLValue(node.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: node.Fields[i], Value: v}
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: node type %s", ErrEncode, node.Type)
	}
}
