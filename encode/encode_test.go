package encode

import (
	"bytes"
	"math"
	"testing"

	"github.com/appcove/AS3/format"
	"github.com/appcove/AS3/ir"
	"github.com/appcove/AS3/parse"
	"github.com/google/go-cmp/cmp"
)

func testNode() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "b", Val: ir.FromInt(1)},
		{Key: "a", Val: ir.FromSlice([]*ir.Node{
			ir.FromFloat(2.5),
			ir.FromString("x"),
			ir.Null(),
			ir.FromBool(true),
		})},
		{Key: "c", Val: ir.FromKeyVals(nil)},
	})
}

func TestEncodeJSON(t *testing.T) {
	d, err := EncodeJSON(testNode())
	if err != nil {
		t.Fatalf("EncodeJSON() error: %v", err)
	}
	expected := `{"b":1,"a":[2.5,"x",null,true],"c":{}}`
	if string(d) != expected {
		t.Errorf("EncodeJSON() = %s, want %s", d, expected)
	}
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	node := testNode()
	d, err := EncodeJSON(node)
	if err != nil {
		t.Fatalf("EncodeJSON() error: %v", err)
	}
	back, err := parse.Parse(d)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if diff := cmp.Diff(node, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSONFloatMarker(t *testing.T) {
	d, err := EncodeJSON(ir.FromFloat(1.0))
	if err != nil {
		t.Fatalf("EncodeJSON() error: %v", err)
	}
	if string(d) != "1.0" {
		t.Errorf("EncodeJSON(Float 1.0) = %s, want 1.0", d)
	}
	back, err := parse.Parse(d)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if back.Type != ir.FloatType {
		t.Errorf("re-decoded type = %s, want Float", back.Type)
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	node := testNode()
	d, err := EncodeYAML(node)
	if err != nil {
		t.Fatalf("EncodeYAML() error: %v", err)
	}
	back, err := parse.Parse(d, parse.ParseYAML())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if diff := cmp.Diff(node, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeWriterIndent(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
	})
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeFormat(format.JSONFormat)); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Errorf("Encode() = %q, want %q", buf.String(), expected)
	}
}

func TestEncodeNonFinite(t *testing.T) {
	if _, err := EncodeJSON(ir.FromFloat(math.Inf(1))); err == nil {
		t.Errorf("EncodeJSON(+Inf) expected error")
	}
}
