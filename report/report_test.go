package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/appcove/AS3/parse"
	"github.com/appcove/AS3/report"
	"github.com/appcove/AS3/schema"
)

func result(t *testing.T, data string) *schema.Result {
	t.Helper()
	s, err := schema.Object(
		schema.F("name", schema.String(schema.Required())),
		schema.F("age", schema.Integer(schema.Min(0))),
	).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	v, err := parse.Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s.Validate(v)
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, result(t, `{"age": -3}`), report.RenderSource("data.json"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "data.json: 2 violation(s)\n" +
		"  $.name: missing required field \"name\" [MissingRequiredField]\n" +
		"  $.age: value -3 below minimum 0 [BelowMinimum]\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderValid(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Render(&buf, result(t, `{"name": "Bob"}`)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); got != "ok\n" {
		t.Errorf("got %q, want %q", got, "ok\n")
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, result(t, `{"age": -3}`), report.RenderJSON())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var out struct {
		Valid      bool `json:"valid"`
		Violations []struct {
			Path string `json:"path"`
			Kind string `json:"kind"`
		} `json:"violations"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Valid {
		t.Error("valid = true, want false")
	}
	if len(out.Violations) != 2 {
		t.Fatalf("got %d violations, want 2", len(out.Violations))
	}
	if out.Violations[0].Path != "$.name" || out.Violations[0].Kind != "MissingRequiredField" {
		t.Errorf("first violation = %+v", out.Violations[0])
	}
}

func TestRenderJSONValid(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, result(t, `{"name": "Bob"}`), report.RenderJSON())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var out struct {
		Valid      bool  `json:"valid"`
		Violations []any `json:"violations"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !out.Valid || out.Violations == nil || len(out.Violations) != 0 {
		t.Errorf("got %+v, want valid with empty violations", out)
	}
}

// Styled rendering keeps the same content; whether escapes appear
// depends on the terminal, so only the text is asserted.
func TestRenderColored(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, result(t, `{"age": -3}`), report.RenderColors(report.NewColors()))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, part := range []string{"2 violation(s)", "missing required field", "below minimum 0"} {
		if !strings.Contains(buf.String(), part) {
			t.Errorf("output missing %q:\n%s", part, buf.String())
		}
	}
}
