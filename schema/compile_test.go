package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appcove/AS3/schema"
)

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Node
		want error
	}{
		{
			name: "duplicate field",
			node: schema.Object(
				schema.F("a", schema.String()),
				schema.F("a", schema.Integer()),
			),
			want: schema.ErrDuplicateField,
		},
		{
			name: "required root",
			node: schema.String(schema.Required()),
			want: schema.ErrRequiredRoot,
		},
		{
			name: "nil field schema",
			node: schema.Object(schema.F("a", nil)),
			want: schema.ErrBadDeclaration,
		},
		{
			name: "bad pattern",
			node: schema.String(schema.Pattern("(")),
			want: schema.ErrBadPattern,
		},
		{
			name: "bad check",
			node: schema.Integer(schema.Check("value +")),
			want: schema.ErrBadCheck,
		},
		{
			name: "negative length",
			node: schema.String(schema.MinLen(-1)),
			want: schema.ErrBadRange,
		},
		{
			name: "min above max",
			node: schema.Integer(schema.Min(2), schema.Max(1)),
			want: schema.ErrBadRange,
		},
		{
			name: "float bounds conflict",
			node: schema.Float(schema.Min(1), schema.MinF(2)),
			want: schema.ErrConflictingDirectives,
		},
		{
			name: "pattern on integer",
			node: schema.Integer(schema.Pattern("^a")),
			want: schema.ErrBadDirective,
		},
		{
			name: "integer bounds on string",
			node: schema.String(schema.Min(1)),
			want: schema.ErrBadDirective,
		},
		{
			name: "map without key",
			node: schema.Map(nil, schema.String()),
			want: schema.ErrBadDirective,
		},
		{
			name: "map key kind",
			node: schema.Map(schema.Object(), schema.String()),
			want: schema.ErrBadKeyKind,
		},
		{
			name: "marker on map key",
			node: schema.Map(schema.String(schema.Nullable()), schema.String()),
			want: schema.ErrBadDirective,
		},
		{
			name: "nested error carries path",
			node: schema.Object(
				schema.F("outer", schema.Object(
					schema.F("inner", schema.Integer(schema.Min(5), schema.Max(1))),
				)),
			),
			want: schema.ErrBadRange,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.node.Compile()
			if err == nil {
				t.Fatalf("Compile succeeded, want %v", tc.want)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCompileErrorPath(t *testing.T) {
	_, err := schema.Object(
		schema.F("outer", schema.Object(
			schema.F("inner", schema.Integer(schema.Min(5), schema.Max(1))),
		)),
	).Compile()
	var serr *schema.SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %T, want *SchemaError", err)
	}
	if got := serr.Path.String(); got != "$.outer.inner" {
		t.Errorf("path = %q, want %q", got, "$.outer.inner")
	}
}

// Compile clones the builder tree: mutating the builder afterwards must
// not reach into the compiled schema.
func TestCompileClones(t *testing.T) {
	n := schema.Object(
		schema.F("name", schema.String(schema.Required())),
	)
	s, err := n.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	n.Fields[0].Schema.Required = false
	n.Fields[0].Schema.Pattern = "("

	res := s.Validate(val(t, `{}`))
	if d := cmp.Diff([]string{"$.name MissingRequiredField"}, summarize(res)); d != "" {
		t.Errorf("violations (-want +got):\n%s", d)
	}
}

// Min and Max on a Float node are integer literals that widen at compile
// time.
func TestCompileFloatWidening(t *testing.T) {
	s, err := schema.Float(schema.Min(1), schema.Max(3)).Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res := s.Validate(val(t, `2.5`)); !res.Valid() {
		t.Errorf("unexpected violations %v", res.Violations)
	}
	res := s.Validate(val(t, `3.5`))
	if d := cmp.Diff([]string{"$ AboveMaximum"}, summarize(res)); d != "" {
		t.Errorf("violations (-want +got):\n%s", d)
	}
}

func TestKindText(t *testing.T) {
	for _, k := range schema.Kinds() {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatalf("%s: MarshalText: %v", k, err)
		}
		var back schema.Kind
		if err := back.UnmarshalText(d); err != nil {
			t.Fatalf("%s: UnmarshalText: %v", k, err)
		}
		if back != k {
			t.Errorf("round trip %s != %s", back, k)
		}
	}
	var k schema.Kind
	if err := k.UnmarshalText([]byte("Banana")); !errors.Is(err, schema.ErrUnknownKind) {
		t.Errorf("Banana: error = %v, want ErrUnknownKind", err)
	}
	for alias, want := range map[string]schema.Kind{
		"Decimal": schema.FloatKind,
		"Boolean": schema.BoolKind,
		"List":    schema.SequenceKind,
	} {
		got, err := schema.ParseKind(alias)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", alias, err)
		}
		if got != want {
			t.Errorf("ParseKind(%q) = %s, want %s", alias, got, want)
		}
	}
}
