package schema_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appcove/AS3/ir"
	"github.com/appcove/AS3/parse"
	"github.com/appcove/AS3/schema"
)

func val(t *testing.T, src string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return n
}

// summarize flattens a result to "path Kind" strings, keeping order.
func summarize(res *schema.Result) []string {
	out := make([]string, 0, len(res.Violations))
	for i := range res.Violations {
		v := &res.Violations[i]
		out = append(out, fmt.Sprintf("%s %s", v.Path.String(), v.Kind))
	}
	return out
}

func personSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Object(
		schema.F("name", schema.String(schema.Required(), schema.Pattern("^[A-Z][a-z]*$"))),
		schema.F("age", schema.Integer(schema.Required(), schema.Min(0))),
		schema.F("nickname", schema.String(schema.Nullable())),
		schema.F("balance", schema.Float()),
		schema.F("tags", schema.Sequence(schema.String(schema.MinLen(1)))),
		schema.F("joined", schema.Date()),
	).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return s
}

func TestValidate(t *testing.T) {
	s := personSchema(t)
	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "conformant",
			data: `{"name": "Bob", "age": 42, "nickname": null, "balance": 3, "tags": ["a", "b"], "joined": "2023-01-15"}`,
			want: []string{},
		},
		{
			name: "extra fields ignored",
			data: `{"name": "Bob", "age": 0, "shoeSize": 44, "pets": [{"species": "cat"}]}`,
			want: []string{},
		},
		{
			name: "wrong types in declaration order",
			data: `{"age": "x", "name": 5}`,
			want: []string{"$.name TypeMismatch", "$.age TypeMismatch"},
		},
		{
			name: "missing required",
			data: `{}`,
			want: []string{"$.name MissingRequiredField", "$.age MissingRequiredField"},
		},
		{
			name: "null for non-nullable",
			data: `{"name": "Bob", "age": null}`,
			want: []string{"$.age NotNullable"},
		},
		{
			name: "integer rejects float",
			data: `{"name": "Bob", "age": 2.5}`,
			want: []string{"$.age TypeMismatch"},
		},
		{
			name: "float accepts integer",
			data: `{"name": "Bob", "age": 1, "balance": 2}`,
			want: []string{},
		},
		{
			name: "constraints",
			data: `{"name": "bob", "age": -1, "tags": ["ok", ""]}`,
			want: []string{"$.name PatternMismatch", "$.age BelowMinimum", "$.tags[1] TooShort"},
		},
		{
			name: "bad date",
			data: `{"name": "Bob", "age": 1, "joined": "2023-1-5"}`,
			want: []string{"$.joined BadDate"},
		},
		{
			name: "sequence wants a sequence",
			data: `{"name": "Bob", "age": 1, "tags": "ab"}`,
			want: []string{"$.tags TypeMismatch"},
		},
		{
			name: "root type mismatch",
			data: `[1, 2]`,
			want: []string{"$ TypeMismatch"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := s.Validate(val(t, tc.data))
			got := summarize(res)
			if d := cmp.Diff(tc.want, got); d != "" {
				t.Errorf("violations (-want +got):\n%s", d)
			}
			if res.Valid() != (len(tc.want) == 0) {
				t.Errorf("Valid() = %v with %d violations", res.Valid(), len(res.Violations))
			}
		})
	}
}

func TestValidateNested(t *testing.T) {
	s, err := schema.Object(
		schema.F("person", schema.Object(
			schema.F("address", schema.Object(
				schema.F("city", schema.String(schema.Required())),
			).With(schema.Required())),
			schema.F("email", schema.String(schema.Required())),
		).With(schema.Required())),
	).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res := s.Validate(val(t, `{"person": {"address": {}}}`))
	want := []string{
		"$.person.address.city MissingRequiredField",
		"$.person.email MissingRequiredField",
	}
	if d := cmp.Diff(want, summarize(res)); d != "" {
		t.Errorf("violations (-want +got):\n%s", d)
	}
}

func TestValidateSuggestion(t *testing.T) {
	s, err := schema.Object(
		schema.F("name", schema.String(schema.Required())),
	).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res := s.Validate(val(t, `{"nmae": "Bob"}`))
	if len(res.Violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(res.Violations), res.Violations)
	}
	v := res.Violations[0]
	if v.Kind != schema.MissingRequiredField {
		t.Errorf("kind = %s, want MissingRequiredField", v.Kind)
	}
	if v.Suggestion != "nmae" {
		t.Errorf("suggestion = %q, want %q", v.Suggestion, "nmae")
	}
}

func TestValidateMismatchDetail(t *testing.T) {
	s, err := schema.Object(
		schema.F("dilec", schema.Integer(schema.Required())),
	).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res := s.Validate(val(t, `{"dilec": 5}`)); !res.Valid() {
		t.Errorf("unexpected violations %v", res.Violations)
	}

	res := s.Validate(val(t, `{"dilec": "ciao"}`))
	if len(res.Violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(res.Violations), res.Violations)
	}
	v := res.Violations[0]
	if v.Kind != schema.TypeMismatch || v.Expected != "Integer" || v.Actual != "String" {
		t.Errorf("violation = %+v, want TypeMismatch Integer/String", v)
	}
	if got := v.Path.String(); got != "$.dilec" {
		t.Errorf("path = %q, want %q", got, "$.dilec")
	}

	res = s.Validate(val(t, `{}`))
	if len(res.Violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(res.Violations), res.Violations)
	}
	v = res.Violations[0]
	if v.Kind != schema.MissingRequiredField || v.Field != "dilec" {
		t.Errorf("violation = %+v, want MissingRequiredField dilec", v)
	}
}

// Violations follow schema declaration order, so permuting data keys
// must not change the result.
func TestValidateOrderInvariance(t *testing.T) {
	s := personSchema(t)
	a := val(t, `{"name": "bob", "age": -1, "tags": [""]}`)
	b := val(t, `{"tags": [""], "age": -1, "name": "bob"}`)
	if d := cmp.Diff(summarize(s.Validate(a)), summarize(s.Validate(b))); d != "" {
		t.Errorf("permuted data changed the result (-a +b):\n%s", d)
	}
}

func TestValidateAnyAndNull(t *testing.T) {
	s, err := schema.Object(
		schema.F("blob", schema.Any()),
	).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for _, data := range []string{
		`{"blob": null}`,
		`{"blob": 3}`,
		`{"blob": {"deep": [1, "x"]}}`,
		`{}`,
	} {
		if res := s.Validate(val(t, data)); !res.Valid() {
			t.Errorf("%s: unexpected violations %v", data, res.Violations)
		}
	}
}

func TestValidateNilValue(t *testing.T) {
	s, err := schema.String().Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res := s.Validate(nil)
	if d := cmp.Diff([]string{"$ NotNullable"}, summarize(res)); d != "" {
		t.Errorf("violations (-want +got):\n%s", d)
	}
}

func TestValidateMapKeys(t *testing.T) {
	tests := []struct {
		name string
		key  *schema.Node
		data string
		want []string
	}{
		{
			name: "integer keys",
			key:  schema.Integer(schema.Min(1)),
			data: `{"1": "a", "0": "b", "x": "c"}`,
			want: []string{"$.0 BadMapKey", "$.x BadMapKey"},
		},
		{
			name: "bool keys",
			key:  schema.Bool(),
			data: `{"true": "a", "FALSE": "b", "0": "c", "yes": "d"}`,
			want: []string{"$.yes BadMapKey"},
		},
		{
			name: "date keys",
			key:  schema.Date(),
			data: `{"2023-01-15": "a", "tomorrow": "b"}`,
			want: []string{"$.tomorrow BadMapKey"},
		},
		{
			name: "string keys with pattern",
			key:  schema.String(schema.Pattern("^[a-z]+$")),
			data: `{"ok": "a", "Nope": "b"}`,
			want: []string{"$.Nope BadMapKey"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := schema.Map(tc.key, schema.String()).Compile()
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			res := s.Validate(val(t, tc.data))
			if d := cmp.Diff(tc.want, summarize(res)); d != "" {
				t.Errorf("violations (-want +got):\n%s", d)
			}
		})
	}
}

func TestValidateMapValues(t *testing.T) {
	s, err := schema.Map(schema.String(), schema.Integer(schema.Min(0))).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res := s.Validate(val(t, `{"a": 1, "b": -1, "c": "x"}`))
	want := []string{"$.b BelowMinimum", "$.c TypeMismatch"}
	if d := cmp.Diff(want, summarize(res)); d != "" {
		t.Errorf("violations (-want +got):\n%s", d)
	}
}

func TestValidateCheck(t *testing.T) {
	even, err := schema.Integer(schema.Check("value % 2 == 0")).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res := even.Validate(val(t, `4`)); !res.Valid() {
		t.Errorf("4: unexpected violations %v", res.Violations)
	}
	res := even.Validate(val(t, `3`))
	if d := cmp.Diff([]string{"$ CheckFailed"}, summarize(res)); d != "" {
		t.Errorf("violations (-want +got):\n%s", d)
	}

	pair, err := schema.Object(
		schema.F("lo", schema.Integer(schema.Required())),
		schema.F("hi", schema.Integer(schema.Required())),
	).With(schema.Check("value.lo <= value.hi")).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res := pair.Validate(val(t, `{"lo": 1, "hi": 2}`)); !res.Valid() {
		t.Errorf("ordered pair: unexpected violations %v", res.Violations)
	}
	res = pair.Validate(val(t, `{"lo": 5, "hi": 2}`))
	if d := cmp.Diff([]string{"$ CheckFailed"}, summarize(res)); d != "" {
		t.Errorf("violations (-want +got):\n%s", d)
	}
}

func TestValidateCheckSkipsNull(t *testing.T) {
	s, err := schema.Integer(schema.Nullable(), schema.Check("value > 0")).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res := s.Validate(val(t, `null`)); !res.Valid() {
		t.Errorf("null: unexpected violations %v", res.Violations)
	}
}

func TestResultErr(t *testing.T) {
	s := personSchema(t)
	if err := s.Validate(val(t, `{"name": "Bob", "age": 1}`)).Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
	err := s.Validate(val(t, `{}`)).Err()
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Err() = %T, want *ValidationError", err)
	}
	if len(verr.Violations) != 2 {
		t.Errorf("got %d violations, want 2", len(verr.Violations))
	}
}

func TestValidateConcurrent(t *testing.T) {
	s := personSchema(t)
	good := val(t, `{"name": "Bob", "age": 42}`)
	bad := val(t, `{"name": "bob", "age": -1}`)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if res := s.Validate(good); !res.Valid() {
					t.Errorf("good value flagged: %v", res.Violations)
					return
				}
				if res := s.Validate(bad); len(res.Violations) != 2 {
					t.Errorf("bad value: got %d violations, want 2", len(res.Violations))
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestValidateIdempotent(t *testing.T) {
	s := personSchema(t)
	v := val(t, `{"name": "bob", "age": -1, "tags": ["", "ok"]}`)
	first := summarize(s.Validate(v))
	for i := 0; i < 3; i++ {
		if d := cmp.Diff(first, summarize(s.Validate(v))); d != "" {
			t.Fatalf("run %d differs (-first +now):\n%s", i+1, d)
		}
	}
}
