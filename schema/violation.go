package schema

import (
	"fmt"
	"strings"

	"github.com/appcove/AS3/ir"
)

// ViolationKind classifies one validation violation.
type ViolationKind int

const (
	TypeMismatch ViolationKind = iota
	MissingRequiredField
	UnexpectedSchemaShape
	NotNullable
	BelowMinimum
	AboveMaximum
	TooShort
	TooLong
	PatternMismatch
	BadDate
	BadMapKey
	CheckFailed
)

func (k ViolationKind) String() string {
	s, ok := map[ViolationKind]string{
		TypeMismatch:          "TypeMismatch",
		MissingRequiredField:  "MissingRequiredField",
		UnexpectedSchemaShape: "UnexpectedSchemaShape",
		NotNullable:           "NotNullable",
		BelowMinimum:          "BelowMinimum",
		AboveMaximum:          "AboveMaximum",
		TooShort:              "TooShort",
		TooLong:               "TooLong",
		PatternMismatch:       "PatternMismatch",
		BadDate:               "BadDate",
		BadMapKey:             "BadMapKey",
		CheckFailed:           "CheckFailed",
	}[k]
	if ok {
		return s
	}
	return "<unknown violation kind>"
}

func (k ViolationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func ViolationKinds() []ViolationKind {
	return []ViolationKind{
		TypeMismatch,
		MissingRequiredField,
		UnexpectedSchemaShape,
		NotNullable,
		BelowMinimum,
		AboveMaximum,
		TooShort,
		TooLong,
		PatternMismatch,
		BadDate,
		BadMapKey,
		CheckFailed,
	}
}

// Violation is one concrete discrepancy between a value node and its
// schema node, located by path. Violations are created during traversal
// and never mutated afterwards.
type Violation struct {
	Path    ir.Path       `json:"path"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`

	// TypeMismatch detail
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	// MissingRequiredField and BadMapKey detail
	Field      string `json:"field,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (v *Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Result is the outcome of one validation call: the ordered list of every
// violation found in a single full traversal. An empty list means the
// value conforms.
type Result struct {
	Violations []Violation
}

func (r *Result) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns the result in error form: nil when valid, otherwise a
// *ValidationError carrying the violations.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Violations: r.Violations}
}

func (r *Result) add(v Violation) {
	r.Violations = append(r.Violations, v)
}

// ValidationError adapts an invalid Result for error-shaped call sites.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation violation(s)", len(e.Violations))
	for i := range e.Violations {
		sb.WriteString("\n  ")
		sb.WriteString(e.Violations[i].String())
	}
	return sb.String()
}

func typeMismatch(p ir.Path, expected Kind, actual ir.Type) Violation {
	return Violation{
		Path:     p,
		Kind:     TypeMismatch,
		Expected: expected.String(),
		Actual:   actual.String(),
		Message:  fmt.Sprintf("expected %s, got %s", expected, actual),
	}
}

func missingField(p ir.Path, name, suggestion string) Violation {
	msg := fmt.Sprintf("missing required field %q", name)
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return Violation{
		Path:       p,
		Kind:       MissingRequiredField,
		Field:      name,
		Suggestion: suggestion,
		Message:    msg,
	}
}

func notNullable(p ir.Path, expected Kind) Violation {
	return Violation{
		Path:     p,
		Kind:     NotNullable,
		Expected: expected.String(),
		Message:  fmt.Sprintf("null value for non-nullable %s", expected),
	}
}

func badMapKey(p ir.Path, key, detail string) Violation {
	return Violation{
		Path:    p,
		Kind:    BadMapKey,
		Field:   key,
		Message: fmt.Sprintf("map key %q %s", key, detail),
	}
}

func violationf(p ir.Path, kind ViolationKind, format string, args ...any) Violation {
	return Violation{
		Path:    p,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
