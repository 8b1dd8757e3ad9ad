package schema

import (
	"errors"
	"fmt"

	"github.com/appcove/AS3/ir"
)

// Construction errors. All of them surface before any validation begins
// and are never folded into a Result.
var (
	ErrBadSchemaDoc          = errors.New("bad schema document")
	ErrMissingRoot           = errors.New("schema document missing Root key")
	ErrUnknownKind           = errors.New("unknown type")
	ErrBadDeclaration        = errors.New("bad type declaration")
	ErrDuplicateField        = errors.New("duplicate field")
	ErrUnknownDirective      = errors.New("unknown directive")
	ErrBadDirective          = errors.New("directive not applicable")
	ErrConflictingDirectives = errors.New("conflicting directives")
	ErrBadPattern            = errors.New("invalid regex")
	ErrBadCheck              = errors.New("invalid check expression")
	ErrBadRange              = errors.New("invalid range")
	ErrBadKeyKind            = errors.New("unsupported map key type")
	ErrRequiredRoot          = errors.New("required marker on root")
)

// SchemaError locates a construction error within the schema document.
// Unwrap exposes the sentinel so errors.Is works through it.
type SchemaError struct {
	Path ir.Path
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func schemaErrf(p ir.Path, sentinel error, format string, args ...any) error {
	if format == "" {
		return &SchemaError{Path: p, Err: sentinel}
	}
	args = append([]any{sentinel}, args...)
	return &SchemaError{Path: p, Err: fmt.Errorf("%w: "+format, args...)}
}
