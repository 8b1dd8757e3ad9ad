package schema

import (
	"github.com/appcove/AS3/ir"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// compileCheck compiles a +check predicate. No environment is declared, so
// identifiers resolve dynamically at run time against the value binding.
func compileCheck(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.AsBool())
}

// runCheck evaluates a compiled check against a value. The data value is
// bound as "value" in its plain Go form and the value's location as
// "path". A predicate that errors at run time fails the check.
func runCheck(prg *vm.Program, v *ir.Node, p ir.Path) (bool, error) {
	env := map[string]any{
		"value": ir.ToAny(v),
		"path":  p.String(),
	}
	out, err := expr.Run(prg, env)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, nil
	}
	return b, nil
}
