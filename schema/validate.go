package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/appcove/AS3/debug"
	"github.com/appcove/AS3/ir"
)

// dateRe accepts calendar-shaped YYYY-MM-DD strings. Month and day
// digits are range-checked; impossible dates like 2023-02-31 still
// pass, matching the Date kind's documented contract.
var dateRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

// Validate walks the schema tree in lock-step with the value tree and
// returns every violation found in one full traversal, in schema
// declaration order. It never mutates either tree and never fails:
// construction already vetted the schema, and all data problems are
// violations. A nil value validates like an explicit Null.
func (s *Schema) Validate(value *ir.Node) *Result {
	res := &Result{}
	if value == nil {
		value = ir.Null()
	}
	walk(s.root, value, ir.Path{}, res)
	return res
}

func walk(s *Node, v *ir.Node, p ir.Path, res *Result) {
	if debug.Validate() {
		debug.Logf("validate: %s against %s at %s\n", v.Type.String(), s.Kind.String(), p.String())
	}
	if v.Type == ir.NullType {
		if s.Kind != AnyKind && !s.Nullable {
			res.add(notNullable(p, s.Kind))
		}
		return
	}
	if !s.Kind.accepts(v.Type) {
		res.add(typeMismatch(p, s.Kind, v.Type))
		return
	}

	switch s.Kind {
	case AnyKind:
	case BoolKind:
	case IntegerKind:
		if s.MinInt != nil && v.Int64 < *s.MinInt {
			res.add(violationf(p, BelowMinimum, "value %d below minimum %d", v.Int64, *s.MinInt))
		}
		if s.MaxInt != nil && v.Int64 > *s.MaxInt {
			res.add(violationf(p, AboveMaximum, "value %d above maximum %d", v.Int64, *s.MaxInt))
		}
	case FloatKind:
		f := v.Float64
		if v.Type == ir.IntegerType {
			f = float64(v.Int64)
		}
		if s.MinFloat != nil && f < *s.MinFloat {
			res.add(violationf(p, BelowMinimum, "value %v below minimum %v", f, *s.MinFloat))
		}
		if s.MaxFloat != nil && f > *s.MaxFloat {
			res.add(violationf(p, AboveMaximum, "value %v above maximum %v", f, *s.MaxFloat))
		}
	case StringKind:
		checkString(s, v.String, p, res)
	case DateKind:
		if !dateRe.MatchString(v.String) {
			res.add(violationf(p, BadDate, "%q is not a date (YYYY-MM-DD)", v.String))
		}
	case SequenceKind:
		if s.Elem != nil {
			for i, elem := range v.Values {
				walk(s.Elem, elem, p.Index(i), res)
			}
		}
	case MapKind:
		for i := range v.Fields {
			key := v.Fields[i]
			checkMapKey(s.Key, key, p, res)
			walk(s.Elem, v.Values[i], p.Field(key), res)
		}
	case ObjectKind:
		for _, f := range s.Fields {
			child := ir.Get(v, f.Name)
			if child == nil {
				if f.Schema.Required {
					res.add(missingField(p.Field(f.Name), f.Name, suggest(f.Name, v.Fields)))
				}
				continue
			}
			walk(f.Schema, child, p.Field(f.Name), res)
		}
	default:
		res.add(violationf(p, UnexpectedSchemaShape, "schema node of kind %d cannot match any value", int(s.Kind)))
		return
	}

	if s.check != nil {
		ok, err := runCheck(s.check, v, p)
		if err != nil {
			res.add(violationf(p, CheckFailed, "check %q errored: %v", s.CheckExpr, err))
		} else if !ok {
			res.add(violationf(p, CheckFailed, "check %q failed", s.CheckExpr))
		}
	}
}

func checkString(s *Node, str string, p ir.Path, res *Result) {
	if s.re != nil && !s.re.MatchString(str) {
		res.add(violationf(p, PatternMismatch, "%q does not match %q", str, s.Pattern))
	}
	n := utf8.RuneCountInString(str)
	if s.MinLen != nil && n < *s.MinLen {
		res.add(violationf(p, TooShort, "string length %d below minimum %d", n, *s.MinLen))
	}
	if s.MaxLen != nil && n > *s.MaxLen {
		res.add(violationf(p, TooLong, "string length %d above maximum %d", n, *s.MaxLen))
	}
}

// checkMapKey validates one map key string against the key schema's kind.
// Keys arrive as strings in the value tree; non-string key kinds check the
// string's convertibility, mirroring how the keys were written in the
// source document.
func checkMapKey(key *Node, k string, p ir.Path, res *Result) {
	at := p.Field(k)
	switch key.Kind {
	case StringKind:
		sub := &Result{}
		checkString(key, k, at, sub)
		for i := range sub.Violations {
			res.add(badMapKey(at, k, "is invalid: "+sub.Violations[i].Message))
		}
		if key.check != nil {
			runKeyCheck(key, ir.FromString(k), k, at, res)
		}
	case IntegerKind:
		i, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			res.add(badMapKey(at, k, "is not a valid Integer"))
			return
		}
		if key.MinInt != nil && i < *key.MinInt {
			res.add(badMapKey(at, k, fmt.Sprintf("below minimum %d", *key.MinInt)))
		}
		if key.MaxInt != nil && i > *key.MaxInt {
			res.add(badMapKey(at, k, fmt.Sprintf("above maximum %d", *key.MaxInt)))
		}
		if key.check != nil {
			runKeyCheck(key, ir.FromInt(i), k, at, res)
		}
	case BoolKind:
		switch strings.ToLower(k) {
		case "true", "false", "1", "0":
		default:
			res.add(badMapKey(at, k, "is not a valid Bool"))
			return
		}
		if key.check != nil {
			runKeyCheck(key, ir.FromString(k), k, at, res)
		}
	case DateKind:
		if !dateRe.MatchString(k) {
			res.add(badMapKey(at, k, "is not a date (YYYY-MM-DD)"))
			return
		}
		if key.check != nil {
			runKeyCheck(key, ir.FromString(k), k, at, res)
		}
	}
}

func runKeyCheck(key *Node, v *ir.Node, k string, at ir.Path, res *Result) {
	ok, err := runCheck(key.check, v, at)
	if err != nil {
		res.add(badMapKey(at, k, fmt.Sprintf("check %q errored: %v", key.CheckExpr, err)))
		return
	}
	if !ok {
		res.add(badMapKey(at, k, fmt.Sprintf("fails check %q", key.CheckExpr)))
	}
}
