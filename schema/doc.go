// Package schema provides AS3 schemas for describing and validating
// document trees.
//
// A schema mirrors the shape of the data it describes: a tree of typed
// nodes walked in lock-step with the value tree. Validation collects
// every violation in one pass rather than stopping at the first.
//
// # Declarations
//
// Schema documents are YAML with a single top-level Root key. Each
// declaration is either a short type token or a long-form mapping:
//
//	Root:
//	  +type: Object
//	  name: required String
//	  nickname: String?
//	  age:
//	    +type: Integer
//	    +min: 0
//	  children:
//	    +type: Object
//	    role: String
//
// Short tokens follow "[required ]TypeName[?]" where ? marks the value
// nullable. Kinds: Any, Bool, Integer, Float, String, Date, Sequence,
// Map, Object, with aliases Decimal, Boolean and List. Fields are
// optional unless marked required. Integer values satisfy Float
// declarations; the reverse does not hold.
//
// # Building In Code
//
//	s, err := schema.Object(
//		schema.F("name", schema.String(schema.Required())),
//		schema.F("age", schema.Integer(schema.Min(0))),
//	).Compile()
//	res := s.Validate(value)
//
// Compile vets the schema and reports construction errors; Validate
// never fails, it returns a Result listing violations in declaration
// order. A compiled Schema is immutable and safe for concurrent use.
//
// # Related Packages
//
//   - github.com/appcove/AS3/ir - document trees and paths
//   - github.com/appcove/AS3/parse - decoding documents
//   - github.com/appcove/AS3/report - rendering Results
package schema
