// Package encode renders IR nodes as JSON or YAML text.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("alice")},
//	    {Key: "age", Val: ir.FromInt(30)},
//	})
//
//	// Compact JSON
//	d, err := encode.EncodeJSON(node)
//
//	// YAML
//	d, err := encode.EncodeYAML(node)
//
//	// Writer form with options
//	err := encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//
// Object field order is preserved in both formats. Floats always render
// with a float marker so they re-decode as floats.
//
// # Related Packages
//
//   - github.com/appcove/AS3/ir - IR representation
//   - github.com/appcove/AS3/parse - Parse text to IR
package encode
