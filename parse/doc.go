// Package parse decodes JSON and YAML text into IR nodes.
//
// # Usage
//
//	// Decode JSON (the default)
//	node, err := parse.Parse([]byte(`{"name": "alice", "age": 30}`))
//	if err != nil {
//	    return err
//	}
//
//	// Decode YAML
//	node, err := parse.Parse(data, parse.ParseYAML())
//
// Object field order follows the document. Numbers become Integer nodes
// when they parse exactly as int64 and Float nodes otherwise.
//
// # Related Packages
//
//   - github.com/appcove/AS3/ir - IR representation
//   - github.com/appcove/AS3/encode - Encode IR to text
package parse
