// Package format names the text formats AS3 reads and writes.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//
//	// Pick a format from a file name
//	f := format.DetectFormat("data.json")
//
// # Related Packages
//
//   - github.com/appcove/AS3/parse - Decode text to IR
//   - github.com/appcove/AS3/encode - Encode IR to text
package format
