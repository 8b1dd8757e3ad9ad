// Package report renders validation results for people and machines.
//
// Text mode prints a header line and one located violation per line,
// optionally styled through a Colors palette. JSON mode emits a stable
// object with valid and violations members for scripting.
//
// # Usage
//
//	res := s.Validate(value)
//	report.Render(os.Stdout, res,
//		report.RenderSource("data.json"),
//		report.RenderColors(report.NewColors()))
//
// # Related Packages
//
//   - github.com/appcove/AS3/schema - producing Results
package report
