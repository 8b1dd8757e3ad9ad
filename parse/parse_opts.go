package parse

import (
	"github.com/appcove/AS3/format"
)

type parseOpts struct {
	format     format.Format
	strictKeys bool
}

type ParseOption func(*parseOpts)

func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseStrictKeys makes duplicate object keys a parse error instead of
// keeping the last value.
func ParseStrictKeys() ParseOption {
	return func(o *parseOpts) { o.strictKeys = true }
}
