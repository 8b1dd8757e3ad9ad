package encode

import "github.com/appcove/AS3/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeJSONCompact() EncodeOption {
	return EncodeIndent(0)
}

// EncodeIndent sets the JSON indent width; 0 means compact output. YAML
// output always uses the marshaler's indentation.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
