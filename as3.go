package as3

import (
	"github.com/appcove/AS3/debug"
	"github.com/appcove/AS3/format"
	"github.com/appcove/AS3/parse"
	"github.com/appcove/AS3/schema"
)

type VerifyConfig struct {
	DataFormat format.Format
	Overlays   [][]byte
}

type VerifyOpt func(*VerifyConfig)

// VerifyDataFormat selects how data decodes. The default is JSON.
func VerifyDataFormat(f format.Format) VerifyOpt {
	return func(c *VerifyConfig) { c.DataFormat = f }
}

// VerifyOverlays layers further schema documents over the base one, in
// order, with merge-patch semantics.
func VerifyOverlays(docs ...[]byte) VerifyOpt {
	return func(c *VerifyConfig) { c.Overlays = append(c.Overlays, docs...) }
}

// Verify decodes data, compiles the schema document, and validates one
// against the other. It returns nil for conformant data and a
// *schema.ValidationError listing every violation for non-conformant
// data. Any other error means the inputs could not be read: undecodable
// data, or a schema document that does not construct.
func Verify(data, schemaDoc []byte, opts ...VerifyOpt) error {
	cfg := &VerifyConfig{DataFormat: format.JSONFormat}
	for _, opt := range opts {
		opt(cfg)
	}
	s, err := schema.ParseLayers(append([][]byte{schemaDoc}, cfg.Overlays...)...)
	if err != nil {
		return err
	}
	v, err := parse.Parse(data, parse.ParseFormat(cfg.DataFormat))
	if err != nil {
		return err
	}
	res := s.Validate(v)
	if debug.Validate() {
		debug.Logf("verify: %d violation(s)\n", len(res.Violations))
	}
	return res.Err()
}
