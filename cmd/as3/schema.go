package main

import (
	"fmt"
	"io"
	"os"

	"github.com/appcove/AS3/encode"
	"github.com/appcove/AS3/format"
	"github.com/appcove/AS3/schema"

	"github.com/scott-cotton/cli"
)

func schemaMain(cfg *SchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schema.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: schema takes exactly one schema file", cli.ErrUsage)
	}

	file := args[0]
	var d []byte
	name := file
	if file == "-" {
		name = "stdin"
		d, err = io.ReadAll(cc.In)
	} else {
		d, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}

	s, err := schema.Parse(d)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if cfg.Dump {
		return encode.Encode(s.IR(), cc.Out, encode.EncodeFormat(format.YAMLFormat))
	}
	fmt.Fprintf(cc.Out, "%s: ok\n", name)
	return nil
}
