package main

import (
	"fmt"
	"io"
	"os"

	"github.com/appcove/AS3/parse"
	"github.com/appcove/AS3/report"
	"github.com/appcove/AS3/schema"

	"github.com/scott-cotton/cli"
)

func verify(cfg *VerifyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Verify.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(cfg.SchemaFiles) == 0 {
		return fmt.Errorf("%w: verify requires at least one -s <schema-file>", cli.ErrUsage)
	}
	s, err := loadLayers(cfg.SchemaFiles)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	invalid := 0
	for _, file := range args {
		ok, err := verifyFile(cfg, cc, s, file)
		if err != nil {
			return err
		}
		if !ok {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d document(s)", errInvalid, invalid, len(args))
	}
	return nil
}

func loadLayers(files []string) (*schema.Schema, error) {
	docs := make([][]byte, 0, len(files))
	for _, file := range files {
		d, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	s, err := schema.ParseLayers(docs...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", files[0], err)
	}
	return s, nil
}

func verifyFile(cfg *VerifyConfig, cc *cli.Context, s *schema.Schema, file string) (bool, error) {
	var r io.Reader
	name := file
	if file == "-" {
		r = cc.In
		name = "stdin"
	} else {
		f, err := os.Open(file)
		if err != nil {
			return false, fmt.Errorf("error opening %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	return verifyReader(cfg, cc, s, name, r)
}

func verifyReader(cfg *VerifyConfig, cc *cli.Context, s *schema.Schema, name string, r io.Reader) (bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return false, fmt.Errorf("error reading %s: %w", name, err)
	}
	node, err := parse.Parse(data, cfg.parseOpts(name)...)
	if err != nil {
		return false, fmt.Errorf("parse error in %s: %w", name, err)
	}
	res := s.Validate(node)
	if cfg.Quiet {
		return res.Valid(), nil
	}
	opts := append(cfg.reportOpts(cc.Out), report.RenderSource(name))
	if err := report.Render(cc.Out, res, opts...); err != nil {
		return false, err
	}
	return res.Valid(), nil
}
