package main

import (
	"fmt"
	"io"
	"os"

	"github.com/appcove/AS3/format"
	"github.com/appcove/AS3/parse"
	"github.com/appcove/AS3/report"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	JSON  bool `cli:"name=json aliases=j desc='report violations as JSON'"`
	Quiet bool `cli:"name=q aliases=quiet desc='suppress reports, only set the exit status'"`

	Color    string
	InFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) colorFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		switch v {
		case "auto", "always", "never":
			cfg.Color = v
			return v, nil
		}
		return nil, fmt.Errorf("%w: -color wants auto, always, or never, got %q", cli.ErrUsage, v)
	})
}

// parseOpts picks the data format for name: an explicit -I wins,
// otherwise the file suffix decides and unknown suffixes are JSON.
func (cfg *MainConfig) parseOpts(name string) []parse.ParseOption {
	fmat := format.DetectFormat(name)
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return []parse.ParseOption{parse.ParseFormat(fmat)}
}

func (cfg *MainConfig) reportOpts(w io.Writer) []report.RenderOption {
	if cfg.JSON {
		return []report.RenderOption{report.RenderJSON()}
	}
	switch cfg.Color {
	case "always":
		color.NoColor = false
		return []report.RenderOption{report.RenderColors(report.NewColors())}
	case "never":
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []report.RenderOption{report.RenderColors(report.NewColors())}
	}
	return nil
}

type VerifyConfig struct {
	*MainConfig
	SchemaFiles []string

	Verify *cli.Command
}

func (cfg *VerifyConfig) schemaOpt(_ *cli.Context, a string) (any, error) {
	cfg.SchemaFiles = append(cfg.SchemaFiles, a)
	return a, nil
}

type SchemaConfig struct {
	*MainConfig
	Dump bool `cli:"name=dump desc='print the compiled schema in normal form'"`

	Schema *cli.Command
}
