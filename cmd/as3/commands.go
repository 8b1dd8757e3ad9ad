package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Color: "auto"}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "data format: json/j, yaml/y (default by file suffix)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "color",
			Description: "color reports: auto, always, never",
			Type:        cli.NamedFuncOpt(cfg.colorFunc(), "(when)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "as3").
		WithSynopsis("as3 [opts] command [opts]").
		WithDescription("as3 validates data documents against schema documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return asMain(cfg, cc, args)
		}).
		WithSubs(
			VerifyCommand(cfg),
			SchemaCommand(cfg))
}

func VerifyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &VerifyConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		&cli.Opt{
			Name:        "s",
			Aliases:     []string{"schema"},
			Description: "schema file, repeat to layer overlays in order",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.schemaOpt), "(file)"),
		}}

	cmd := cli.NewCommand("verify").
		WithAliases("v").
		WithSynopsis("verify -s <schema-file> [-s <overlay-file>]... [files]").
		WithDescription("validate data documents against a schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return verify(cfg, cc, args)
		})
	cfg.Verify = cmd
	return cmd
}

func SchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Schema, "schema").
		WithAliases("s", "sc").
		WithSynopsis("schema [-dump] <schema-file>").
		WithDescription("compile a schema document and report construction errors").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return schemaMain(cfg, cc, args)
		})
}
