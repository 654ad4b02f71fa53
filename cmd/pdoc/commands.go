package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
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
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "pdoc").
		WithSynopsis("pdoc [opts] command [opts]").
		WithDescription(mainDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return pdocMain(cfg, cc, args)
		}).
		WithSubs(
			ResolveCommand(cfg),
			NormalizeCommand(cfg),
			DiffCommand(cfg),
			GetCommand(cfg),
			CheckCommand(cfg),
			PatchCommand(cfg),
			ViewCommand(cfg))
}

const mainDescription = `pdoc resolves configuration documents.

A document may name an ancestor with 'extends' and a template for the
elements of its 'items' list with 'prototype'.  Both are either an inline
object or the name of a document, found under the configured roots, at the
configured base URL or in the configured S3 bucket.

Configuration is read from ./pdoc.yaml (or the file given with -config) and
from PDOC_ prefixed environment variables:

  roots: [".", "lib"]
  extensions: [".json", ".yaml", ".yml"]
  http:
    base_url: https://configs.example.com/docs
    retries: 3
    timeout: 30s
  s3:
    bucket: configs
    prefix: docs
  cache_size: 128
  typed_scalars: false
  reorder: false
  format: json`

func ResolveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResolveConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("resolve").
		WithAliases("r", "res").
		WithSynopsis("resolve [-n] [files or names]").
		WithDescription("expand extends and prototype references").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return resolveCmd(cfg, cc, args)
		})
	cfg.Resolve = cmd
	return cmd
}

func NormalizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NormalizeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("normalize").
		WithAliases("n", "norm").
		WithSynopsis("normalize [-n] [files or names]").
		WithDescription("reduce documents to their differences from their ancestors and prototypes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return normalize(cfg, cc, args)
		})
	cfg.Normalize = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-text] a b").
		WithDescription("show what b changes relative to a after resolving both").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <path> [files]").
		WithDescription("get elements of resolved documents, for example $.items[0].port").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		&cli.Opt{
			Name:        "a",
			Aliases:     []string{"assert"},
			Description: "boolean expression which must hold for each resolved document",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.assertOpt), "(expr)"),
		},
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-a expr [-a expr2]...] [files]").
		WithDescription("resolve documents, check ids and assertions, reporting all failures").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [-edit] [-m] <patchfile> [files]").
		WithDescription("apply a json patch to documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchCmd(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view documents as they are, in color on a terminal").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}
