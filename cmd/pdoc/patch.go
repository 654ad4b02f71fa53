package main

import (
	"fmt"

	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/patch"

	"github.com/scott-cotton/cli"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	if cfg.Edit && cfg.Merge {
		return fmt.Errorf("%w: -edit and -m are exclusive", cli.ErrUsage)
	}
	p, err := getObjFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding patch %s: %w", args[0], err)
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		doc, err := getObjFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		res, err := patchDoc(cfg, doc, p)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
		if err := output(cfg.MainConfig, cc.Out, res, i); err != nil {
			return err
		}
	}
	return nil
}

func patchDoc(cfg *PatchConfig, doc, p *ir.Node) (*ir.Node, error) {
	pOpts := cfg.conf.ParseOptions()
	switch {
	case cfg.Merge:
		return patch.Merge(doc, p, pOpts...)
	case cfg.Edit:
		r, _, err := cfg.resolver()
		if err != nil {
			return nil, err
		}
		return patch.Edit(r, doc, []byte(encode.MustString(p)), pOpts...)
	default:
		return patch.ApplyNode(doc, p, pOpts...)
	}
}
