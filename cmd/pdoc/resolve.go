package main

import (
	"fmt"
	"io"

	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/loader"
	"github.com/signadot/protodoc/resolve"

	"github.com/scott-cotton/cli"
)

func resolveCmd(cfg *ResolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resolve.Parse(cc, args)
	if err != nil {
		cfg.Resolve.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Names && len(args) == 0 {
		return fmt.Errorf("%w: resolve -n requires document names", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	r, _, err := cfg.resolver()
	if err != nil {
		return err
	}
	for i, arg := range args {
		var res *ir.Node
		if cfg.Names {
			res, err = r.LoadAndResolve(arg)
		} else {
			var doc *ir.Node
			doc, err = getObjFile(cfg.MainConfig, cc, arg)
			if err != nil {
				return fmt.Errorf("error decoding %s: %w", arg, err)
			}
			res, err = r.Resolve(doc)
		}
		if err != nil {
			return fmt.Errorf("error resolving %s: %w", arg, err)
		}
		if err := output(cfg.MainConfig, cc.Out, res, i); err != nil {
			return err
		}
	}
	return nil
}

// loadArg reads arg as a file, or loads it by name with l when names is
// set.
func loadArg(cfg *MainConfig, cc *cli.Context, l loader.Loader, arg string, names bool) (*ir.Node, error) {
	if !names {
		doc, err := getObjFile(cfg, cc, arg)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", arg, err)
		}
		return doc, nil
	}
	doc, err := l.Load(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", resolve.ErrUnresolvableReference, err)
	}
	return doc, nil
}

// output encodes the i-th result to w, preceded by a separator if it is
// not the first.
func output(cfg *MainConfig, w io.Writer, node *ir.Node, i int) error {
	if err := writeSep(w, i); err != nil {
		return fmt.Errorf("unable to write separator: %w", err)
	}
	if err := encode.Encode(node, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result %d: %w", i, err)
	}
	return nil
}
