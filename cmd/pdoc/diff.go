package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/libmerge"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	y1, err := getObjFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	y2, err := getObjFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	var differs bool
	if cfg.Text {
		differs, err = diffText(cfg, cc, y1, y2)
	} else {
		differs, err = diffInputs(cfg, cc, y1, y2)
	}
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, cc *cli.Context, a, b *ir.Node) (bool, error) {
	var (
		d   *ir.Node
		err error
	)
	if cfg.Raw {
		d, err = libmerge.Diff(a, b)
	} else {
		r, _, rErr := cfg.resolver()
		if rErr != nil {
			return false, rErr
		}
		d, err = r.Difference(a, b)
	}
	if err != nil {
		return false, fmt.Errorf("error computing difference: %w", err)
	}
	if d == nil {
		return false, nil
	}
	w := cc.Out
	if err := encode.Encode(d, w, cfg.encOpts(w)...); err != nil {
		return false, err
	}
	return true, nil
}

// diffText writes a line diff of the encodings of a and b, resolved unless
// -raw is given.
func diffText(cfg *DiffConfig, cc *cli.Context, a, b *ir.Node) (bool, error) {
	if !cfg.Raw {
		r, _, err := cfg.resolver()
		if err != nil {
			return false, err
		}
		if a, err = r.Resolve(a); err != nil {
			return false, fmt.Errorf("error resolving first document: %w", err)
		}
		if b, err = r.Resolve(b); err != nil {
			return false, fmt.Errorf("error resolving second document: %w", err)
		}
	}
	w := cc.Out
	f := encode.FormatFromOpts(cfg.encOpts(w)...)
	texts := [2]string{}
	for i, node := range []*ir.Node{a, b} {
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(node, buf, encode.EncodeFormat(f)); err != nil {
			return false, err
		}
		texts[i] = buf.String()
	}
	return writeLineDiff(w, texts[0], texts[1], cfg.Color || isTerminal(w))
}
