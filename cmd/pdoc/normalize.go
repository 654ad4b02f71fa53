package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func normalize(cfg *NormalizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Normalize.Parse(cc, args)
	if err != nil {
		cfg.Normalize.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Names && len(args) == 0 {
		return fmt.Errorf("%w: normalize -n requires document names", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	r, l, err := cfg.resolver()
	if err != nil {
		return err
	}
	for i, arg := range args {
		doc, err := loadArg(cfg.MainConfig, cc, l, arg, cfg.Names)
		if err != nil {
			return err
		}
		res, err := r.Normalize(doc)
		if err != nil {
			return fmt.Errorf("error normalizing %s: %w", arg, err)
		}
		if err := output(cfg.MainConfig, cc.Out, res, i); err != nil {
			return err
		}
	}
	return nil
}
