package main

import (
	"fmt"
	"io"

	"github.com/signadot/protodoc/eval"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/resolve"

	"github.com/hashicorp/go-multierror"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	r, _, err := cfg.resolver()
	if err != nil {
		return err
	}
	var errs *multierror.Error
	for _, arg := range args {
		doc, err := getObjFile(cfg.MainConfig, cc, arg)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", arg, err))
			continue
		}
		if err := checkDoc(r, doc, cfg.Asserts); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", arg, err))
			continue
		}
		cfg.log.Debug("checked", zap.String("file", arg))
	}
	if err := reportErrors(cc.Out, errs.ErrorOrNil()); err != nil {
		return err
	}
	return nil
}

// reportErrors writes err to w and turns it into a failing exit code.
func reportErrors(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if _, werr := fmt.Fprintln(w, err); werr != nil {
		return fmt.Errorf("unable to write errors: %w", werr)
	}
	return cli.ExitCodeErr(1)
}

// checkDoc resolves doc, then checks the ids of its lists and the
// assertions, reporting every failure.
func checkDoc(r *resolve.Resolver, doc *ir.Node, asserts []string) error {
	if err := resolve.CheckIDs(doc); err != nil {
		return err
	}
	res, err := r.Resolve(doc)
	if err != nil {
		return err
	}
	var errs *multierror.Error
	if err := resolve.CheckIDs(res); err != nil {
		errs = multierror.Append(errs, err)
	}
	for _, a := range asserts {
		if err := eval.Assert(res, a); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
