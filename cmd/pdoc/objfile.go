package main

import (
	"fmt"
	"io"

	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/parse"

	"github.com/scott-cotton/cli"
)

// getObjFile reads and parses the document at path, or standard input if
// path is "-".  The format follows the file extension unless the input
// format was given.
func getObjFile(cfg *MainConfig, cc *cli.Context, path string) (*ir.Node, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := cfg.fs.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, cfg.parseOpts(path)...)
}

func inFormat(cfg *MainConfig, path string) *format.Format {
	if cfg.InFormat != nil {
		return cfg.InFormat
	}
	switch {
	case cfg.Y:
		f := format.YAMLFormat
		return &f
	case cfg.J:
		f := format.JSONFormat
		return &f
	}
	return format.FromExtension(path)
}
