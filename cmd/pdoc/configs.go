package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/signadot/protodoc/config"
	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/loader"
	"github.com/signadot/protodoc/parse"
	"github.com/signadot/protodoc/resolve"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='configuration file (default ./pdoc.{yaml,yml,json})'"`
	Verbose    bool   `cli:"name=v aliases=verbose desc='log document loading to stderr'"`
	Color      bool   `cli:"name=color desc='encode with color'"`
	Compact    bool   `cli:"name=c aliases=compact desc='output json on one line'"`
	Typed      bool   `cli:"name=typed desc='parse uuid and date strings as typed scalars'"`
	Reorder    bool   `cli:"name=reorder desc='put keys of results in canonical order'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command

	fs   afero.Fs
	conf *config.Config
	log  *zap.Logger
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// setup loads the configuration file and applies the command line
// overrides to it.
func (cfg *MainConfig) setup() error {
	if cfg.fs == nil {
		cfg.fs = afero.NewOsFs()
	}
	conf, err := config.Load(cfg.fs, cfg.ConfigFile)
	if err != nil {
		return err
	}
	if cfg.Typed {
		conf.TypedScalars = true
	}
	if cfg.Reorder {
		conf.Reorder = true
	}
	cfg.conf = conf
	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("unable to create logger: %w", err)
	}
	cfg.log = log
	return nil
}

// resolver returns a resolver over the configured loader, and the loader.
func (cfg *MainConfig) resolver() (*resolve.Resolver, loader.Loader, error) {
	l, err := cfg.conf.Loader(context.Background(), cfg.fs, cfg.log)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create loader: %w", err)
	}
	return resolve.New(l, cfg.conf.ResolveOptions(cfg.log)...), l, nil
}

func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	res := cfg.conf.ParseOptions()
	if f := inFormat(cfg, path); f != nil {
		res = append(res, parse.ParseFormat(*f))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmt := cfg.conf.OutputFormat()
	switch {
	case cfg.Y:
		fmt = format.YAMLFormat
	case cfg.J:
		fmt = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmt = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmt),
		encode.EncodeCompact(cfg.Compact),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	if isTerminal(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ResolveConfig struct {
	*MainConfig
	Names bool `cli:"name=n aliases=names desc='arguments are document names for the loader'"`

	Resolve *cli.Command
}

type NormalizeConfig struct {
	*MainConfig
	Names bool `cli:"name=n aliases=names desc='arguments are document names for the loader'"`

	Normalize *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Text bool `cli:"name=text desc='show a line diff of the resolved documents'"`
	Raw  bool `cli:"name=raw desc='diff the documents without resolving them'"`

	Diff *cli.Command
}

type GetConfig struct {
	*MainConfig
	Raw bool `cli:"name=raw desc='query the documents without resolving them'"`

	Get *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Asserts []string

	Check *cli.Command
}

func (cfg *CheckConfig) assertOpt(_ *cli.Context, a string) (any, error) {
	cfg.Asserts = append(cfg.Asserts, a)
	return a, nil
}

type PatchConfig struct {
	*MainConfig
	Edit  bool `cli:"name=edit desc='patch the resolved documents and normalize the result'"`
	Merge bool `cli:"name=m aliases=merge desc='the patch is a json merge patch'"`

	Patch *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}
