package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/signadot/protodoc/debug"
	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/parse"

	"github.com/spf13/afero"
)

// DefaultExtensions are tried in order when a name carries no recognized
// extension.
var DefaultExtensions = []string{".json", ".yaml", ".yml"}

// FS loads documents from files.  Relative names are looked up under each
// of the roots in order.
type FS struct {
	fs         afero.Fs
	roots      []string
	extensions []string
	parseOpts  []parse.ParseOption
}

type FSOption func(*FS)

// FSRoots sets the directories relative names are searched in.  The default
// is the current directory.
func FSRoots(roots ...string) FSOption {
	return func(f *FS) { f.roots = roots }
}

func FSExtensions(exts ...string) FSOption {
	return func(f *FS) { f.extensions = exts }
}

func FSParseOptions(opts ...parse.ParseOption) FSOption {
	return func(f *FS) { f.parseOpts = opts }
}

func NewFS(fsys afero.Fs, opts ...FSOption) *FS {
	res := &FS{
		fs:         fsys,
		roots:      []string{"."},
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (f *FS) Load(name string) (*ir.Node, error) {
	for _, path := range f.candidates(name) {
		if isDir, _ := afero.IsDir(f.fs, path); isDir {
			continue
		}
		d, err := afero.ReadFile(f.fs, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not read %q: %w", path, err)
		}
		if debug.Load() {
			debug.Logf("loaded %s from %s", name, path)
		}
		opts := f.parseOpts
		if ff := format.FromExtension(path); ff != nil {
			opts = append([]parse.ParseOption{parse.ParseFormat(*ff)}, opts...)
		}
		node, err := parse.Parse(d, opts...)
		if err != nil {
			return nil, fmt.Errorf("could not decode %s: %w", path, err)
		}
		return node, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (f *FS) candidates(name string) []string {
	bases := []string{filepath.Clean(name)}
	if !filepath.IsAbs(name) {
		bases = bases[:0]
		for _, root := range f.roots {
			bases = append(bases, filepath.Join(root, name))
		}
	}
	if format.FromExtension(name) != nil {
		return bases
	}
	res := make([]string, 0, len(bases)*(len(f.extensions)+1))
	for _, base := range bases {
		res = append(res, base)
		for _, ext := range f.extensions {
			res = append(res, base+ext)
		}
	}
	return res
}
