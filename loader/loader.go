package loader

import (
	"errors"

	"github.com/signadot/protodoc/ir"
)

// ErrNotFound is returned by loaders which have no document under the
// requested name.
var ErrNotFound = errors.New("document not found")

// Loader maps a document name to a document.  A Loader must answer the same
// name with the same document for the duration of one resolution, and may be
// called re-entrantly.
type Loader interface {
	Load(name string) (*ir.Node, error)
}

type Func func(name string) (*ir.Node, error)

func (f Func) Load(name string) (*ir.Node, error) {
	return f(name)
}
