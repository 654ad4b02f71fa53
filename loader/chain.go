package loader

import (
	"errors"
	"fmt"

	"github.com/signadot/protodoc/ir"
)

// Chain tries each loader in turn, moving on only when a loader reports
// ErrNotFound.
type Chain []Loader

func (c Chain) Load(name string) (*ir.Node, error) {
	for _, l := range c {
		node, err := l.Load(name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return node, err
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}
