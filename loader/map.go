package loader

import (
	"fmt"

	"github.com/signadot/protodoc/ir"
)

// Map is an in memory loader.  Documents are cloned on the way out.
type Map map[string]*ir.Node

func (m Map) Load(name string) (*ir.Node, error) {
	node, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return ir.Clone(node), nil
}
