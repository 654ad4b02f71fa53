package libmerge

import (
	"fmt"

	"github.com/signadot/protodoc/ir"
)

// ID returns the identity of a list element: the value of its "id" key when
// the element is an object carrying one.  A non-string id is an error.
func ID(node *ir.Node) (string, bool, error) {
	if node == nil || node.Type != ir.ObjectType {
		return "", false, nil
	}
	v := ir.Get(node, ir.IDKey)
	if v == nil {
		return "", false, nil
	}
	if v.Type != ir.StringType {
		return "", false, fmt.Errorf("%w: %s id at %s", ErrNonStringID, v.Type, v.Path())
	}
	return v.String, true, nil
}

// identified pairs a list element with its identity, extracted once.
type identified struct {
	node *ir.Node
	id   string
	ok   bool
	// fresh is set when node is owned by the result being built.
	fresh bool
}

func identify(node *ir.Node) (identified, error) {
	id, ok, err := ID(node)
	if err != nil {
		return identified{}, err
	}
	return identified{node: node, id: id, ok: ok}, nil
}

func find(elts []identified, id string) int {
	for i := range elts {
		if elts[i].ok && elts[i].id == id {
			return i
		}
	}
	return -1
}

// bearsItems reports whether obj follows the items convention, under which
// a bare list stands for {items: list}.
func bearsItems(obj *ir.Node) bool {
	return obj.Has(ir.ItemsKey) || obj.Has(ir.PrototypeKey)
}

func wrapItems(list *ir.Node) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{{Key: ir.ItemsKey, Val: list.Clone()}})
}
