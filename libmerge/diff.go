package libmerge

import (
	"fmt"

	"github.com/signadot/protodoc/debug"
	"github.com/signadot/protodoc/ir"
)

// Diff returns the delta which, merged on top of old, yields new.  A nil
// result means there is no difference: at an object member it is omitted,
// which is distinct from an explicit null.
//
// Deltas carry no removals: keys of old missing from new and list elements
// of old with no counterpart in new are not represented.
// List elements of new without an id are copied whole, and Merge appends
// them, so Merge(old, Diff(old, new)) equals new only when the list elements
// of old and new all have ids.
func Diff(old, new *ir.Node) (*ir.Node, error) {
	res, err := diff(old, new)
	if debug.Diff() {
		debug.Logf("diff %s -> %s gave %s (err=%v)", old, new, res, err)
	}
	return res, err
}

func diff(old, new *ir.Node) (*ir.Node, error) {
	if old == nil || new == nil {
		return ir.Clone(new), nil
	}
	if ir.Equal(old, new) {
		return nil, nil
	}
	if old.Type.IsLeaf() || new.Type.IsLeaf() {
		return ir.Clone(new), nil
	}
	switch {
	case old.Type == ir.ObjectType && new.Type == ir.ObjectType:
		return diffObject(old, new)
	case old.Type == ir.ArrayType && new.Type == ir.ArrayType:
		return diffArray(old, new)
	case old.Type == ir.ObjectType && bearsItems(old):
		return diffObject(old, wrapItems(new))
	case new.Type == ir.ObjectType && bearsItems(new):
		return diffObject(wrapItems(old), new)
	}
	return nil, fmt.Errorf("%w: %s against %s at %s", ErrUnsupportedDiff, new.Type, old.Type, new.Path())
}

func diffObject(old, new *ir.Node) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, len(new.Fields))
	for i, field := range new.Fields {
		d, err := diff(ir.Get(old, field), new.Values[i])
		if err != nil {
			return nil, err
		}
		if d == nil {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: field, Val: d})
	}
	return ir.FromKeyVals(kvs), nil
}

func diffArray(old, new *ir.Node) (*ir.Node, error) {
	olds := make([]identified, len(old.Values))
	for i, v := range old.Values {
		elt, err := identify(v)
		if err != nil {
			return nil, err
		}
		olds[i] = elt
	}
	res := make([]*ir.Node, 0, len(new.Values))
	for _, v := range new.Values {
		elt, err := identify(v)
		if err != nil {
			return nil, err
		}
		if elt.ok {
			if j := find(olds, elt.id); j != -1 {
				d, err := diff(olds[j].node, v)
				if err != nil {
					return nil, err
				}
				if d == nil {
					continue
				}
				res = append(res, withID(d, elt.id))
				continue
			}
		}
		res = append(res, v.Clone())
	}
	return ir.FromSlice(res), nil
}

// withID puts the identity back at the front of an element delta so that
// Merge can match it again.
func withID(d *ir.Node, id string) *ir.Node {
	if d.Type != ir.ObjectType || d.Has(ir.IDKey) {
		return d
	}
	kvs := append([]ir.KeyVal{{Key: ir.IDKey, Val: ir.FromString(id)}}, d.KeyVals()...)
	return ir.FromKeyVals(kvs)
}
