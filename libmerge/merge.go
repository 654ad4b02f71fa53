package libmerge

import (
	"fmt"

	"github.com/signadot/protodoc/debug"
	"github.com/signadot/protodoc/ir"
)

// Merge returns new merged on top of old.  Scalars and nulls are replaced
// (new wins), objects are merged key by key and lists are merged by element
// identity.  Neither operand is modified and the result shares no nodes
// with them.
func Merge(old, new *ir.Node) (*ir.Node, error) {
	if debug.Merge() {
		debug.Logf("merge %s <- %s", old, new)
	}
	if ir.IsNull(old) || ir.IsNull(new) || old.Type.IsLeaf() || new.Type.IsLeaf() {
		return ir.Clone(new), nil
	}
	switch {
	case old.Type == ir.ObjectType && new.Type == ir.ObjectType:
		return mergeObject(old, new)
	case old.Type == ir.ArrayType && new.Type == ir.ArrayType:
		return mergeArray(old, new)
	case old.Type == ir.ObjectType && bearsItems(old):
		return mergeObject(old, wrapItems(new))
	case new.Type == ir.ObjectType && bearsItems(new):
		return mergeObject(wrapItems(old), new)
	}
	return nil, fmt.Errorf("%w: %s into %s at %s", ErrUnsupportedMerge, new.Type, old.Type, new.Path())
}

func mergeObject(old, new *ir.Node) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, len(old.Fields)+len(new.Fields))
	for i, field := range old.Fields {
		ov := old.Values[i]
		nv := ir.Get(new, field)
		if nv == nil {
			kvs = append(kvs, ir.KeyVal{Key: field, Val: ov.Clone()})
			continue
		}
		mv, err := Merge(ov, nv)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: field, Val: mv})
	}
	for i, field := range new.Fields {
		if old.Has(field) {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: field, Val: new.Values[i].Clone()})
	}
	return ir.FromKeyVals(kvs), nil
}

func mergeArray(old, new *ir.Node) (*ir.Node, error) {
	res := make([]identified, 0, len(old.Values)+len(new.Values))
	for _, v := range old.Values {
		elt, err := identify(v)
		if err != nil {
			return nil, err
		}
		res = append(res, elt)
	}
	for _, v := range new.Values {
		elt, err := identify(v)
		if err != nil {
			return nil, err
		}
		if elt.ok {
			if j := find(res, elt.id); j != -1 {
				mv, err := Merge(res[j].node, v)
				if err != nil {
					return nil, err
				}
				res[j].node = mv
				res[j].fresh = true
				continue
			}
		}
		res = append(res, elt)
	}
	vals := make([]*ir.Node, len(res))
	for i := range res {
		vals[i] = res[i].node
		if !res[i].fresh {
			vals[i] = vals[i].Clone()
		}
	}
	return ir.FromSlice(vals), nil
}
