package resolve

import (
	"fmt"

	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/libmerge"

	"go.uber.org/zap"
)

// Normalize is the inverse of Resolve: given a resolved document, it
// returns the minimal document which resolves to it.  Items are reduced to
// what they add to their prototype, objects with extends to what they add
// to their ancestor, and wrappers left holding only items are flattened.
//
// Removals cannot be represented: a resolved item lacking a key its
// prototype provides will regain it when resolved again.
func (r *Resolver) Normalize(doc *ir.Node) (*ir.Node, error) {
	canon, err := r.normalizePrototypes(doc)
	if err != nil {
		return nil, err
	}
	res, err := r.normalizeExtends(nil, canon)
	if err != nil {
		return nil, err
	}
	res = Flatten(res)
	if r.reorder {
		res = Reorder(res)
	}
	return res, nil
}

// normalizePrototypes replaces, bottom up, each element of items by its
// difference with the prototype.  An element equal to the prototype becomes
// an empty object.
func (r *Resolver) normalizePrototypes(node *ir.Node) (*ir.Node, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type {
	case ir.ArrayType:
		vals := make([]*ir.Node, len(node.Values))
		for i, v := range node.Values {
			nv, err := r.normalizePrototypes(v)
			if err != nil {
				return nil, err
			}
			vals[i] = nv
		}
		return ir.FromSlice(vals), nil
	case ir.ObjectType:
	default:
		return node.Clone(), nil
	}
	var proto *ir.Node
	if p := ir.Get(node, ir.PrototypeKey); p != nil {
		if err := checkItems(node); err != nil {
			return nil, err
		}
		resolved, err := r.prototype(p)
		if err != nil {
			return nil, err
		}
		proto, err = r.normalizePrototypes(resolved)
		if err != nil {
			return nil, err
		}
	}
	kvs := make([]ir.KeyVal, len(node.Fields))
	for i, field := range node.Fields {
		v := node.Values[i]
		if field == ir.ExtendsKey {
			kvs[i] = ir.KeyVal{Key: field, Val: v.Clone()}
			continue
		}
		nv, err := r.normalizePrototypes(v)
		if err != nil {
			return nil, err
		}
		if field == ir.ItemsKey && proto != nil {
			r.log.Debug("normalizing items", zap.String("path", v.Path()))
			nv, err = r.itemDeltas(proto, nv)
			if err != nil {
				return nil, err
			}
		}
		kvs[i] = ir.KeyVal{Key: field, Val: nv}
	}
	return ir.FromKeyVals(kvs), nil
}

// itemDeltas reduces each element of items to what it adds to proto.  An
// element carrying extends resolves on top of its ancestor merged over
// proto, so it is reduced against that instead.  Objects with extends
// nested inside an element are left for normalizeExtends to reduce against
// their own ancestors.
func (r *Resolver) itemDeltas(proto, items *ir.Node) (*ir.Node, error) {
	vals := make([]*ir.Node, len(items.Values))
	for i, m := range items.Values {
		var (
			d   *ir.Node
			err error
		)
		switch {
		case m.Type == ir.ObjectType && m.Has(ir.ExtendsKey):
			d, err = r.extendedItemDelta(proto, m)
		case hasExtends(m):
			d, err = r.normalizeExtends(proto, m)
		default:
			d, err = libmerge.Diff(proto, m)
		}
		if err != nil {
			return nil, err
		}
		if d == nil {
			d = ir.FromKeyVals(nil)
		}
		vals[i] = d
	}
	return ir.FromSlice(vals), nil
}

func (r *Resolver) extendedItemDelta(proto, m *ir.Node) (*ir.Node, error) {
	ext := ir.Get(m, ir.ExtendsKey)
	anc, err := r.canonAncestor(ext)
	if err != nil {
		return nil, err
	}
	base, err := libmerge.Merge(proto, anc)
	if err != nil {
		return nil, err
	}
	d, err := r.normalizeExtends(base, without(m, ir.ExtendsKey))
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = ir.FromKeyVals(nil)
	}
	return withFirst(d, ir.ExtendsKey, ext.Clone()), nil
}

// normalizeExtends returns what node adds to base, the value it will be
// merged on top of when resolved (nil if none), with every object carrying
// extends reduced to what it adds to its ancestor.  A nil result means
// node adds nothing.
func (r *Resolver) normalizeExtends(base, node *ir.Node) (*ir.Node, error) {
	if node == nil {
		return nil, nil
	}
	if base != nil && ir.Equal(base, node) {
		return nil, nil
	}
	if ext := ir.Get(node, ir.ExtendsKey); ext != nil {
		return r.normalizeOverride(ext, node)
	}
	if !hasExtends(node) {
		return libmerge.Diff(base, node)
	}
	switch {
	case node.Type == ir.ObjectType && (ir.IsNull(base) || base.Type.IsLeaf()):
		return r.normalizeFields(nil, node)
	case node.Type == ir.ArrayType && (ir.IsNull(base) || base.Type.IsLeaf()):
		return r.normalizeElements(nil, node)
	case node.Type == ir.ObjectType && base.Type == ir.ObjectType:
		return r.normalizeFields(base, node)
	case node.Type == ir.ArrayType && base.Type == ir.ArrayType:
		return r.normalizeElements(base, node)
	case base.Type == ir.ObjectType && isItemsHolder(base):
		return r.normalizeFields(base, wrapItems(node))
	case node.Type == ir.ObjectType && isItemsHolder(node):
		return r.normalizeFields(wrapItems(base), node)
	}
	return nil, fmt.Errorf("%w: %s against %s at %s", libmerge.ErrUnsupportedDiff, node.Type, base.Type, node.Path())
}

// normalizeOverride reduces node, which extends ext, to ext and what node
// adds to the fully resolved ancestor.
func (r *Resolver) normalizeOverride(ext, node *ir.Node) (*ir.Node, error) {
	r.log.Debug("normalizing extends", zap.String("path", node.Path()))
	anc, err := r.canonAncestor(ext)
	if err != nil {
		return nil, err
	}
	d, err := r.normalizeExtends(anc, without(node, ir.ExtendsKey))
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = ir.FromKeyVals(nil)
	}
	return withFirst(d, ir.ExtendsKey, ext.Clone()), nil
}

// canonAncestor returns the ancestor designated by ext fully resolved, with
// its items reduced as normalizePrototypes does.
func (r *Resolver) canonAncestor(ext *ir.Node) (*ir.Node, error) {
	anc, err := r.ancestor(ext)
	if err != nil {
		return nil, err
	}
	anc, err = r.expandPrototypes(anc)
	if err != nil {
		return nil, err
	}
	return r.normalizePrototypes(anc)
}

func (r *Resolver) normalizeFields(base, node *ir.Node) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, len(node.Fields))
	for i, field := range node.Fields {
		d, err := r.normalizeExtends(ir.Get(base, field), node.Values[i])
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

// normalizeElements pairs elements of node with those of base by id, as
// Merge does.
func (r *Resolver) normalizeElements(base, node *ir.Node) (*ir.Node, error) {
	ids := map[string]*ir.Node{}
	if base != nil {
		for _, v := range base.Values {
			id, ok, err := libmerge.ID(v)
			if err != nil {
				return nil, err
			}
			if ok {
				if _, dup := ids[id]; !dup {
					ids[id] = v
				}
			}
		}
	}
	vals := make([]*ir.Node, 0, len(node.Values))
	for _, v := range node.Values {
		id, ok, err := libmerge.ID(v)
		if err != nil {
			return nil, err
		}
		var match *ir.Node
		if ok {
			match = ids[id]
		}
		d, err := r.normalizeExtends(match, v)
		if err != nil {
			return nil, err
		}
		if d == nil {
			continue
		}
		if match != nil && d.Type == ir.ObjectType && !d.Has(ir.IDKey) {
			d = withFirst(d, ir.IDKey, ir.FromString(id))
		}
		vals = append(vals, d)
	}
	return ir.FromSlice(vals), nil
}

func hasExtends(node *ir.Node) bool {
	found := false
	node.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost || found {
			return false, nil
		}
		if y.Type == ir.ObjectType && y.Has(ir.ExtendsKey) {
			found = true
		}
		return !found, nil
	})
	return found
}

func isItemsHolder(obj *ir.Node) bool {
	return obj.Has(ir.ItemsKey) || obj.Has(ir.PrototypeKey)
}

func wrapItems(list *ir.Node) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{{Key: ir.ItemsKey, Val: list.Clone()}})
}
