package resolve

import (
	"fmt"

	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/libmerge"

	"go.uber.org/zap"
)

// expandPrototypes merges the prototype of each object carrying one under
// every element of its items.  The prototype and extends values are kept as
// written.
func (r *Resolver) expandPrototypes(node *ir.Node) (*ir.Node, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type {
	case ir.ArrayType:
		vals := make([]*ir.Node, len(node.Values))
		for i, v := range node.Values {
			ev, err := r.expandPrototypes(v)
			if err != nil {
				return nil, err
			}
			vals[i] = ev
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
		r.log.Debug("expanding prototype", zap.String("path", node.Path()))
		var err error
		proto, err = r.prototype(p)
		if err != nil {
			return nil, err
		}
	}
	kvs := make([]ir.KeyVal, len(node.Fields))
	for i, field := range node.Fields {
		v := node.Values[i]
		var (
			ev  *ir.Node
			err error
		)
		switch {
		case field == ir.ExtendsKey, field == ir.PrototypeKey:
			ev = v.Clone()
		case field == ir.ItemsKey && proto != nil:
			ev, err = r.expandItems(proto, v)
		default:
			ev, err = r.expandPrototypes(v)
		}
		if err != nil {
			return nil, err
		}
		kvs[i] = ir.KeyVal{Key: field, Val: ev}
	}
	return ir.FromKeyVals(kvs), nil
}

func (r *Resolver) expandItems(proto, items *ir.Node) (*ir.Node, error) {
	vals := make([]*ir.Node, len(items.Values))
	for i, m := range items.Values {
		merged, err := libmerge.Merge(proto, m)
		if err != nil {
			return nil, err
		}
		vals[i], err = r.expandPrototypes(merged)
		if err != nil {
			return nil, err
		}
	}
	return ir.FromSlice(vals), nil
}

// prototype returns the fully resolved template designated by the
// prototype value p, without its extends key.  Inline prototypes are
// expected to have had their extends resolved already.
func (r *Resolver) prototype(p *ir.Node) (*ir.Node, error) {
	doc, err := r.reference(p, ErrMalformedPrototype)
	if err != nil {
		return nil, err
	}
	if p.Type == ir.StringType {
		doc, err = r.resolveExtends(doc)
		if err != nil {
			return nil, err
		}
	}
	res, err := r.expandPrototypes(doc)
	if err != nil {
		return nil, err
	}
	if res.Has(ir.ExtendsKey) {
		res = without(res, ir.ExtendsKey)
	}
	return res, nil
}

func checkItems(obj *ir.Node) error {
	items := ir.Get(obj, ir.ItemsKey)
	if items == nil {
		return fmt.Errorf("%w: prototype without items at %s", ErrMalformedItems, obj.Path())
	}
	if items.Type != ir.ArrayType {
		return fmt.Errorf("%w: %s at %s", ErrMalformedItems, items.Type, items.Path())
	}
	return nil
}
