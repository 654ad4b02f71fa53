package resolve

import (
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/libmerge"

	"go.uber.org/zap"
)

// resolveExtends replaces every object carrying "extends" with its
// ancestor's fields overridden by its own.  The extends value itself is
// kept as written.
func (r *Resolver) resolveExtends(node *ir.Node) (*ir.Node, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type {
	case ir.ArrayType:
		vals := make([]*ir.Node, len(node.Values))
		for i, v := range node.Values {
			rv, err := r.resolveExtends(v)
			if err != nil {
				return nil, err
			}
			vals[i] = rv
		}
		return ir.FromSlice(vals), nil
	case ir.ObjectType:
	default:
		return node.Clone(), nil
	}
	own, err := r.resolveFields(node)
	if err != nil {
		return nil, err
	}
	ext := ir.Get(node, ir.ExtendsKey)
	if ext == nil {
		return own, nil
	}
	r.log.Debug("resolving extends", zap.String("path", node.Path()))
	ancestor, err := r.ancestor(ext)
	if err != nil {
		return nil, err
	}
	merged, err := libmerge.Merge(ancestor, own)
	if err != nil {
		return nil, err
	}
	return withFirst(merged, ir.ExtendsKey, ext.Clone()), nil
}

// resolveFields resolves the values of obj other than extends.
func (r *Resolver) resolveFields(obj *ir.Node) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, len(obj.Fields))
	for i, field := range obj.Fields {
		if field == ir.ExtendsKey {
			continue
		}
		v, err := r.resolveExtends(obj.Values[i])
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: field, Val: v})
	}
	return ir.FromKeyVals(kvs), nil
}

// ancestor returns the extends resolved ancestor designated by the extends
// value ext, without its own extends key.
func (r *Resolver) ancestor(ext *ir.Node) (*ir.Node, error) {
	doc, err := r.reference(ext, ErrMalformedExtends)
	if err != nil {
		return nil, err
	}
	res, err := r.resolveExtends(doc)
	if err != nil {
		return nil, err
	}
	if res.Has(ir.ExtendsKey) {
		res = without(res, ir.ExtendsKey)
	}
	return res, nil
}
