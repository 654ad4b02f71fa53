package resolve

import (
	"slices"

	"github.com/signadot/protodoc/ir"
)

// Reorder returns a copy of doc with the keys of every object in canonical
// order: id, extends and prototype first, items last, and the other keys in
// between in their original order.
func Reorder(doc *ir.Node) *ir.Node {
	return reorder(doc, func(obj *ir.Node) []int {
		idx := make([]int, len(obj.Fields))
		for i := range idx {
			idx[i] = i
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			return keyRank(obj.Fields[a]) - keyRank(obj.Fields[b])
		})
		return idx
	})
}

func keyRank(field string) int {
	switch field {
	case ir.IDKey:
		return 0
	case ir.ExtendsKey:
		return 1
	case ir.PrototypeKey:
		return 2
	case ir.ItemsKey:
		return 4
	default:
		return 3
	}
}

// ReorderLike returns a copy of doc in which the keys of each object that
// also occur in the corresponding object of like come first, in like's
// order, followed by the remaining keys in their order.  List elements
// correspond by id, or else by position.
func ReorderLike(doc, like *ir.Node) *ir.Node {
	if doc == nil {
		return nil
	}
	return reorderLike(doc, like)
}

func reorderLike(doc, like *ir.Node) *ir.Node {
	switch doc.Type {
	case ir.ObjectType:
		if like == nil || like.Type != ir.ObjectType {
			return doc.Clone()
		}
		idx := make([]int, 0, len(doc.Fields))
		for _, field := range like.Fields {
			if i := doc.Index(field); i != -1 {
				idx = append(idx, i)
			}
		}
		for i, field := range doc.Fields {
			if !like.Has(field) {
				idx = append(idx, i)
			}
		}
		kvs := make([]ir.KeyVal, len(idx))
		for j, i := range idx {
			field := doc.Fields[i]
			kvs[j] = ir.KeyVal{Key: field, Val: reorderLike(doc.Values[i], ir.Get(like, field))}
		}
		return ir.FromKeyVals(kvs)
	case ir.ArrayType:
		if like == nil || like.Type != ir.ArrayType {
			return doc.Clone()
		}
		byID := map[string]*ir.Node{}
		for _, v := range like.Values {
			if id, ok := elementID(v); ok {
				byID[id] = v
			}
		}
		vals := make([]*ir.Node, len(doc.Values))
		for i, v := range doc.Values {
			var lv *ir.Node
			if id, ok := elementID(v); ok {
				lv = byID[id]
			} else if i < len(like.Values) {
				lv = like.Values[i]
			}
			vals[i] = reorderLike(v, lv)
		}
		return ir.FromSlice(vals)
	default:
		return doc.Clone()
	}
}

func elementID(v *ir.Node) (string, bool) {
	id := ir.Get(v, ir.IDKey)
	if id == nil || id.Type != ir.StringType {
		return "", false
	}
	return id.String, true
}

// reorder rebuilds doc with each object's keys permuted by perm.
func reorder(doc *ir.Node, perm func(*ir.Node) []int) *ir.Node {
	if doc == nil {
		return nil
	}
	switch doc.Type {
	case ir.ObjectType:
		idx := perm(doc)
		kvs := make([]ir.KeyVal, len(idx))
		for j, i := range idx {
			kvs[j] = ir.KeyVal{Key: doc.Fields[i], Val: reorder(doc.Values[i], perm)}
		}
		return ir.FromKeyVals(kvs)
	case ir.ArrayType:
		vals := make([]*ir.Node, len(doc.Values))
		for i, v := range doc.Values {
			vals[i] = reorder(v, perm)
		}
		return ir.FromSlice(vals)
	default:
		return doc.Clone()
	}
}
