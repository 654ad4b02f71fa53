package resolve

import "github.com/signadot/protodoc/ir"

// Flatten returns a copy of doc in which every object holding nothing but
// an items list, and possibly an empty prototype, is replaced by the list.
func Flatten(doc *ir.Node) *ir.Node {
	if doc == nil {
		return nil
	}
	switch doc.Type {
	case ir.ArrayType:
		vals := make([]*ir.Node, len(doc.Values))
		for i, v := range doc.Values {
			vals[i] = Flatten(v)
		}
		return ir.FromSlice(vals)
	case ir.ObjectType:
	default:
		return doc.Clone()
	}
	kvs := make([]ir.KeyVal, len(doc.Fields))
	for i, field := range doc.Fields {
		v := doc.Values[i]
		if field == ir.ExtendsKey || field == ir.PrototypeKey {
			v = v.Clone()
		} else {
			v = Flatten(v)
		}
		kvs[i] = ir.KeyVal{Key: field, Val: v}
	}
	res := ir.FromKeyVals(kvs)
	if items := onlyItems(res); items != nil {
		items.Parent = nil
		items.ParentField = ""
		items.ParentIndex = 0
		return items
	}
	return res
}

func onlyItems(obj *ir.Node) *ir.Node {
	var items *ir.Node
	for i, field := range obj.Fields {
		v := obj.Values[i]
		switch field {
		case ir.ItemsKey:
			if v.Type != ir.ArrayType {
				return nil
			}
			items = v
		case ir.PrototypeKey:
			if v.Type != ir.ObjectType || len(v.Fields) != 0 {
				return nil
			}
		default:
			return nil
		}
	}
	return items
}
