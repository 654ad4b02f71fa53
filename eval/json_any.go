package eval

import (
	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"
)

// ToJSONAny converts node to the values encoding/json would decode it to.
// Typed scalars become their string form.
func ToJSONAny(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, field := range node.Fields {
			res[field] = ToJSONAny(node.Values[i])
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToJSONAny(elt)
		}
		return res
	case ir.StringType:
		return node.String
	case ir.IntType:
		return int(node.Int)
	case ir.FloatType:
		return node.Float
	case ir.BoolType:
		return node.Bool
	case ir.NullType:
		return nil
	default:
		s, err := encode.ScalarString(node)
		if err != nil {
			return nil
		}
		return s
	}
}
