package parse

import (
	"fmt"
	"math"
	"time"

	"github.com/signadot/protodoc/ir"

	"github.com/goccy/go-yaml"
)

// Parse decodes a JSON or YAML document into an IR tree, preserving object
// key order.  An empty input parses to null.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromAny(v, opts...)
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

// FromAny converts a decoded value (as produced by YAML or JSON decoders
// into any) to an IR tree.
func FromAny(v any, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return fromAny(v, pOpts)
}

func fromAny(v any, o *parseOpts) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int8:
		return ir.FromInt(int64(x)), nil
	case int16:
		return ir.FromInt(int64(x)), nil
	case int32:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return ir.FromInt(int64(x)), nil
	case uint16:
		return ir.FromInt(int64(x)), nil
	case uint32:
		return ir.FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return ir.FromFloat(float64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case string:
		if o.typed {
			if n := typedScalar(x); n != nil {
				return n, nil
			}
		}
		return ir.FromString(x), nil
	case time.Time:
		return ir.FromDateTime(x), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, elt := range x {
			n, err := fromAny(elt, o)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		seen := make(map[string]bool, len(x))
		for _, item := range x {
			key, err := keyString(item.Key)
			if err != nil {
				return nil, err
			}
			if seen[key] {
				return nil, fmt.Errorf("%w: duplicate key %q", ErrParse, key)
			}
			seen[key] = true
			val, err := fromAny(item.Value, o)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, elt := range x {
			n, err := fromAny(elt, o)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return ir.FromMap(m), nil
	default:
		return nil, fmt.Errorf("%w: unsupported value of type %T", ErrParse, v)
	}
}

func fromUint(u uint64) *ir.Node {
	if u > math.MaxInt64 {
		return ir.FromFloat(float64(u))
	}
	return ir.FromInt(int64(u))
}

func keyString(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case nil:
		return "", fmt.Errorf("%w: null object key", ErrParse)
	case []any, yaml.MapSlice, map[string]any:
		return "", fmt.Errorf("%w: non scalar object key %v", ErrParse, k)
	default:
		return fmt.Sprint(x), nil
	}
}
