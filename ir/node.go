package ir

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Reserved object keys.
const (
	ExtendsKey   = "extends"
	PrototypeKey = "prototype"
	ItemsKey     = "items"
	IDKey        = "id"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	// Fields[i] is the key of Values[i] for objects.
	Fields []string
	Values []*Node

	String string
	Bool   bool
	Int    int64
	Float  float64
	UUID   uuid.UUID
	// Time holds the value of Date, Time and DateTime nodes.
	Time time.Time
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Fields = nil
	dst.Values = nil
	if y.Fields != nil {
		dst.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
	}
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Int = y.Int
	dst.Float = y.Float
	dst.UUID = y.UUID
	dst.Time = y.Time
	return dst
}

// Clone returns a deep copy of node detached from node's parent, or nil if
// node is nil.
func Clone(node *Node) *Node {
	if node == nil {
		return nil
	}
	res := node.Clone()
	res.Parent = nil
	res.ParentIndex = 0
	res.ParentField = ""
	return res
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int: v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: FloatType, Float: f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromUUID(v uuid.UUID) *Node {
	return &Node{Type: UUIDType, UUID: v}
}

func FromDate(t time.Time) *Node {
	y, m, d := t.Date()
	return &Node{Type: DateType, Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func FromTime(t time.Time) *Node {
	return &Node{
		Type: TimeType,
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC),
	}
}

func FromDateTime(t time.Time) *Node {
	return &Node{Type: DateTimeType, Time: t}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// IsNull reports whether node is absent or an explicit null.
func IsNull(node *Node) bool {
	return node == nil || node.Type == NullType
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i, field := range node.Fields {
		res[field] = node.Values[i]
	}
	return res
}

// FromMap builds an object with keys in sorted order.  The values are
// adopted, not copied.
func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{}
	return FromKeyValsAt(res, kvs)
}

// FromKeyValsAt makes res an object with the given key/value pairs in order.
// The values are adopted: their parent links are set to res.
func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]string, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// FromSlice builds an array adopting the given values.
func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = ""
	}
	return res
}

// KeyVals returns the key/value pairs of an object in order.
func (y *Node) KeyVals() []KeyVal {
	res := make([]KeyVal, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = KeyVal{Key: f, Val: y.Values[i]}
	}
	return res
}

// Index returns the position of field in the object y, or -1.
func (y *Node) Index(field string) int {
	if y == nil || y.Type != ObjectType {
		return -1
	}
	return slices.Index(y.Fields, field)
}

func (y *Node) Has(field string) bool {
	return y.Index(field) != -1
}

// Get returns the value of field in the object y, or nil.
func Get(y *Node, field string) *Node {
	i := y.Index(field)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
