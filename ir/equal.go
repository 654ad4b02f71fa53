package ir

// Equal reports deep value equality of a and b.  Object key order is not
// significant; array order is.  Two nil nodes are equal, a nil node is not
// equal to an explicit null.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case IntType:
		return a.Int == b.Int
	case FloatType:
		return a.Float == b.Float
	case StringType:
		return a.String == b.String
	case UUIDType:
		return a.UUID == b.UUID
	case DateType, TimeType, DateTimeType:
		return a.Time.Equal(b.Time)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, field := range a.Fields {
			j := b.Index(field)
			if j == -1 {
				return false
			}
			if !Equal(a.Values[i], b.Values[j]) {
				return false
			}
		}
		return true
	}
	return false
}
