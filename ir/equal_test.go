package ir

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func obj(kvs ...any) *Node {
	res := make([]KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, KeyVal{Key: kvs[i].(string), Val: kvs[i+1].(*Node)})
	}
	return FromKeyVals(res)
}

func TestEqual(t *testing.T) {
	u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil null", nil, Null(), false},
		{"null null", Null(), Null(), true},
		{"int int", FromInt(1), FromInt(1), true},
		{"int float", FromInt(1), FromFloat(1), false},
		{"string", FromString("a"), FromString("b"), false},
		{"uuid", FromUUID(u), FromUUID(u), true},
		{"uuid vs string", FromUUID(u), FromString(u.String()), false},
		{"date", FromDate(day), FromDate(day.Add(3 * time.Hour)), true},
		{"date vs datetime", FromDate(day), FromDateTime(day), false},
		{"object key order", obj("a", FromInt(1), "b", FromInt(2)), obj("b", FromInt(2), "a", FromInt(1)), true},
		{"object missing key", obj("a", FromInt(1)), obj("a", FromInt(1), "b", FromInt(2)), false},
		{"object value", obj("a", FromInt(1)), obj("a", FromInt(2)), false},
		{"array order", FromSlice([]*Node{FromInt(1), FromInt(2)}), FromSlice([]*Node{FromInt(2), FromInt(1)}), false},
		{"empty object vs empty array", FromKeyVals(nil), FromSlice(nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIndependent(t *testing.T) {
	orig := obj("a", FromSlice([]*Node{obj("id", FromString("x"))}), "b", FromInt(1))
	c := orig.Clone()
	if !Equal(orig, c) {
		t.Fatalf("clone differs from original")
	}
	c.Values[0].Values[0].Values[0].String = "y"
	c.Fields[1] = "c"
	if Get(Get(orig, "a").Values[0], "id").String != "x" {
		t.Errorf("mutating clone changed original")
	}
	if !orig.Has("b") {
		t.Errorf("mutating clone fields changed original")
	}
	if c.Values[0].Parent != c {
		t.Errorf("clone children not re-parented")
	}
	if sub := Clone(orig.Values[0]); sub.Parent != nil || sub.Path() != "$" {
		t.Errorf("Clone did not detach %s", sub.Path())
	}
}
