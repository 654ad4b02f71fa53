package libmerge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{
			name: "equal scalars",
			old:  `1`,
			new:  `1`,
		},
		{
			name: "changed scalar",
			old:  `1`,
			new:  `"x"`,
			want: `"x"`,
		},
		{
			name: "absent old",
			new:  `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "unchanged key omitted",
			old:  `{"a":1,"b":2}`,
			new:  `{"a":1,"b":3}`,
			want: `{"b":3}`,
		},
		{
			name: "null is kept",
			old:  `{"a":1}`,
			new:  `{"a":null}`,
			want: `{"a":null}`,
		},
		{
			name: "removal only",
			old:  `{"a":1,"b":2}`,
			new:  `{"a":1}`,
			want: `{}`,
		},
		{
			name: "identified elements",
			old:  `[{"id":"x","v":1,"w":1},{"id":"y","v":2}]`,
			new:  `[{"id":"x","v":3,"w":1},{"id":"y","v":2},{"id":"z"}]`,
			want: `[{"id":"x","v":3},{"id":"z"}]`,
		},
		{
			name: "id-less elements copied",
			old:  `[1,2]`,
			new:  `[1,2,3]`,
			want: `[1,2,3]`,
		},
		{
			name: "list against items object",
			old:  `{"prototype":{"x":1},"items":[{"id":"a","x":1}]}`,
			new:  `[{"id":"a","x":2}]`,
			want: `{"items":[{"id":"a","x":2}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Diff(mustParse(t, tt.old), mustParse(t, tt.new))
			if err != nil {
				t.Fatal(err)
			}
			want := mustParse(t, tt.want)
			if want == nil {
				if got != nil {
					t.Fatalf("got %s want no difference", encode.MustString(got))
				}
				return
			}
			if d := cmp.Diff(encode.MustString(want), encode.MustString(got)); d != "" {
				t.Errorf("(-want +got)\n%s", d)
			}
		})
	}
}

func TestMergeDiffDuality(t *testing.T) {
	tests := []struct {
		old, new string
	}{
		{`{"a":1,"b":{"c":[1,2]}}`, `{"a":2,"b":{"c":[1,2],"d":null},"e":"x"}`},
		{`{"l":[{"id":"x","v":{"a":1}},{"id":"y"}]}`, `{"l":[{"id":"x","v":{"a":2}},{"id":"y","n":1},{"id":"z"}]}`},
		{`{"a":{"b":1}}`, `{"a":"scalar"}`},
		{`{"a":"scalar"}`, `{"a":{"b":1}}`},
		{`null`, `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
	}
	for _, tt := range tests {
		old, new := mustParse(t, tt.old), mustParse(t, tt.new)
		d, err := Diff(old, new)
		if err != nil {
			t.Fatal(err)
		}
		if d == nil {
			if !ir.Equal(old, new) {
				t.Errorf("no diff for unequal %s %s", tt.old, tt.new)
			}
			continue
		}
		got, err := Merge(old, d)
		if err != nil {
			t.Fatal(err)
		}
		if !ir.Equal(got, new) {
			t.Errorf("Merge(%s, Diff) = %s, want %s", tt.old, encode.MustString(got), tt.new)
		}
	}
}

func TestDiffErrors(t *testing.T) {
	tests := []struct {
		old, new string
		err      error
	}{
		{`{"a":1}`, `[1]`, ErrUnsupportedDiff},
		{`[1]`, `{"a":1}`, ErrUnsupportedDiff},
		{`[{"id":2}]`, `[{"id":"x"}]`, ErrNonStringID},
		{`[]`, `[{"id":true}]`, ErrNonStringID},
	}
	for _, tt := range tests {
		_, err := Diff(mustParse(t, tt.old), mustParse(t, tt.new))
		if !errors.Is(err, tt.err) {
			t.Errorf("Diff(%s, %s): got %v want %v", tt.old, tt.new, err, tt.err)
		}
	}
}

func TestDiffNoAliasing(t *testing.T) {
	old := mustParse(t, `{"a":1}`)
	new := mustParse(t, `{"a":1,"b":{"c":[1]}}`)
	d, err := Diff(old, new)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(d, "b") == ir.Get(new, "b") {
		t.Fatal("diff aliases input")
	}
	ir.Get(d, "b").Values[0].Values[0].Int = 7
	if encode.MustString(new) != `{"a":1,"b":{"c":[1]}}` {
		t.Errorf("input changed: %s", encode.MustString(new))
	}
}
