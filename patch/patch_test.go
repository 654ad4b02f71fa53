package patch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/loader"
	"github.com/signadot/protodoc/parse"
	"github.com/signadot/protodoc/resolve"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	node, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestApply(t *testing.T) {
	doc := mustParse(t, `{"z":1,"a":{"y":[1,2],"b":true},"m":"s"}`)
	p := `[
		{"op":"replace","path":"/z","value":2},
		{"op":"add","path":"/a/y/-","value":3},
		{"op":"remove","path":"/m"},
		{"op":"add","path":"/new","value":{"k":null}}
	]`
	got, err := Apply(doc, []byte(p))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":2,"a":{"y":[1,2,3],"b":true},"new":{"k":null}}`
	if d := cmp.Diff(want, encode.MustString(got)); d != "" {
		t.Errorf("(-want +got)\n%s", d)
	}
	if s := encode.MustString(doc); s != `{"z":1,"a":{"y":[1,2],"b":true},"m":"s"}` {
		t.Errorf("input changed: %s", s)
	}
}

func TestApplyErrors(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	for _, p := range []string{`{"op":"add"}`, `[{"op":"remove","path":"/nope"}]`, `[{"op":"test","path":"/a","value":2}]`} {
		if _, err := Apply(doc, []byte(p)); !errors.Is(err, ErrPatch) {
			t.Errorf("%s: got %v want ErrPatch", p, err)
		}
	}
}

func TestApplyNode(t *testing.T) {
	doc := mustParse(t, `{"b":1,"a":2}`)
	p := mustParse(t, "- op: add\n  path: /c\n  value: 3\n")
	got, err := ApplyNode(doc, p)
	if err != nil {
		t.Fatal(err)
	}
	if s := encode.MustString(got); s != `{"b":1,"a":2,"c":3}` {
		t.Errorf("got %s", s)
	}
}

func TestMerge(t *testing.T) {
	doc := mustParse(t, `{"b":{"x":1,"y":2},"a":2}`)
	got, err := Merge(doc, mustParse(t, `{"b":{"y":null,"z":3}}`))
	if err != nil {
		t.Fatal(err)
	}
	if s := encode.MustString(got); s != `{"b":{"x":1,"z":3},"a":2}` {
		t.Errorf("got %s", s)
	}
}

func TestEdit(t *testing.T) {
	l := loader.Map{
		"svc": mustParse(t, `{"proto":"tcp","port":80}`),
	}
	r := resolve.New(l)
	doc := mustParse(t, `{"prototype":"svc","items":[{"id":"a"},{"id":"b","port":81}]}`)
	p := `[{"op":"replace","path":"/items/0/port","value":8080},{"op":"replace","path":"/items/1/port","value":80}]`
	got, err := Edit(r, doc, []byte(p))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"prototype":"svc","items":[{"port":8080,"id":"a"},{"id":"b"}]}`
	if d := cmp.Diff(want, encode.MustString(got)); d != "" {
		t.Errorf("(-want +got)\n%s", d)
	}
}
