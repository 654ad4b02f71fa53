package encode

import (
	"bytes"
	"testing"

	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/parse"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeJSON(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "z", Val: ir.FromInt(1)},
		{Key: "a", Val: ir.FromSlice([]*ir.Node{ir.FromFloat(2), ir.Null(), ir.FromString("<q\"")})},
		{Key: "e", Val: ir.FromKeyVals(nil)},
	})
	got := MustString(node)
	want := `{"z":1,"a":[2.0,null,"<q\""],"e":{}}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("compact (-want +got):\n%s", diff)
	}

	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		t.Fatal(err)
	}
	want = `{
  "z": 1,
  "a": [
    2.0,
    null,
    "<q\""
  ],
  "e": {}
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("indented (-want +got):\n%s", diff)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := `{"b":{"id":"x","v":[1,2.5,true]},"a":"2024-03-01","u":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`
	for _, f := range []format.Format{format.JSONFormat, format.YAMLFormat} {
		t.Run(f.String(), func(t *testing.T) {
			node, err := parse.ParseString(in, parse.TypedScalars(true))
			if err != nil {
				t.Fatal(err)
			}
			buf := bytes.NewBuffer(nil)
			if err := Encode(node, buf, EncodeFormat(f)); err != nil {
				t.Fatal(err)
			}
			back, err := parse.Parse(buf.Bytes(), parse.TypedScalars(true))
			if err != nil {
				t.Fatalf("reparse %q: %v", buf.String(), err)
			}
			if !ir.Equal(node, back) {
				t.Errorf("round trip through %s changed document:\n%s", f, buf.String())
			}
			if got := back.Fields; got[0] != "b" || got[1] != "a" {
				t.Errorf("key order lost: %v", got)
			}
		})
	}
}
