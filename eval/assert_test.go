package eval

import (
	"errors"
	"testing"

	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/parse"
)

func mustParse(t *testing.T, s string, opts ...parse.ParseOption) *ir.Node {
	t.Helper()
	node, err := parse.ParseString(s, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestAssert(t *testing.T) {
	doc := mustParse(t, `{"name":"web","port":80,"tags":["a","b"],"items":[{"id":"x","w":1.5},{"id":"y","w":2}],"on":"2024-01-02"}`,
		parse.TypedScalars(true))
	tests := []struct {
		expr string
		err  error
	}{
		{expr: `port == 80`},
		{expr: `port > 1000`, err: ErrAssert},
		{expr: `name startsWith "w" && len(tags) == 2`},
		{expr: `all(items, {.w > 1})`},
		{expr: `any(items, .id == "z")`, err: ErrAssert},
		{expr: `doc.items[1].id == "y"`},
		{expr: `getpath("$.items[0].w") == 1.5`},
		{expr: `haspath("$.nope")`, err: ErrAssert},
		{expr: `haspath("$.tags")`},
		{expr: `on == "2024-01-02"`},
	}
	for _, tt := range tests {
		err := Assert(doc, tt.expr)
		if tt.err == nil {
			if err != nil {
				t.Errorf("%s: %v", tt.expr, err)
			}
			continue
		}
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: got %v want %v", tt.expr, err, tt.err)
		}
	}
}

func TestAssertErrors(t *testing.T) {
	doc := mustParse(t, `{"port":80}`)
	if err := Assert(doc, `port +`); err == nil || errors.Is(err, ErrAssert) {
		t.Errorf("got %v want a compile error", err)
	}
	if err := Assert(doc, `missing.field == 1`); err == nil {
		t.Errorf("expected an evaluation error")
	}
}

func TestEval(t *testing.T) {
	got, err := Eval(mustParse(t, `[1,2,3]`), `len(doc)`)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("got %v (%T) want 3", got, got)
	}
}
