package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/parse"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/afero"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	node, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestMap(t *testing.T) {
	m := Map{"a": mustParse(t, `{"x":1}`)}
	got, err := m.Load("a")
	if err != nil {
		t.Fatal(err)
	}
	got.Values[0].Int = 2
	if s := encode.MustString(m["a"]); s != `{"x":1}` {
		t.Errorf("stored document changed: %s", s)
	}
	if _, err := m.Load("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want ErrNotFound", err)
	}
}

func TestFS(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"/base/a.json":    `{"from":"base json"}`,
		"/base/b.yaml":    "from: base yaml\n",
		"/over/a.json":    `{"from":"over json"}`,
		"/base/dir/c.yml": "from: nested\n",
		"/abs/d.json":     `{"from":"abs"}`,
		"/base/bad.json":  `{"a":`,
		"/base/e/x.json":  `{}`,
		"/base/e.json":    `{"from":"not the dir"}`,
	}
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	l := NewFS(fsys, FSRoots("/over", "/base"))
	tests := []struct {
		name string
		want string
		err  error
	}{
		{name: "a", want: "over json"},
		{name: "a.json", want: "over json"},
		{name: "b", want: "base yaml"},
		{name: "dir/c", want: "nested"},
		{name: "/abs/d.json", want: "abs"},
		{name: "/abs/d", want: "abs"},
		{name: "e", want: "not the dir"},
		{name: "missing", err: ErrNotFound},
		{name: "bad", err: parse.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Load(tt.name)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got %v want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if from := ir.Get(got, "from"); from == nil || from.String != tt.want {
				t.Errorf("got %s want from %q", encode.MustString(got), tt.want)
			}
		})
	}
}

func TestHTTP(t *testing.T) {
	var flaky atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/docs/a.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"a":1}`)
	})
	mux.HandleFunc("/docs/flaky.yaml", func(w http.ResponseWriter, r *http.Request) {
		if flaky.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, "b: 2\n")
	})
	mux.HandleFunc("/docs/down", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/docs/forbidden", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	l := NewHTTP(srv.URL + "/docs")
	l.Client = srv.Client()
	l.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }

	got, err := l.Load("a.json")
	if err != nil {
		t.Fatal(err)
	}
	if s := encode.MustString(got); s != `{"a":1}` {
		t.Errorf("got %s", s)
	}
	got, err = l.Load("flaky.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if s := encode.MustString(got); s != `{"b":2}` {
		t.Errorf("got %s", s)
	}
	if n := flaky.Load(); n != 3 {
		t.Errorf("got %d attempts want 3", n)
	}
	if _, err := l.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want ErrNotFound", err)
	}
	if _, err := l.Load("down"); err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("got %v want 503 error", err)
	}
	if _, err := l.Load("forbidden"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want a non not-found error", err)
	}
}

type fakeS3 struct {
	objects map[string]string
	gets    int
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gets++
	d, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(d))}, nil
}

func TestS3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{
		"bkt/cfg/a.yaml": "a: 1\n",
	}}
	l := &S3{Client: fake, Bucket: "bkt", Prefix: "cfg"}
	got, err := l.Load("a.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if s := encode.MustString(got); s != `{"a":1}` {
		t.Errorf("got %s", s)
	}
	if _, err := l.Load("b.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want ErrNotFound", err)
	}
}

func TestChain(t *testing.T) {
	boom := errors.New("boom")
	c := Chain{
		Map{"a": mustParse(t, `1`)},
		Func(func(name string) (*ir.Node, error) {
			if name == "bad" {
				return nil, boom
			}
			return nil, ErrNotFound
		}),
		Map{"a": mustParse(t, `2`), "b": mustParse(t, `3`), "bad": mustParse(t, `4`)},
	}
	for name, want := range map[string]int64{"a": 1, "b": 3} {
		got, err := c.Load(name)
		if err != nil {
			t.Fatal(err)
		}
		if got.Int != want {
			t.Errorf("%s: got %d want %d", name, got.Int, want)
		}
	}
	if _, err := c.Load("bad"); !errors.Is(err, boom) {
		t.Errorf("got %v want %v", err, boom)
	}
	if _, err := c.Load("none"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want ErrNotFound", err)
	}
}

func TestCache(t *testing.T) {
	var mu sync.Mutex
	loads := map[string]int{}
	next := Func(func(name string) (*ir.Node, error) {
		mu.Lock()
		loads[name]++
		mu.Unlock()
		if name == "missing" {
			return nil, ErrNotFound
		}
		return ir.FromKeyVals([]ir.KeyVal{{Key: "name", Val: ir.FromString(name)}}), nil
	})
	c, err := NewCache(next, 2)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Load("a"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	a1, _ := c.Load("a")
	a1.Values[0].String = "changed"
	a2, _ := c.Load("a")
	if a2.Values[0].String != "a" {
		t.Errorf("cached document was modified through a returned copy")
	}
	if a1 == a2 {
		t.Errorf("cache returned the same node twice")
	}
	if loads["a"] < 1 || loads["a"] > 8 {
		t.Errorf("got %d loads of a", loads["a"])
	}
	before := loads["a"]
	c.Load("b")
	c.Load("c")
	c.Load("a")
	if loads["a"] != before+1 {
		t.Errorf("expected a to be evicted and reloaded, got %d loads", loads["a"])
	}
	if c.Len() != 2 {
		t.Errorf("got len %d want 2", c.Len())
	}
	for range 2 {
		if _, err := c.Load("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v want ErrNotFound", err)
		}
	}
	if loads["missing"] != 2 {
		t.Errorf("errors should not be cached, got %d loads", loads["missing"])
	}
}
