package resolve

import (
	"fmt"

	"github.com/signadot/protodoc/debug"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/libmerge"
	"github.com/signadot/protodoc/loader"

	"go.uber.org/zap"
)

// Resolver resolves and normalizes documents whose references are loaded
// with a loader.  A Resolver holds no state across calls and may be used
// concurrently if its loader may.
type Resolver struct {
	loader  loader.Loader
	log     *zap.Logger
	reorder bool
}

type Option func(*Resolver)

func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// WithReorder puts the keys of results in canonical order, see [Reorder].
func WithReorder(v bool) Option {
	return func(r *Resolver) { r.reorder = v }
}

func New(l loader.Loader, opts ...Option) *Resolver {
	r := &Resolver{loader: l, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns doc with all extends and prototype references expanded.
// The result is freshly allocated and doc is left untouched.
//
// Resolving a resolved document again yields the same document only when
// every list element under extends or prototype has an id: list elements
// without one are appended on each merge, so {"extends":{"l":[1]}} gives
// l [1] once and [1,1] when resolved again.
func (r *Resolver) Resolve(doc *ir.Node) (*ir.Node, error) {
	res, err := r.resolve(doc)
	if err != nil {
		return nil, err
	}
	if r.reorder {
		res = Reorder(res)
	}
	return res, nil
}

func (r *Resolver) resolve(doc *ir.Node) (*ir.Node, error) {
	ext, err := r.resolveExtends(doc)
	if err != nil {
		return nil, err
	}
	res, err := r.expandPrototypes(ext)
	if err != nil {
		return nil, err
	}
	if debug.Resolve() {
		debug.Logf("resolved %s to %s", doc, res)
	}
	return res, nil
}

// LoadAndResolve loads the document called name and resolves it.
func (r *Resolver) LoadAndResolve(name string) (*ir.Node, error) {
	doc, err := r.load(ir.FromString(name))
	if err != nil {
		return nil, err
	}
	return r.Resolve(doc)
}

// Difference returns the delta between the resolved forms of a and b.  A
// nil result means they resolve to equal documents.
func (r *Resolver) Difference(a, b *ir.Node) (*ir.Node, error) {
	ra, err := r.resolve(a)
	if err != nil {
		return nil, err
	}
	rb, err := r.resolve(b)
	if err != nil {
		return nil, err
	}
	res, err := libmerge.Diff(ra, rb)
	if err != nil {
		return nil, err
	}
	if r.reorder && res != nil {
		res = Reorder(res)
	}
	return res, nil
}

// load loads the document named by the string node ref.
func (r *Resolver) load(ref *ir.Node) (*ir.Node, error) {
	name := ref.String
	r.log.Debug("loading document", zap.String("name", name), zap.String("path", ref.Path()))
	if r.loader == nil {
		return nil, fmt.Errorf("%w: %q at %s: no loader", ErrUnresolvableReference, name, ref.Path())
	}
	doc, err := r.loader.Load(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q at %s: %w", ErrUnresolvableReference, name, ref.Path(), err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %q at %s: no document", ErrUnresolvableReference, name, ref.Path())
	}
	return doc, nil
}

// reference returns the unresolved document a reference designates: the
// loaded document for a name, the value itself for an inline object.
func (r *Resolver) reference(ref *ir.Node, malformed error) (*ir.Node, error) {
	switch ref.Type {
	case ir.StringType:
		doc, err := r.load(ref)
		if err != nil {
			return nil, err
		}
		if doc.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: %q at %s is a %s, not an object", malformed, ref.String, ref.Path(), doc.Type)
		}
		return doc, nil
	case ir.ObjectType:
		return ref, nil
	default:
		return nil, fmt.Errorf("%w: %s at %s", malformed, ref.Type, ref.Path())
	}
}

// without returns a copy of the object obj without key.
func without(obj *ir.Node, key string) *ir.Node {
	kvs := make([]ir.KeyVal, 0, len(obj.Fields))
	for i, field := range obj.Fields {
		if field == key {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: field, Val: obj.Values[i].Clone()})
	}
	return ir.FromKeyVals(kvs)
}

// withFirst returns obj with key set to val in first position, adopting
// obj's other values.
func withFirst(obj *ir.Node, key string, val *ir.Node) *ir.Node {
	kvs := make([]ir.KeyVal, 0, len(obj.Fields)+1)
	kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	for i, field := range obj.Fields {
		if field == key {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: field, Val: obj.Values[i]})
	}
	return ir.FromKeyVals(kvs)
}
