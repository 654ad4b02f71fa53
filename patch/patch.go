// Package patch applies JSON patches to documents.
package patch

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/parse"
	"github.com/signadot/protodoc/resolve"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch error")

// Apply applies the RFC 6902 JSON patch p to doc.  The keys of objects in
// the result keep their order in doc; added keys come after.
func Apply(doc *ir.Node, p []byte, opts ...parse.ParseOption) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return apply(doc, opts, ops.Apply)
}

// ApplyNode is Apply with the patch given as a document, for instance
// parsed from YAML.
func ApplyNode(doc, p *ir.Node, opts ...parse.ParseOption) (*ir.Node, error) {
	d, err := marshal(p)
	if err != nil {
		return nil, err
	}
	return Apply(doc, d, opts...)
}

// Merge applies the RFC 7386 merge patch p to doc.
func Merge(doc, p *ir.Node, opts ...parse.ParseOption) (*ir.Node, error) {
	d, err := marshal(p)
	if err != nil {
		return nil, err
	}
	return apply(doc, opts, func(jDoc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(jDoc, d)
	})
}

// Edit applies p to the resolved form of doc and returns the normalized
// result, so that edits made against the resolved view are kept as
// minimal deltas.
func Edit(r *resolve.Resolver, doc *ir.Node, p []byte, opts ...parse.ParseOption) (*ir.Node, error) {
	resolved, err := r.Resolve(doc)
	if err != nil {
		return nil, err
	}
	patched, err := Apply(resolved, p, opts...)
	if err != nil {
		return nil, err
	}
	return r.Normalize(patched)
}

func apply(doc *ir.Node, opts []parse.ParseOption, f func([]byte) ([]byte, error)) (*ir.Node, error) {
	d, err := marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := f(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := parse.Parse(out, opts...)
	if err != nil {
		return nil, err
	}
	return resolve.ReorderLike(res, doc), nil
}

func marshal(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeCompact(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
