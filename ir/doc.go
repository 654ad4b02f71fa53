// Package ir provides the in-memory representation of protodoc documents.
//
// # Overview
//
// A document is a tree of nodes.  Every node is one of
//
//   - a scalar: null, bool, int, float, string, uuid, date, time, datetime
//   - an object: an ordered mapping from string keys to nodes
//   - an array: an ordered sequence of nodes
//
// The Type field selects which of the value fields of a Node is meaningful,
// making Node a closed tagged union.  Scalars are compared by value and are
// never recursed into.
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i].  Key
// order is preserved for output but is not significant for Equal.  A key
// should appear at most once.
//
// # Reserved Keys
//
// The keys extends, prototype, items and id carry inheritance semantics
// (see package resolve) and should not be used for business data.
//
// # Parents
//
// Each node records its parent, its index in the parent and, for object
// members, the key it is stored under.  Constructors such as FromKeyVals and
// FromSlice adopt their arguments and set these links; callers that want to
// place an existing node into a new tree must Clone it first.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "id", Val: ir.FromString("a")},
//	    {Key: "port", Val: ir.FromInt(8080)},
//	})
//	arr := ir.FromSlice([]*ir.Node{obj, ir.FromBool(true)})
//
// # Related Packages
//
//   - github.com/signadot/protodoc/parse - Parse JSON/YAML to IR
//   - github.com/signadot/protodoc/encode - Encode IR to JSON/YAML
//   - github.com/signadot/protodoc/libmerge - Merge and Diff
package ir
