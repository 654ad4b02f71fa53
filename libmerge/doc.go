// Package libmerge provides Merge and Diff, the two dual recursive
// primitives document inheritance is built from.
//
// # Merge
//
// Merge(old, new) lays new on top of old: scalars are replaced, objects are
// merged key by key, and lists are merged by element identity: an object
// element with a string "id" replaces, merged, the element of old with the
// same id; every other element is appended.  An object following the items
// convention (it has an "items" or "prototype" key) may be merged with a
// bare list, which then stands for {items: list}.
//
// # Diff
//
// Diff(old, new) computes the smallest delta d such that Merge(old, d)
// equals new, for operands whose shapes the merge rules cover.  Equal
// values give a nil (absent) delta.
//
// # Related Packages
//
//   - github.com/signadot/protodoc/resolve - extends/prototype resolution
//   - github.com/signadot/protodoc/ir - IR representation
package libmerge
