// Package resolve expands and reconstructs document inheritance.
//
// A document object may carry an "extends" key naming (or inlining) an
// ancestor whose fields it inherits, and an object carrying both
// "prototype" and "items" has the prototype merged underneath each element
// of items.  Resolve expands both into a self contained document, and
// Normalize goes back to the minimal form: each node holds only what it adds
// to its ancestor or prototype.
//
// Documents are referred to by name through a [loader.Loader].  Reference
// cycles are not detected.
package resolve
