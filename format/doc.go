// Package format names the wire formats protodoc documents are read from
// and written to.
//
// JSON is a subset of YAML, so the parser accepts either regardless of the
// format chosen; the format matters for encoding and for picking file
// extensions when probing loaders.
package format
