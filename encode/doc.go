// Package encode encodes IR nodes to JSON or YAML text.
//
// # Usage
//
//	// indented JSON
//	err := encode.Encode(node, os.Stdout)
//
//	// YAML
//	err := encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//
//	// compact JSON, colored
//	err := encode.Encode(node, w, encode.EncodeCompact(true), encode.EncodeColors(encode.NewColors()))
//
// Object keys are written in node order.  UUID, date, time and datetime
// scalars are written as strings.
//
// # Related Packages
//
//   - github.com/signadot/protodoc/ir - IR representation
//   - github.com/signadot/protodoc/parse - Parse text to IR
package encode
