// Package parse parses JSON and YAML text into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse([]byte(`{"extends": "base", "port": 8080}`))
//	if err != nil {
//	    return err
//	}
//
//	// promote uuid/date/time strings to typed scalars
//	node, err := parse.Parse(data, parse.TypedScalars(true))
//
// Object key order is preserved.  Scalar kinds are decided here, once, so
// that merging and diffing never need to inspect raw values.
//
// # Related Packages
//
//   - github.com/signadot/protodoc/ir - IR representation
//   - github.com/signadot/protodoc/encode - Encode IR to text
package parse
