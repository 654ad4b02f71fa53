package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/protodoc/ir"
)

// MustString returns the compact JSON encoding of node.  It panics on
// unencodable floats.
func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeCompact(true)); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
