package parse

import (
	"errors"

	"github.com/signadot/protodoc/format"
)

var ErrParse = errors.New("parse error")

type parseOpts struct {
	format format.Format
	typed  bool
}

type ParseOption func(*parseOpts)

// ParseFormat records the expected input format.  Both JSON and YAML
// documents are accepted whatever the format.
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// TypedScalars promotes strings holding canonical UUIDs, dates, times of day
// and timestamps to the corresponding typed scalar kinds.
func TypedScalars(v bool) ParseOption {
	return func(o *parseOpts) { o.typed = v }
}
