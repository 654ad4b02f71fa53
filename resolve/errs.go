package resolve

import (
	"errors"

	"github.com/signadot/protodoc/libmerge"
)

var (
	ErrUnresolvableReference = errors.New("unresolvable reference")
	ErrMalformedExtends      = errors.New("malformed extends")
	ErrMalformedPrototype    = errors.New("malformed prototype")
	ErrMalformedItems        = errors.New("malformed items")
	ErrDuplicateID           = errors.New("duplicate id")

	ErrNonStringID = libmerge.ErrNonStringID
)
