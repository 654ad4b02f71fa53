package libmerge

import "errors"

var (
	ErrUnsupportedMerge = errors.New("unsupported merge")
	ErrUnsupportedDiff  = errors.New("unsupported diff")
	ErrNonStringID      = errors.New("non-string id")
)
