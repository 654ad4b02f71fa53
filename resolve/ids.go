package resolve

import (
	"fmt"

	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/libmerge"

	"github.com/hashicorp/go-multierror"
)

// CheckIDs reports every list in doc holding an element with a non string
// id, and every id held by more than one element of a list.
func CheckIDs(doc *ir.Node) error {
	if doc == nil {
		return nil
	}
	var errs *multierror.Error
	doc.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost || y.Type != ir.ArrayType {
			return true, nil
		}
		seen := map[string]bool{}
		for _, v := range y.Values {
			id, ok, err := libmerge.ID(v)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			if !ok {
				continue
			}
			if seen[id] {
				errs = multierror.Append(errs, fmt.Errorf("%w: %q at %s", ErrDuplicateID, id, v.Path()))
				continue
			}
			seen[id] = true
		}
		return true, nil
	})
	return errs.ErrorOrNil()
}
