package parse

import (
	"strings"
	"time"

	"github.com/signadot/protodoc/ir"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

var timeLayouts = []string{"15:04:05.999999999", "15:04"}

// typedScalar returns the typed scalar represented by s, or nil if s is
// just a string.
func typedScalar(s string) *ir.Node {
	if len(s) == 36 {
		if u, err := uuid.Parse(s); err == nil {
			return ir.FromUUID(u)
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return ir.FromDate(t)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ir.FromTime(t)
		}
	}
	if !looksLikeDateTime(s) {
		return nil
	}
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return nil
	}
	return ir.FromDateTime(t)
}

// dateparse accepts bare numbers as unix timestamps, so only strings with
// both a date and a clock part are handed to it.
func looksLikeDateTime(s string) bool {
	if len(s) < len("2006-1-2 3:04") {
		return false
	}
	return strings.ContainsAny(s, "-/") && strings.Contains(s, ":")
}
