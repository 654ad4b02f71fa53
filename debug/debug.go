package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Merge   bool
	Diff    bool
	Resolve bool
	Load    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Merge = boolEnv("PDOC_DEBUG_MERGE")
	d.Diff = boolEnv("PDOC_DEBUG_DIFF")
	d.Resolve = boolEnv("PDOC_DEBUG_RESOLVE")
	d.Load = boolEnv("PDOC_DEBUG_LOAD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Merge() bool {
	return d.Merge
}
func Diff() bool {
	return d.Diff
}
func Resolve() bool {
	return d.Resolve
}
func Load() bool {
	return d.Load
}
