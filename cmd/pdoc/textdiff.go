package main

import (
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff returns the differences between a and b line by line.
func lineDiff(a, b string) []diffpatch.Diff {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// writeLineDiff writes every line of a and b to w prefixed by "-" if it is
// only in a, "+" if it is only in b and " " otherwise.  It reports whether
// a and b differ.
func writeLineDiff(w io.Writer, a, b string, colored bool) (bool, error) {
	var (
		del = color.New(color.FgRed)
		ins = color.New(color.FgGreen)
	)
	if colored {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}
	differs := false
	for _, d := range lineDiff(a, b) {
		var (
			prefix string
			c      *color.Color
		)
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, c = "-", del
			differs = true
		case diffpatch.DiffInsert:
			prefix, c = "+", ins
			differs = true
		case diffpatch.DiffEqual:
			prefix = " "
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			s := prefix + line
			if c != nil {
				s = c.Sprint(s)
			}
			if _, err := io.WriteString(w, s+"\n"); err != nil {
				return differs, err
			}
		}
	}
	return differs, nil
}
