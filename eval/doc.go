// Package eval evaluates expr-lang expressions against documents.
package eval
