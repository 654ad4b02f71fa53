package eval

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/protodoc/ir"

	"github.com/expr-lang/expr"
)

// ErrAssert is returned when an assertion evaluates to false.
var ErrAssert = errors.New("assertion failed")

// Env returns the expression environment for doc: its top level fields if
// it is an object, and the whole document as "doc".
func Env(doc *ir.Node) map[string]any {
	env := map[string]any{}
	if doc != nil && doc.Type == ir.ObjectType {
		for i, field := range doc.Fields {
			env[field] = ToJSONAny(doc.Values[i])
		}
	}
	env["doc"] = ToJSONAny(doc)
	return env
}

// Eval evaluates the expression input against doc.
func Eval(doc *ir.Node, input string) (any, error) {
	env := Env(doc)
	prg, err := expr.Compile(input, append(exprOpts(doc), expr.Env(env))...)
	if err != nil {
		return nil, fmt.Errorf("could not compile %q: %w", input, err)
	}
	return expr.Run(prg, env)
}

// Assert evaluates the boolean expression input against doc, returning an
// error wrapping ErrAssert if it is false.
func Assert(doc *ir.Node, input string) error {
	env := Env(doc)
	opts := append(exprOpts(doc), expr.Env(env), expr.AsBool())
	prg, err := expr.Compile(input, opts...)
	if err != nil {
		return fmt.Errorf("could not compile %q: %w", input, err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return fmt.Errorf("could not evaluate %q: %w", input, err)
	}
	ok, isBool := res.(bool)
	if !isBool {
		return fmt.Errorf("%q evaluated to %T, not a bool", input, res)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssert, input)
	}
	return nil
}

func exprOpts(doc *ir.Node) []expr.Option {
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			if doc == nil {
				return nil, nil
			}
			res, err := doc.GetPath(params[0].(string))
			if err != nil {
				return nil, err
			}
			return ToJSONAny(res), nil
		},
			new(func(string) any)),
		expr.Function("haspath", func(params ...any) (any, error) {
			if doc == nil {
				return false, nil
			}
			res, err := doc.GetPath(params[0].(string))
			if err != nil {
				return false, nil
			}
			return res != nil, nil
		},
			new(func(string) bool)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
