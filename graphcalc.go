// Package graphcalc compiles algebraic expressions in one variable and
// evaluates them quickly enough to sample once per pixel.
//
//	program, err := graphcalc.Compile("x^2 - 2x + 1")
//	if err != nil {
//		return err
//	}
//	y, err := program.Eval(3) // 4
//
// Expressions support numbers, the operators + - * / ^, parentheses, the
// functions sin cos tan sqrt and log (natural), unary minus, and implicit
// multiplication such as "2x" or "x sin(x)". Any other identifier is a
// variable; Program.Eval binds only x and Program.EvalWith binds any set.
//
// A compiled Program is immutable and safe for concurrent use. Session holds
// the latest good Program across a stream of edits.
package graphcalc

import (
	"github.com/cloudcmds/graphcalc/builtins"
	"github.com/cloudcmds/graphcalc/compiler"
)

// Compile compiles an expression. Errors are *errz.LexError or
// *errz.SyntaxError, both implementing errz.CompileError.
func Compile(source string, opts ...Option) (*Program, error) {
	o := collectOptions(opts...)
	code, err := compiler.Compile(source, o.compilerOpts()...)
	if err != nil {
		return nil, err
	}
	return &Program{code: code, observer: o.observer}, nil
}

// Eval compiles an expression and evaluates it once at x.
func Eval(source string, x float64, opts ...Option) (float64, error) {
	program, err := Compile(source, opts...)
	if err != nil {
		return 0, err
	}
	return program.Eval(x)
}

// Functions returns the names of the functions expressions may call.
func Functions() []string {
	return builtins.Names()
}
