// Package builtins defines the numeric operators and functions available to
// expressions. Every built-in is total over float64: out-of-domain inputs
// produce IEEE-754 infinities or NaN rather than errors.
package builtins

import (
	"math"
	"sort"

	"github.com/cloudcmds/graphcalc/op"
)

// Func is a built-in function of one argument.
type Func func(float64) float64

var functions = map[string]Func{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"sqrt": math.Sqrt,
	// Natural logarithm: log(0) is -Inf and log of a negative number is NaN.
	"log": math.Log,
}

// Lookup returns the user-visible function with the given name.
func Lookup(name string) (Func, bool) {
	fn, ok := functions[name]
	return fn, ok
}

// IsFunction reports whether name is a user-visible function name. Names are
// case sensitive.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// Names returns the sorted user-visible function names.
func Names() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Negate is the synthetic unary negation.
func Negate(x float64) float64 {
	return -x
}

// Binary applies a binary operator. Division by zero yields a signed infinity
// (or NaN for 0/0) and exponentiation follows math.Pow.
func Binary(bop op.BinaryOpType, l, r float64) float64 {
	switch bop {
	case op.Add:
		return l + r
	case op.Subtract:
		return l - r
	case op.Multiply:
		return l * r
	case op.Divide:
		return l / r
	case op.Power:
		return math.Pow(l, r)
	default:
		return math.NaN()
	}
}
