// Package rewrite implements the token passes that run between lexing and
// conversion to postfix: implicit multiplication and unary minus. Each pass
// returns a new slice and leaves its input untouched.
package rewrite

import (
	"fmt"

	"github.com/cloudcmds/graphcalc/token"
)

// InsertImplicitMul inserts a '*' operator between adjacent tokens that
// denote a product written without one, such as "2x", "x sin(x)", ")(",
// "2(3)" and "x 2". Two numbers are never joined.
func InsertImplicitMul(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens)+len(tokens)/2)
	for i, cur := range tokens {
		if i > 0 && impliesMul(tokens[i-1], cur) {
			out = append(out, token.NewOperator('*', cur.Pos))
		}
		out = append(out, cur)
	}
	return out
}

func impliesMul(prev, cur token.Token) bool {
	switch prev.Kind {
	case token.Number, token.RightParen:
		switch cur.Kind {
		case token.Variable, token.Function, token.LeftParen:
			return true
		case token.Number, token.Operator, token.RightParen:
			return false
		}
	case token.Variable:
		switch cur.Kind {
		case token.Variable, token.Function, token.LeftParen, token.Number:
			return true
		case token.Operator, token.RightParen:
			return false
		}
	case token.Function, token.Operator, token.LeftParen:
		return false
	}
	panic(fmt.Sprintf("rewrite: unexpected token pair %s %s", prev, cur))
}

// RewriteUnaryMinus replaces each '-' that cannot be a subtraction with the
// synthetic negation function: a '-' at the start, or one following an
// operator, an opening parenthesis or another negation. The check looks at
// the previous output token, so it already sees earlier rewrites.
func RewriteUnaryMinus(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, cur := range tokens {
		if cur.Is('-') && isPrefixPosition(out) {
			out = append(out, token.NewNeg(cur.Pos))
			continue
		}
		out = append(out, cur)
	}
	return out
}

func isPrefixPosition(out []token.Token) bool {
	if len(out) == 0 {
		return true
	}
	prev := out[len(out)-1]
	switch prev.Kind {
	case token.Operator, token.LeftParen:
		return true
	case token.Function:
		return prev.IsNeg()
	case token.Number, token.Variable, token.RightParen:
		return false
	}
	panic(fmt.Sprintf("rewrite: unexpected token %s", prev))
}
