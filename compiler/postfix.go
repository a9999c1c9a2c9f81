package compiler

import (
	"fmt"

	"github.com/cloudcmds/graphcalc/errz"
	"github.com/cloudcmds/graphcalc/token"
)

// ToPostfix reorders an infix token sequence into postfix using the
// shunting-yard algorithm. The input must already have implicit
// multiplication inserted and unary minus rewritten. The output holds no
// parentheses. An unmatched parenthesis is a *errz.SyntaxError unless
// WithPermissiveParens is given; the error's Source is left empty.
func ToPostfix(tokens []token.Token, opts ...Option) ([]token.Token, error) {
	cfg := newConfig(opts)
	out := make([]token.Token, 0, len(tokens))
	var stack []token.Token

	pop := func() token.Token {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case token.Number, token.Variable:
			out = append(out, tok)
		case token.Function, token.LeftParen:
			stack = append(stack, tok)
		case token.Operator:
			incoming := mustLookupOperator(tok.Op)
			for len(stack) > 0 && yields(stack[len(stack)-1], incoming) {
				out = append(out, pop())
			}
			stack = append(stack, tok)
		case token.RightParen:
			matched := false
			for len(stack) > 0 {
				top := pop()
				if top.Kind == token.LeftParen {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				if !cfg.permissiveParens {
					return nil, &errz.SyntaxError{Reason: errz.UnmatchedParen, Pos: tok.Pos, Token: ")"}
				}
				continue
			}
			if len(stack) > 0 && stack[len(stack)-1].Kind == token.Function {
				out = append(out, pop())
			}
		default:
			panic(fmt.Sprintf("compiler: unexpected token %s", tok))
		}
	}

	for len(stack) > 0 {
		top := pop()
		if top.Kind == token.LeftParen {
			if cfg.permissiveParens {
				continue
			}
			return nil, &errz.SyntaxError{Reason: errz.UnmatchedParen, Pos: top.Pos, Token: "("}
		}
		out = append(out, top)
	}
	return out, nil
}

// yields reports whether the stack top must be output before an incoming
// operator is pushed.
func yields(top token.Token, incoming OperatorSpec) bool {
	switch top.Kind {
	case token.LeftParen:
		return false
	case token.Function:
		if top.IsNeg() {
			return incoming.Precedence < negPrecedence
		}
		return true
	case token.Operator:
		spec := mustLookupOperator(top.Op)
		if spec.Precedence > incoming.Precedence {
			return true
		}
		return spec.Precedence == incoming.Precedence && incoming.Assoc == Left
	}
	panic(fmt.Sprintf("compiler: unexpected token on operator stack %s", top))
}
