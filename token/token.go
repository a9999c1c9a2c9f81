// Package token defines the tokens produced when lexing an expression.
package token

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant of the Token union is populated.
type Kind uint8

const (
	Invalid Kind = iota
	Number
	Variable
	Function
	Operator
	LeftParen
	RightParen
)

// NegName is the name of the synthetic unary negation function. It is only
// ever produced by rewriting a leading or prefix minus sign.
const NegName = "neg"

// String returns the name of the token kind.
func (k Kind) String() string {
	switch k {
	case Number:
		return "NUMBER"
	case Variable:
		return "VARIABLE"
	case Function:
		return "FUNCTION"
	case Operator:
		return "OPERATOR"
	case LeftParen:
		return "LPAREN"
	case RightParen:
		return "RPAREN"
	default:
		return "INVALID"
	}
}

// Token represents one token lexed from an expression. Only the payload field
// matching Kind is meaningful: Value for Number, Name for Variable and
// Function, Op for Operator.
type Token struct {
	Kind  Kind
	Value float64
	Name  string
	Op    byte
	// Pos is the byte offset of the token in the source. Synthetic tokens
	// take the offset of the token that caused them to be inserted.
	Pos int
}

// NewNumber returns a Number token.
func NewNumber(v float64, pos int) Token {
	return Token{Kind: Number, Value: v, Pos: pos}
}

// NewVariable returns a Variable token.
func NewVariable(name string, pos int) Token {
	return Token{Kind: Variable, Name: name, Pos: pos}
}

// NewFunction returns a Function token.
func NewFunction(name string, pos int) Token {
	return Token{Kind: Function, Name: name, Pos: pos}
}

// NewOperator returns an Operator token.
func NewOperator(op byte, pos int) Token {
	return Token{Kind: Operator, Op: op, Pos: pos}
}

// NewNeg returns the synthetic unary negation token.
func NewNeg(pos int) Token {
	return Token{Kind: Function, Name: NegName, Pos: pos}
}

// NewParen returns a LeftParen or RightParen token for '(' or ')'.
func NewParen(c byte, pos int) Token {
	if c == '(' {
		return Token{Kind: LeftParen, Pos: pos}
	}
	return Token{Kind: RightParen, Pos: pos}
}

// IsNeg reports whether t is the synthetic unary negation.
func (t Token) IsNeg() bool {
	return t.Kind == Function && t.Name == NegName
}

// Is reports whether t is an Operator token for the given symbol.
func (t Token) Is(op byte) bool {
	return t.Kind == Operator && t.Op == op
}

// Literal returns the token as it would be written in source. The synthetic
// negation is written as "neg" so it can be told apart from subtraction.
func (t Token) Literal() string {
	switch t.Kind {
	case Number:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case Variable, Function:
		return t.Name
	case Operator:
		return string(t.Op)
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	default:
		return "?"
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s:%s@%d", t.Kind, t.Literal(), t.Pos)
}
