// Package errz defines the errors reported while compiling and evaluating
// expressions.
package errz

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrLex indicates a character no token rule accepts.
	ErrLex ErrorKind = iota
	// ErrSyntax indicates a structurally invalid expression.
	ErrSyntax
	// ErrName indicates a variable with no binding at evaluation time.
	ErrName
	// ErrRuntime indicates a program that could not be evaluated.
	ErrRuntime
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrLex:
		return "lex error"
	case ErrSyntax:
		return "syntax error"
	case ErrName:
		return "name error"
	case ErrRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// CompileError is implemented by every error returned from compiling an
// expression.
type CompileError interface {
	error
	Kind() ErrorKind
	// Position returns the 0-based byte offset of the offending input.
	Position() int
	// FriendlyErrorMessage returns the error with the source line and a
	// caret under the offending column.
	FriendlyErrorMessage() string
}

// LexError reports input that the tokenizer could not match.
type LexError struct {
	// Pos is the byte offset where the bad token starts.
	Pos int
	// Char is the first character of the bad token.
	Char rune
	// Text is the rejected run, when the tokenizer consumed more than one
	// character before failing (e.g. "1.2.3").
	Text   string
	Source string
}

func (e *LexError) Error() string {
	if e.Text != "" && e.Text != string(e.Char) {
		return fmt.Sprintf("%s: invalid number %q at position %d", e.Kind(), e.Text, e.Pos)
	}
	return fmt.Sprintf("%s: unexpected character %q at position %d", e.Kind(), e.Char, e.Pos)
}

func (e *LexError) Kind() ErrorKind { return ErrLex }

func (e *LexError) Position() int { return e.Pos }

func (e *LexError) FriendlyErrorMessage() string {
	return friendly(e.Error(), e.Source, e.Pos)
}

// SyntaxReason says why an expression is structurally invalid.
type SyntaxReason int

const (
	UnmatchedParen SyntaxReason = iota + 1
	EmptyExpression
	MissingOperand
	MissingOperator
	TooLong
)

func (r SyntaxReason) String() string {
	switch r {
	case UnmatchedParen:
		return "unmatched parenthesis"
	case EmptyExpression:
		return "empty expression"
	case MissingOperand:
		return "missing operand"
	case MissingOperator:
		return "missing operator"
	case TooLong:
		return "expression too long"
	default:
		return "invalid expression"
	}
}

// SyntaxError reports a token sequence that does not form an expression.
type SyntaxError struct {
	Reason SyntaxReason
	Pos    int
	// Token is the literal of the offending token, if there is one.
	Token  string
	Source string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %s at position %d", e.Kind(), e.Reason, e.Pos)
	}
	return fmt.Sprintf("%s: %s at %q (position %d)", e.Kind(), e.Reason, e.Token, e.Pos)
}

func (e *SyntaxError) Kind() ErrorKind { return ErrSyntax }

func (e *SyntaxError) Position() int { return e.Pos }

func (e *SyntaxError) FriendlyErrorMessage() string {
	return friendly(e.Error(), e.Source, e.Pos)
}

// UnboundVariableError is returned when a program reads a variable that the
// bindings do not define.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("%s: unbound variable %q", e.Kind(), e.Name)
}

func (e *UnboundVariableError) Kind() ErrorKind { return ErrName }

// ErrMalformedProgram is returned when a program's operands do not balance:
// a stack underflow, or anything other than exactly one value left at the
// end. Programs produced by the compiler never fail this way.
var ErrMalformedProgram = errors.New("runtime error: malformed program")

// IsCompileError reports whether err is, or wraps, a CompileError.
func IsCompileError(err error) bool {
	var ce CompileError
	return errors.As(err, &ce)
}

func friendly(msg, source string, pos int) string {
	var b bytes.Buffer
	b.WriteString(msg)
	b.WriteString("\n")
	if source == "" {
		return b.String()
	}
	b.WriteString(" | ")
	b.WriteString(source)
	b.WriteString("\n")
	if pos >= 0 && pos <= len(source) {
		b.WriteString(" | ")
		b.WriteString(strings.Repeat(" ", utf8.RuneCountInString(source[:pos])))
		b.WriteString("^\n")
	}
	return b.String()
}
