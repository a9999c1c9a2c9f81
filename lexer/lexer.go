// Package lexer splits an expression into tokens.
package lexer

import (
	"errors"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/cloudcmds/graphcalc/builtins"
	"github.com/cloudcmds/graphcalc/errz"
	"github.com/cloudcmds/graphcalc/token"
)

// Lexer scans an expression one token at a time. Only ASCII spaces separate
// tokens; any other whitespace is rejected like any unknown character.
type Lexer struct {
	input string
	pos   int
}

// New returns a Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token. It returns io.EOF once the input is exhausted
// and a *errz.LexError for input no rule accepts.
func (l *Lexer) Next() (token.Token, error) {
	for l.pos < len(l.input) && l.input[l.pos] == ' ' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token.Token{}, io.EOF
	}
	start := l.pos
	ch := l.input[l.pos]
	switch {
	case isDigit(ch) || ch == '.':
		run := l.readRun(func(c byte) bool { return isDigit(c) || c == '.' })
		// The scanner accepts any mix of digits and dots; ParseFloat decides
		// whether the run is a number. Overflow is not a failure: the
		// literal becomes an infinity like any other overflowing value.
		v, err := strconv.ParseFloat(run, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return token.Token{}, &errz.LexError{Pos: start, Char: rune(ch), Text: run, Source: l.input}
		}
		return token.NewNumber(v, start), nil
	case isLetter(ch):
		name := l.readRun(isLetter)
		if builtins.IsFunction(name) {
			return token.NewFunction(name, start), nil
		}
		return token.NewVariable(name, start), nil
	case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '^':
		l.pos++
		return token.NewOperator(ch, start), nil
	case ch == '(' || ch == ')':
		l.pos++
		return token.NewParen(ch, start), nil
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	return token.Token{}, &errz.LexError{
		Pos:    start,
		Char:   r,
		Text:   l.input[start : start+size],
		Source: l.input,
	}
}

func (l *Lexer) readRun(accept func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.input) && accept(l.input[l.pos]) {
		l.pos++
	}
	return l.input[start:l.pos]
}

// Tokenize returns every token of the input, or the first lexing error.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}
