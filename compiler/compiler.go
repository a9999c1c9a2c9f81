// Package compiler turns expression source into an immutable program.
//
// Compilation runs in stages. The source is tokenized, implicit
// multiplication is inserted, prefix minus signs are rewritten to the
// synthetic negation, and the result is reordered into postfix with the
// shunting-yard algorithm. The postfix sequence is then lowered into
// instructions while the operand stack depth is simulated, so structural
// mistakes such as "2+" or "2 3" are reported here as syntax errors and a
// compiled program always evaluates to exactly one value.
package compiler

import (
	"errors"
	"fmt"
	"math"

	"github.com/cloudcmds/graphcalc/builtins"
	"github.com/cloudcmds/graphcalc/bytecode"
	"github.com/cloudcmds/graphcalc/errz"
	"github.com/cloudcmds/graphcalc/lexer"
	"github.com/cloudcmds/graphcalc/op"
	"github.com/cloudcmds/graphcalc/rewrite"
	"github.com/cloudcmds/graphcalc/token"
)

// Compile compiles an expression. Errors are *errz.LexError or
// *errz.SyntaxError, both carrying the source.
func Compile(source string, opts ...Option) (*bytecode.Code, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	tokens = rewrite.RewriteUnaryMinus(rewrite.InsertImplicitMul(tokens))
	postfix, err := ToPostfix(tokens, opts...)
	if err != nil {
		var syntaxErr *errz.SyntaxError
		if errors.As(err, &syntaxErr) {
			syntaxErr.Source = source
		}
		return nil, err
	}
	return Lower(source, postfix)
}

// Lower converts a postfix token sequence into a program. It fails with a
// *errz.SyntaxError if the sequence is empty, if any token lacks operands, or
// if more than one value would remain.
func Lower(source string, postfix []token.Token) (*bytecode.Code, error) {
	// Pool indexes are encoded in a single instruction word.
	if len(postfix) > math.MaxUint16 {
		return nil, &errz.SyntaxError{Reason: errz.TooLong, Source: source}
	}
	c := newCompiler(source)
	for _, tok := range postfix {
		if err := c.compile(tok); err != nil {
			return nil, err
		}
	}
	return c.finish()
}

// compiler holds the state of one lowering pass. Each entry of starts is the
// source offset where the expression producing that stack slot begins.
type compiler struct {
	source       string
	tokens       []token.Token
	instructions []op.Code
	locations    []int
	constants    []float64
	names        []string
	nameIndex    map[string]int
	functions    []string
	funcIndex    map[string]int
	starts       []int
	maxDepth     int
}

func newCompiler(source string) *compiler {
	return &compiler{
		source:    source,
		nameIndex: map[string]int{},
		funcIndex: map[string]int{},
	}
}

func (c *compiler) compile(tok token.Token) error {
	switch tok.Kind {
	case token.Number:
		c.emit(tok.Pos, op.LoadConst, op.Code(len(c.constants)))
		c.constants = append(c.constants, tok.Value)
		c.push(tok.Pos)
	case token.Variable:
		c.emit(tok.Pos, op.LoadVar, op.Code(c.intern(tok.Name, &c.names, c.nameIndex)))
		c.push(tok.Pos)
	case token.Operator:
		kind, ok := op.BinaryOpFor(tok.Op)
		if !ok {
			panic(fmt.Sprintf("compiler: unknown operator %s", tok))
		}
		if len(c.starts) < 2 {
			return c.missingOperand(tok)
		}
		left := c.starts[len(c.starts)-2]
		c.starts = c.starts[:len(c.starts)-2]
		c.emit(tok.Pos, op.BinaryOp, op.Code(kind))
		c.push(left)
	case token.Function:
		if len(c.starts) < 1 {
			return c.missingOperand(tok)
		}
		if tok.IsNeg() {
			c.emit(tok.Pos, op.UnaryNegative)
		} else {
			if !builtins.IsFunction(tok.Name) {
				panic(fmt.Sprintf("compiler: unknown function %s", tok))
			}
			c.emit(tok.Pos, op.Call, op.Code(c.intern(tok.Name, &c.functions, c.funcIndex)))
		}
		arg := c.starts[len(c.starts)-1]
		c.starts = c.starts[:len(c.starts)-1]
		c.push(min(arg, tok.Pos))
	default:
		panic(fmt.Sprintf("compiler: unexpected token in postfix %s", tok))
	}
	c.tokens = append(c.tokens, tok)
	return nil
}

func (c *compiler) finish() (*bytecode.Code, error) {
	switch {
	case len(c.tokens) == 0:
		return nil, &errz.SyntaxError{Reason: errz.EmptyExpression, Source: c.source}
	case len(c.starts) > 1:
		return nil, &errz.SyntaxError{Reason: errz.MissingOperator, Pos: c.starts[1], Source: c.source}
	}
	return bytecode.NewCode(bytecode.CodeParams{
		Source:       c.source,
		Tokens:       c.tokens,
		Instructions: c.instructions,
		Constants:    c.constants,
		Names:        c.names,
		Functions:    c.functions,
		Locations:    c.locations,
		MaxDepth:     c.maxDepth,
	}), nil
}

func (c *compiler) emit(pos int, code op.Code, operands ...op.Code) {
	c.instructions = append(c.instructions, code)
	c.locations = append(c.locations, pos)
	for _, operand := range operands {
		c.instructions = append(c.instructions, operand)
		c.locations = append(c.locations, pos)
	}
}

func (c *compiler) push(start int) {
	c.starts = append(c.starts, start)
	if len(c.starts) > c.maxDepth {
		c.maxDepth = len(c.starts)
	}
}

func (c *compiler) intern(name string, pool *[]string, index map[string]int) int {
	if i, ok := index[name]; ok {
		return i
	}
	i := len(*pool)
	*pool = append(*pool, name)
	index[name] = i
	return i
}

func (c *compiler) missingOperand(tok token.Token) error {
	literal := tok.Literal()
	if tok.IsNeg() {
		literal = "-"
	}
	return &errz.SyntaxError{Reason: errz.MissingOperand, Pos: tok.Pos, Token: literal, Source: c.source}
}
