// Package bytecode defines the compiled form of an expression.
package bytecode

import (
	"github.com/cloudcmds/graphcalc/builtins"
	"github.com/cloudcmds/graphcalc/op"
	"github.com/cloudcmds/graphcalc/token"
)

// Code is a compiled expression: the postfix token sequence and its lowering
// into instructions. Code is immutable after construction and may be
// evaluated from many goroutines at once.
type Code struct {
	source       string
	tokens       []token.Token
	instructions []op.Code
	constants    []float64
	names        []string
	functions    []string
	funcs        []builtins.Func
	locations    []int
	maxDepth     int
}

// CodeParams contains the parameters for creating a new Code object.
type CodeParams struct {
	Source string
	// Tokens is the postfix token sequence the instructions were lowered
	// from. It contains no parentheses.
	Tokens       []token.Token
	Instructions []op.Code
	Constants    []float64
	// Names holds the variable names referenced by LOAD_VAR.
	Names []string
	// Functions holds the built-in names referenced by CALL.
	Functions []string
	// Locations holds the source offset of each instruction word.
	Locations []int
	MaxDepth  int
}

// NewCode creates a new immutable Code object. All slices are copied so the
// caller may reuse its buffers. Function names are resolved once here; a name
// that is not a built-in resolves to nil and fails at evaluation.
func NewCode(params CodeParams) *Code {
	functions := copyStrings(params.Functions)
	funcs := make([]builtins.Func, len(functions))
	for i, name := range functions {
		funcs[i], _ = builtins.Lookup(name)
	}
	return &Code{
		source:       params.Source,
		tokens:       copyTokens(params.Tokens),
		instructions: copyInstructions(params.Instructions),
		constants:    copyFloats(params.Constants),
		names:        copyStrings(params.Names),
		functions:    functions,
		funcs:        funcs,
		locations:    copyInts(params.Locations),
		maxDepth:     params.MaxDepth,
	}
}

// Source returns the expression the code was compiled from.
func (c *Code) Source() string {
	return c.source
}

// Tokens returns a copy of the postfix token sequence.
func (c *Code) Tokens() []token.Token {
	return copyTokens(c.tokens)
}

// MaxDepth returns the deepest operand stack the instructions reach.
func (c *Code) MaxDepth() int {
	return c.maxDepth
}

// InstructionCount returns the number of instruction words, operands
// included.
func (c *Code) InstructionCount() int {
	return len(c.instructions)
}

// InstructionAt returns the instruction word at the given index.
func (c *Code) InstructionAt(index int) op.Code {
	return c.instructions[index]
}

// Instructions returns a copy of all instruction words.
func (c *Code) Instructions() []op.Code {
	return copyInstructions(c.instructions)
}

func (c *Code) ConstantCount() int {
	return len(c.constants)
}

func (c *Code) ConstantAt(index int) float64 {
	return c.constants[index]
}

func (c *Code) NameCount() int {
	return len(c.names)
}

func (c *Code) NameAt(index int) string {
	return c.names[index]
}

func (c *Code) FunctionCount() int {
	return len(c.functions)
}

// FunctionNameAt returns the name of the built-in at the given index.
func (c *Code) FunctionNameAt(index int) string {
	return c.functions[index]
}

// FunctionAt returns the resolved built-in at the given index, or nil if the
// name did not resolve.
func (c *Code) FunctionAt(index int) builtins.Func {
	return c.funcs[index]
}

// LocationAt returns the source offset for the instruction word at ip, or -1
// if ip is out of range.
func (c *Code) LocationAt(ip int) int {
	if ip < 0 || ip >= len(c.locations) {
		return -1
	}
	return c.locations[ip]
}
