// Package vm evaluates compiled expressions.
package vm

import (
	"errors"
	"fmt"

	"github.com/cloudcmds/graphcalc/builtins"
	"github.com/cloudcmds/graphcalc/bytecode"
	"github.com/cloudcmds/graphcalc/errz"
	"github.com/cloudcmds/graphcalc/op"
)

// MaxInlineDepth is the deepest program Eval evaluates without allocating
// a stack.
const MaxInlineDepth = 32

// ErrHalted is returned when an observer stops evaluation.
var ErrHalted = errors.New("evaluation halted by observer")

// Eval evaluates a program against the given bindings.
func Eval(code *bytecode.Code, bindings Bindings) (float64, error) {
	var buf [MaxInlineDepth]float64
	stack := buf[:]
	if depth := code.MaxDepth(); depth > len(stack) {
		stack = make([]float64, depth)
	}
	return run(code, bindings, stack, nil)
}

// Machine is a reusable evaluator. It keeps its operand stack between calls,
// so a Machine must not be used from more than one goroutine at a time.
type Machine struct {
	stack    []float64
	observer Observer
}

// New returns a Machine configured with the given options.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Eval evaluates a program against the given bindings.
func (m *Machine) Eval(code *bytecode.Code, bindings Bindings) (float64, error) {
	if depth := code.MaxDepth(); depth > len(m.stack) {
		m.stack = make([]float64, depth)
	}
	return run(code, bindings, m.stack, m.observer)
}

func run(code *bytecode.Code, bindings Bindings, stack []float64, observer Observer) (float64, error) {
	sp := 0
	count := code.InstructionCount()
	for ip := 0; ip < count; {
		offset := ip
		opcode := code.InstructionAt(ip)
		ip++
		var operand op.Code
		if op.GetInfo(opcode).OperandCount > 0 {
			if ip >= count {
				return 0, malformed(offset, "missing operand for %s", op.GetInfo(opcode).Name)
			}
			operand = code.InstructionAt(ip)
			ip++
		}
		if sp == len(stack) {
			stack = append(stack, 0)
			stack = stack[:cap(stack)]
		}

		switch opcode {
		case op.LoadConst:
			if int(operand) >= code.ConstantCount() {
				return 0, malformed(offset, "constant %d out of range", operand)
			}
			stack[sp] = code.ConstantAt(int(operand))
			sp++
		case op.LoadVar:
			if int(operand) >= code.NameCount() {
				return 0, malformed(offset, "name %d out of range", operand)
			}
			name := code.NameAt(int(operand))
			value, ok := bindings.Lookup(name)
			if !ok {
				return 0, &errz.UnboundVariableError{Name: name}
			}
			stack[sp] = value
			sp++
		case op.BinaryOp:
			if sp < 2 {
				return 0, malformed(offset, "stack underflow")
			}
			sp--
			stack[sp-1] = builtins.Binary(op.BinaryOpType(operand), stack[sp-1], stack[sp])
		case op.UnaryNegative:
			if sp < 1 {
				return 0, malformed(offset, "stack underflow")
			}
			stack[sp-1] = builtins.Negate(stack[sp-1])
		case op.Call:
			if sp < 1 {
				return 0, malformed(offset, "stack underflow")
			}
			if int(operand) >= code.FunctionCount() || code.FunctionAt(int(operand)) == nil {
				return 0, malformed(offset, "unknown function %d", operand)
			}
			stack[sp-1] = code.FunctionAt(int(operand))(stack[sp-1])
		default:
			return 0, malformed(offset, "unknown opcode %d", opcode)
		}

		if observer != nil {
			event := StepEvent{
				IP:         offset,
				Opcode:     opcode,
				OpcodeName: op.GetInfo(opcode).Name,
				Operand:    operand,
				Location:   code.LocationAt(offset),
				Stack:      append([]float64(nil), stack[:sp]...),
			}
			if !observer.OnStep(event) {
				return 0, ErrHalted
			}
		}
	}
	if sp != 1 {
		return 0, fmt.Errorf("%w: %d values left on the stack", errz.ErrMalformedProgram, sp)
	}
	return stack[0], nil
}

func malformed(offset int, format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", errz.ErrMalformedProgram, fmt.Sprintf(format, args...), offset)
}
