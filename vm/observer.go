package vm

import "github.com/cloudcmds/graphcalc/op"

// Observer receives a callback after each instruction a Machine executes.
// Observer methods are called synchronously during evaluation.
type Observer interface {
	// OnStep is called after an instruction has executed. Returning false
	// halts evaluation with ErrHalted.
	OnStep(event StepEvent) bool
}

// StepEvent describes one executed instruction.
type StepEvent struct {
	// IP is the offset of the opcode word.
	IP         int
	Opcode     op.Code
	OpcodeName string
	// Operand is zero for opcodes without one.
	Operand op.Code
	// Location is the source offset of the token the instruction came from.
	Location int
	// Stack is a copy of the operand stack after the instruction, bottom
	// first.
	Stack []float64
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event StepEvent) bool

func (f ObserverFunc) OnStep(event StepEvent) bool {
	return f(event)
}
