package bytecode

import "github.com/cloudcmds/graphcalc/op"

// Instruction is one decoded instruction.
type Instruction struct {
	// Offset is the index of the opcode word.
	Offset  int
	Code    op.Code
	Operand op.Code
}

// InstructionIter iterates over the instructions in a Code object.
type InstructionIter struct {
	code *Code
	pos  int
}

// NewInstructionIter creates a new instruction iterator for the given code.
func NewInstructionIter(code *Code) *InstructionIter {
	return &InstructionIter{code: code}
}

// Next returns the next instruction. Returns false when there are no more
// instructions, or when an opcode is missing its operand.
func (i *InstructionIter) Next() (Instruction, bool) {
	if i.pos >= i.code.InstructionCount() {
		return Instruction{}, false
	}
	instr := Instruction{Offset: i.pos, Code: i.code.InstructionAt(i.pos)}
	i.pos++
	if op.GetInfo(instr.Code).OperandCount > 0 {
		if i.pos >= i.code.InstructionCount() {
			return Instruction{}, false
		}
		instr.Operand = i.code.InstructionAt(i.pos)
		i.pos++
	}
	return instr, true
}

// All returns all remaining instructions as a newly allocated slice.
func (i *InstructionIter) All() []Instruction {
	var results []Instruction
	for {
		instr, ok := i.Next()
		if !ok {
			break
		}
		results = append(results, instr)
	}
	return results
}
