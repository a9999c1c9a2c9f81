// Package op defines opcodes used by the graphcalc compiler and evaluator.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Load
	LoadConst Code = 1
	LoadVar   Code = 2

	// Operations
	BinaryOp      Code = 10
	UnaryNegative Code = 11
	Call          Code = 12
)

// BinaryOpType describes a type of binary operation, as in an operation that
// takes two operands.
type BinaryOpType uint16

const (
	Add      BinaryOpType = 1
	Subtract BinaryOpType = 2
	Multiply BinaryOpType = 3
	Divide   BinaryOpType = 4
	Power    BinaryOpType = 5
)

// String returns the operator symbol of the binary operation, for example
// "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Power:
		return "^"
	default:
		return ""
	}
}

// BinaryOpFor returns the binary operation written as the given symbol.
func BinaryOpFor(symbol byte) (BinaryOpType, bool) {
	switch symbol {
	case '+':
		return Add, true
	case '-':
		return Subtract, true
	case '*':
		return Multiply, true
	case '/':
		return Divide, true
	case '^':
		return Power, true
	default:
		return 0, false
	}
}

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
	// StackEffect is the net change in operand stack depth.
	StackEffect int
	// Pops is the number of operands consumed.
	Pops int
}

var infos = make([]Info, 16)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
		pops  int
		push  int
	}
	ops := []opInfo{
		{LoadConst, "LOAD_CONST", 1, 0, 1},
		{LoadVar, "LOAD_VAR", 1, 0, 1},
		{BinaryOp, "BINARY_OP", 1, 2, 1},
		{UnaryNegative, "UNARY_NEGATIVE", 0, 1, 1},
		{Call, "CALL", 1, 1, 1},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:         o.op,
			Name:         o.name,
			OperandCount: o.count,
			StackEffect:  o.push - o.pops,
			Pops:         o.pops,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	if int(op) >= len(infos) {
		return Info{}
	}
	return infos[op]
}
