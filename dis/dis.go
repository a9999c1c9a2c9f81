// Package dis supports analysis of compiled expressions by disassembling
// them. This works with the opcodes defined in the `op` package and uses the
// InstructionIter type from the `bytecode` package.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudcmds/graphcalc/bytecode"
	"github.com/cloudcmds/graphcalc/internal/table"
	"github.com/cloudcmds/graphcalc/op"
	"github.com/fatih/color"
)

// Instruction represents a single instruction and its operands.
type Instruction struct {
	Offset     int
	Name       string
	Opcode     op.Code
	Operands   []op.Code
	Annotation string
	// Constant is set for LOAD_CONST.
	Constant *float64
	// Location is the source offset of the token the instruction came from.
	Location int
}

// Disassemble returns a parsed representation of the given program.
func Disassemble(code *bytecode.Code) ([]Instruction, error) {
	var instructions []Instruction
	iter := bytecode.NewInstructionIter(code)
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		info := op.GetInfo(val.Code)
		if info.Name == "" {
			return nil, fmt.Errorf("unknown opcode %d at offset %d", val.Code, val.Offset)
		}
		instr := Instruction{
			Offset:   val.Offset,
			Name:     info.Name,
			Opcode:   val.Code,
			Location: code.LocationAt(val.Offset),
		}
		if info.OperandCount > 0 {
			instr.Operands = []op.Code{val.Operand}
		}
		index := int(val.Operand)
		switch val.Code {
		case op.LoadConst:
			if index >= code.ConstantCount() {
				return nil, fmt.Errorf("constant index out of range: %d", index)
			}
			c := code.ConstantAt(index)
			instr.Constant = &c
			instr.Annotation = fmt.Sprintf("%v", c)
		case op.LoadVar:
			if index >= code.NameCount() {
				return nil, fmt.Errorf("name index out of range: %d", index)
			}
			instr.Annotation = code.NameAt(index)
		case op.Call:
			if index >= code.FunctionCount() {
				return nil, fmt.Errorf("function index out of range: %d", index)
			}
			instr.Annotation = code.FunctionNameAt(index)
		case op.BinaryOp:
			instr.Annotation = op.BinaryOpType(val.Operand).String()
		case op.UnaryNegative:
			instr.Annotation = "-"
		}
		instructions = append(instructions, instr)
	}
	return instructions, nil
}

// Print a string representation of the given instructions to the given
// writer. Colors follow color.NoColor.
func Print(instructions []Instruction, writer io.Writer) {
	bold := color.New(color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgHiCyan).SprintFunc()

	var lines [][]string
	for _, instr := range instructions {
		values := []string{
			fmt.Sprintf("%d", instr.Offset),
			bold(instr.Name),
			formatOperands(instr.Operands),
		}
		switch {
		case instr.Constant != nil:
			values = append(values, yellow(instr.Annotation))
		case instr.Annotation != "":
			values = append(values, cyan(instr.Annotation))
		default:
			values = append(values, "")
		}
		lines = append(lines, values)
	}

	table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

func formatOperands(ops []op.Code) string {
	var sb strings.Builder
	for i, op := range ops {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%d", op))
	}
	return sb.String()
}
