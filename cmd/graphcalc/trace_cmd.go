package main

import (
	"fmt"
	"strings"

	"github.com/cloudcmds/graphcalc/dis"
	"github.com/cloudcmds/graphcalc/internal/table"
	"github.com/cloudcmds/graphcalc/vm"
	"github.com/spf13/cobra"
)

func newTraceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace EXPR",
		Short: "Show the operand stack after each instruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, _ := cmd.Flags().GetFloat64("x")
			rawVars, _ := cmd.Flags().GetStringToString("var")
			vars, err := parseVars(rawVars)
			if err != nil {
				return err
			}
			vars["x"] = x

			program, err := a.compile(args[0])
			if err != nil {
				return err
			}
			instructions, err := dis.Disassemble(program.Code())
			if err != nil {
				return err
			}
			info := make(map[int]string, len(instructions))
			for _, instr := range instructions {
				info[instr.Offset] = instr.Annotation
			}

			var rows [][]string
			observer := vm.ObserverFunc(func(event vm.StepEvent) bool {
				rows = append(rows, []string{
					fmt.Sprintf("%d", event.IP),
					event.OpcodeName,
					info[event.IP],
					fmt.Sprintf("%d", event.Location),
					formatStack(event.Stack),
				})
				return true
			})
			result, evalErr := vm.New(vm.WithObserver(observer)).Eval(program.Code(), vm.Vars(vars))

			table.NewTable(a.stdout).
				WithHeader([]string{"OFFSET", "OPCODE", "INFO", "POS", "STACK"}).
				WithColumnAlignment([]table.Alignment{
					table.AlignRight,
					table.AlignLeft,
					table.AlignLeft,
					table.AlignRight,
					table.AlignLeft,
				}).
				WithRows(rows).
				Render()
			if evalErr != nil {
				return evalErr
			}
			fmt.Fprintf(a.stdout, "result: %s\n", formatFloat(result))
			return nil
		},
	}
	cmd.Flags().Float64("x", 0, "value of x")
	cmd.Flags().StringToString("var", nil, "other variables as name=value")
	return cmd
}

func formatStack(stack []float64) string {
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
