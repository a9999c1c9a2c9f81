package main

import (
	"github.com/cloudcmds/graphcalc/dis"
	"github.com/spf13/cobra"
)

func newDisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dis EXPR",
		Short: "Disassemble a compiled expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := a.compile(args[0])
			if err != nil {
				return err
			}
			instructions, err := dis.Disassemble(program.Code())
			if err != nil {
				return err
			}
			dis.Print(instructions, a.stdout)
			return nil
		},
	}
}
