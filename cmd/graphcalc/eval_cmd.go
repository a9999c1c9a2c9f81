package main

import (
	"fmt"

	"github.com/cloudcmds/graphcalc/vm"
	"github.com/spf13/cobra"
)

func newEvalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate an expression at one or more values of x",
		Example: `  graphcalc eval "x^2 - 2x + 1" --x 3
  graphcalc eval "a x + b" --x 1 --x 2 --var a=2,b=1 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, _ := cmd.Flags().GetFloat64Slice("x")
			rawVars, _ := cmd.Flags().GetStringToString("var")
			format, _ := cmd.Flags().GetString("output")
			if err := checkFormat(format, "text", "json"); err != nil {
				return err
			}
			vars, err := parseVars(rawVars)
			if err != nil {
				return err
			}
			program, err := a.compile(args[0])
			if err != nil {
				return err
			}

			bindings := vm.Vars(vars)
			results := make([]point, 0, len(xs))
			for _, x := range xs {
				bindings["x"] = x
				y, err := program.EvalWith(bindings)
				if err != nil {
					return err
				}
				results = append(results, point{X: jsonFloat(x), Y: jsonFloat(y)})
			}

			if format == "json" {
				return a.writeJSON(results)
			}
			for _, r := range results {
				if len(results) == 1 {
					fmt.Fprintln(a.stdout, formatFloat(float64(r.Y)))
					continue
				}
				fmt.Fprintf(a.stdout, "%s\t%s\n", formatFloat(float64(r.X)), formatFloat(float64(r.Y)))
			}
			return nil
		},
	}
	cmd.Flags().Float64Slice("x", []float64{0}, "value of x; repeat for several")
	cmd.Flags().StringToString("var", nil, "other variables as name=value")
	cmd.Flags().StringP("output", "o", "text", "output format: text or json")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
