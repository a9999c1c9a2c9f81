package main

import (
	"encoding/csv"
	"fmt"

	"github.com/spf13/cobra"
)

func newSampleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample EXPR",
		Short: "Print evenly spaced samples of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetFloat64("from")
			to, _ := cmd.Flags().GetFloat64("to")
			n, _ := cmd.Flags().GetInt("n")
			format, _ := cmd.Flags().GetString("output")
			if err := checkFormat(format, "text", "json", "csv"); err != nil {
				return err
			}
			program, err := a.compile(args[0])
			if err != nil {
				return err
			}
			samples, err := a.sampler().Range(program.Code(), from, to, n)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				points := make([]point, len(samples))
				for i, s := range samples {
					points[i] = point{X: jsonFloat(s.X), Y: jsonFloat(s.Y)}
				}
				return a.writeJSON(points)
			case "csv":
				w := csv.NewWriter(a.stdout)
				_ = w.Write([]string{"x", "y"})
				for _, s := range samples {
					_ = w.Write([]string{formatFloat(s.X), formatFloat(s.Y)})
				}
				w.Flush()
				return w.Error()
			}
			for _, s := range samples {
				fmt.Fprintf(a.stdout, "%s\t%s\n", formatFloat(s.X), formatFloat(s.Y))
			}
			return nil
		},
	}
	cmd.Flags().Float64("from", -5, "first x")
	cmd.Flags().Float64("to", 5, "last x")
	cmd.Flags().Int("n", 11, "number of samples")
	cmd.Flags().StringP("output", "o", "text", "output format: text, json or csv")
	return cmd
}
