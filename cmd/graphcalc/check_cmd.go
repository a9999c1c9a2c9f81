package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/cloudcmds/graphcalc"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [EXPR...]",
		Short: "Compile expressions and report every failure",
		Long: `Compile each argument, or with --stdin each non-blank input line, and
report all failures together. Input lines are treated as successive edits of
one expression; the last one that compiled is printed at the end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdin, _ := cmd.Flags().GetBool("stdin")
			quiet, _ := cmd.Flags().GetBool("quiet")
			if stdin && len(args) > 0 {
				return fmt.Errorf("multiple input sources specified")
			}
			if !stdin && len(args) == 0 {
				return fmt.Errorf("no input provided")
			}

			var result *multierror.Error
			report := func(label, source string, err error) {
				if err != nil {
					result = multierror.Append(result, &checkError{label: label, err: err})
					return
				}
				if !quiet {
					fmt.Fprintf(a.stdout, "%s %s\n", green("ok"), source)
				}
			}

			if stdin {
				session := graphcalc.NewSession(a.options()...)
				scanner := bufio.NewScanner(a.stdin)
				line := 0
				for scanner.Scan() {
					line++
					source := scanner.Text()
					if strings.TrimSpace(source) == "" {
						continue
					}
					report(fmt.Sprintf("line %d", line), source, session.Update(source))
				}
				if err := scanner.Err(); err != nil {
					return err
				}
				if gen := session.Current(); gen != nil && !quiet {
					fmt.Fprintf(a.stdout, "last good: %s\n", gen.Program.Source())
				}
			} else {
				for i, source := range args {
					_, err := a.compile(source)
					report(fmt.Sprintf("argument %d", i+1), source, err)
				}
			}

			if result == nil {
				return nil
			}
			result.ErrorFormat = formatCheckErrors
			return result
		},
	}
	cmd.Flags().Bool("stdin", false, "read expressions from stdin, one per line")
	cmd.Flags().BoolP("quiet", "q", false, "print failures only")
	return cmd
}

type checkError struct {
	label string
	err   error
}

func (e *checkError) Error() string {
	return e.label + ": " + describeError(e.err)
}

func (e *checkError) Unwrap() error {
	return e.err
}

func formatCheckErrors(errs []error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of the expressions failed to compile:", len(errs))
	for _, err := range errs {
		sb.WriteString("\n\n")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
