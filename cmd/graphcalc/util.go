package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cloudcmds/graphcalc/errz"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

// describeError renders compile errors with a caret under the failing column.
func describeError(err error) string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return merr.Error()
	}
	var compileErr errz.CompileError
	if errors.As(err, &compileErr) {
		return strings.TrimRight(compileErr.FriendlyErrorMessage(), "\n")
	}
	return err.Error()
}

// formatFloat prints non-finite values as NaN, +Inf and -Inf.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// jsonFloat is a float64 that marshals non-finite values as strings.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(formatFloat(v))
	}
	return json.Marshal(v)
}

type point struct {
	X jsonFloat `json:"x"`
	Y jsonFloat `json:"y"`
}

func (a *app) writeJSON(v any) error {
	var (
		data []byte
		err  error
	)
	if a.v.GetBool("no-color") || color.NoColor {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = prettyjson.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}

var outputFormatsCompletion = []string{"json", "text"}

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func parseVars(raw map[string]string) (map[string]float64, error) {
	vars := make(map[string]float64, len(raw))
	for name, value := range raw {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("variable %s: invalid number %q", name, value)
		}
		vars[name] = v
	}
	return vars, nil
}
