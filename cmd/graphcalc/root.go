package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/cloudcmds/graphcalc"
	"github.com/cloudcmds/graphcalc/plot"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the configuration and streams shared by every command.
type app struct {
	v       *viper.Viper
	cfgFile string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  zerolog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		v:      viper.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zerolog.Nop(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "graphcalc",
		Short:         "Compile, evaluate and plot expressions in x",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.graphcalc.yaml)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level: trace, debug, info, warn or error")
	flags.Int("workers", runtime.NumCPU(), "goroutines used for sampling")
	flags.Bool("permissive-parens", false, "ignore unmatched parentheses")
	if err := a.v.BindPFlags(flags); err != nil {
		fatal(err)
	}

	root.AddCommand(
		newEvalCmd(a),
		newSampleCmd(a),
		newPlotCmd(a),
		newDisCmd(a),
		newTraceCmd(a),
		newCheckCmd(a),
		newVersionCmd(a),
	)
	return root
}

// initialize reads the config file and environment, then applies the global
// flags.
func (a *app) initialize() error {
	a.v.SetEnvPrefix("graphcalc")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindEnv("no-color", "GRAPHCALC_NO_COLOR", "NO_COLOR"); err != nil {
		return err
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".graphcalc")
		a.v.SetConfigType("yaml")
	}
	configErr := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if configErr != nil && (a.cfgFile != "" || !errors.As(configErr, &notFound)) {
		return fmt.Errorf("read config: %w", configErr)
	}

	if a.v.GetBool("no-color") {
		color.NoColor = true
	}
	logger, err := newLogger(a.stderr, a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.logger = logger
	if configErr == nil {
		a.logger.Debug().Str("path", a.v.ConfigFileUsed()).Msg("using config file")
	}
	return nil
}

// newLogger writes human readable logs to a terminal and JSON otherwise.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		w = zerolog.ConsoleWriter{Out: f, NoColor: color.NoColor}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func (a *app) compile(source string) (*graphcalc.Program, error) {
	program, err := graphcalc.Compile(source, a.options()...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("source", source).
		Strs("variables", program.Variables()).
		Int("depth", program.Code().MaxDepth()).
		Msg("compiled")
	return program, nil
}

func (a *app) options() []graphcalc.Option {
	opts := []graphcalc.Option{graphcalc.WithLogger(a.logger)}
	if a.v.GetBool("permissive-parens") {
		opts = append(opts, graphcalc.WithPermissiveParens())
	}
	return opts
}

func (a *app) sampler() *plot.Sampler {
	return plot.NewSampler(plot.WithWorkers(a.v.GetInt("workers")), plot.WithLogger(a.logger))
}
