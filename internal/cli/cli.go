package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/bayesgridgo/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `BayesGridGo - draws Bayesian networks and checks their probability tables.

Reads a network description (HCL, YAML or JSON; a file or a directory of
them), renders its structure with one probability table per variable as
DOT, SVG, PNG or PDF, and optionally assembles and checks the discrete
Bayesian model. Formats other than dot need Graphviz installed.

Arguments:
  NETWORK_PATH
    Path to a network file or a directory containing network files.`

type flags struct {
	network   string
	output    string
	format    string
	noGraph   bool
	noTables  bool
	model     bool
	modelOut  string
	watch     bool
	logFormat string
	logLevel  string
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		f   flags
		cfg *app.Config
	)

	cmd := &cobra.Command{
		Use:           "bayesgridgo [flags] [NETWORK_PATH]",
		Short:         "Draw and check Bayesian networks",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			path := f.network
			if path == "" && len(positional) > 0 {
				path = positional[0]
			}
			slog.Debug("Network path determined.", "path", path)

			if path == "" {
				slog.Debug("No network path provided, printing usage and exiting.")
				return cmd.Help()
			}

			c, err := app.NewConfig(app.Config{
				NetworkPath: path,
				OutputPath:  f.output,
				Format:      strings.ToLower(f.format),
				Graph:       !f.noGraph,
				Tables:      !f.noTables,
				Model:       f.model || f.modelOut != "",
				ModelPath:   f.modelOut,
				Watch:       f.watch,
				LogFormat:   strings.ToLower(f.logFormat),
				LogLevel:    strings.ToLower(f.logLevel),
			})
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			cfg = c
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	fs := cmd.Flags()
	fs.StringVarP(&f.network, "network", "n", "", "Path to the network file or directory.")
	fs.StringVarP(&f.output, "output", "o", "", "Graph output file, '-' for stdout. Defaults to the network path with the format as extension.")
	fs.StringVarP(&f.format, "format", "f", "dot", "Graph output format. Options: 'dot', 'svg', 'png', 'pdf'.")
	fs.BoolVar(&f.noGraph, "no-graph", false, "Skip rendering the graph.")
	fs.BoolVar(&f.noTables, "no-tables", false, "Render the structure only, without probability tables.")
	fs.BoolVar(&f.model, "model", false, "Build and check the Bayesian model and print its CPDs.")
	fs.StringVar(&f.modelOut, "model-out", "", "Write the assembled model as YAML to this file, '-' for stdout. Implies --model.")
	fs.BoolVarP(&f.watch, "watch", "w", false, "Re-run whenever the network changes.")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg == nil {
		// --help, or no network path.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
