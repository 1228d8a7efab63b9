package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/towerstrike/synthesis.game/internal/app"
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

// Parse processes command-line arguments. It returns a populated app
// Config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("synthplan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
synthplan - staged build planner for the synthesis.game module tree.

Scans the source tree, resolves module dependencies, and emits an
ordered, stage-partitioned build plan for the external build backend.

Usage:
  synthplan [options] [SOURCE_ROOT]

Arguments:
  SOURCE_ROOT
    Root of the source tree (defaults to the current directory). A
    synthplan.hcl manifest at the root, when present, configures the
    unit trees, target platform, and emit settings.

Options:
`)
		flagSet.PrintDefaults()
	}

	targetFlag := flagSet.String("target", "", "Target platform: 'generic', 'linux', 'windows', or 'mac'. Overrides the manifest.")
	tFlag := flagSet.String("t", "", "Target platform (shorthand).")
	formatFlag := flagSet.String("format", "", "Emit format: 'stages' or 'compiledb'. Overrides the manifest.")
	outFlag := flagSet.String("out", "", "Plan artifact path. Overrides the manifest.")
	oFlag := flagSet.String("o", "", "Plan artifact path (shorthand).")
	watchFlag := flagSet.Bool("watch", false, "Re-plan whenever the source tree changes.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	root := "."
	if flagSet.NArg() > 0 {
		root = flagSet.Arg(0)
	}

	target := *targetFlag
	if target == "" {
		target = *tFlag
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *formatFlag != "" && *formatFlag != "stages" && *formatFlag != "compiledb" {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'stages' or 'compiledb'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		RootPath:  root,
		Target:    target,
		Format:    *formatFlag,
		Output:    outPath,
		Watch:     *watchFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "root", config.RootPath)
	return config, false, nil
}
