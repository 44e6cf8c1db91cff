package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vkazan/tlarun/internal/config"
)

// ExitError is a custom error type that includes a specific exit code,
// the same shape as the teacher's own ExitError.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// stringList accumulates every occurrence of a repeatable flag, the way
// a single flag.String can't.
type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

// Parse processes command-line arguments. It returns a populated
// config.Config, a boolean indicating if the program should exit
// cleanly (help requested or no module path given), or an ExitError.
func Parse(args []string, output io.Writer) (*config.Config, bool, error) {
	flagSet := flag.NewFlagSet("tlarun", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tlarun - a TLA+ subset interpreter: computes initial and reachable
states of a module and prints them as Informal Trace Format JSON.

Usage:
  tlarun [options] MODULE_PATH

Arguments:
  MODULE_PATH
    Path to a .tla (or restricted-subset) source file.

Options:
`)
		flagSet.PrintDefaults()
	}

	var constExprs stringList
	flagSet.Var(&constExprs, "const", "Repeatable constant binding 'Name=expr', expr being raw TLA+ expression text.")
	constFileFlag := flagSet.String("const-file", "", "Path to an HCL attribute file ('N = 2') supplying constants.")
	maxStatesFlag := flagSet.Int("max-states", 0, "Maximum number of reachable states to explore. 0 is unbounded.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	chooseTraceFlag := flagSet.Bool("choose-trace", false, "Log the domain element CHOOSE selects at every decision point.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	modulePath := flagSet.Arg(0)

	cfg, err := config.NewConfig(config.Config{
		ModulePath:      modulePath,
		ConstExprs:      constExprs,
		ConstFile:       *constFileFlag,
		MaxStates:       *maxStatesFlag,
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
		HealthcheckPort: *healthPortFlag,
		ChooseTrace:     *chooseTraceFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, false, nil
}
