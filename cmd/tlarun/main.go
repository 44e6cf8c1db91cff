// Command tlarun computes the initial and reachable states of a TLA+
// subset module and prints them as Informal Trace Format JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vkazan/tlarun/internal/app"
	"github.com/vkazan/tlarun/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, exitClean, err := cli.Parse(os.Args[1:], os.Stderr)
	if exitClean {
		return 0
	}
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	a := app.NewAppStderr(os.Stdout, cfg)
	if err := a.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
