// Package main provides the photodrop CLI entrypoint.
//
// Usage:
//
//	photodrop <command> [options]
//
// Exit codes:
//   - 0: success (including an unconfirmed blind delivery)
//   - 1: submission failure
//   - 2: invalid file
//   - 3: configuration error
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/photodrop/cli/cmd"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := cmd.NewApp(commit)
	app.ExitErrHandler = func(_ *cli.Context, err error) {
		if err != nil {
			os.Exit(exitCode(os.Stderr, err))
		}
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// exitCode reports err on w and returns the process exit code. Codes from
// cli.Exit pass through; any other error exits 1.
func exitCode(w io.Writer, err error) int {
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		// cli.Exit("", N) carries no message worth printing.
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(w, msg)
		}
		return code
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
