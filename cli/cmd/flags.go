// Package cmd provides the photodrop CLI commands.
package cmd

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/photodrop/log"
)

// Exit codes shared by all commands.
const (
	exitSuccess           = 0
	exitSubmissionFailure = 1
	exitInvalidFile       = 2
	exitConfigError       = 3
)

// Shared flags.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml (default: table on a terminal, json otherwise)",
	}

	// ConfigFlag points at a photodrop.yaml file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to photodrop.yaml (CLI flags override its values)",
		EnvVars: []string{"PHOTODROP_CONFIG"},
	}

	// FileFlag names the photo to act on.
	FileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"i"},
		Usage:   "Path to the photo",
	}

	// MaxSizeFlag overrides the acceptance size limit.
	MaxSizeFlag = &cli.Float64Flag{
		Name:  "max-size-mb",
		Usage: "Largest accepted file in MB",
	}

	// AllowedTypeFlag overrides the accepted media types.
	AllowedTypeFlag = &cli.StringSliceFlag{
		Name:  "allowed-type",
		Usage: "Accepted media type, repeatable (replaces the default list)",
	}

	// QuietFlag suppresses result output and info logs.
	QuietFlag = &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "Suppress result output and info logs",
	}
)

// ReadOnlyFlags returns the flags shared by commands that only report.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{FormatFlag, ConfigFlag}
}

// errWriter returns where diagnostics go.
func errWriter(c *cli.Context) io.Writer {
	if c.App != nil && c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// newLogger builds the command logger. --quiet raises the level to warn.
func newLogger(c *cli.Context) *log.Logger {
	level := "info"
	if c.Bool("quiet") {
		level = "warn"
	}
	return log.NewLogger(log.Options{Output: errWriter(c), Level: level})
}
