package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/photodrop/types"
)

// NewApp assembles the photodrop CLI. The caller installs ExitErrHandler.
func NewApp(commit string) *cli.App {
	return &cli.App{
		Name:    "photodrop",
		Usage:   "Validate and upload photos to a script endpoint",
		Version: fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		Commands: []*cli.Command{
			SubmitCommand(),
			ValidateCommand(),
			SlideshowCommand(),
			VersionCommand(commit),
		},
	}
}
