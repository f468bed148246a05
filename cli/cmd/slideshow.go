package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/photodrop/cli/render"
	"github.com/justapithecus/photodrop/slideshow"
)

// SlideshowReport is the rendered result of the slideshow command: the raw
// parameters plus their durations.
type SlideshowReport struct {
	slideshow.Settings `yaml:",inline"`

	Slide    string `json:"slide" yaml:"slide"`
	Fade     string `json:"fade" yaml:"fade"`
	HalfLife string `json:"half_life" yaml:"half_life"`
}

func newSlideshowReport(s slideshow.Settings) SlideshowReport {
	return SlideshowReport{
		Settings: s,
		Slide:    s.Slide().String(),
		Fade:     s.Fade().String(),
		HalfLife: s.HalfLife().String(),
	}
}

// TableRows implements render.Tabler.
func (r SlideshowReport) TableRows() []render.Row {
	return []render.Row{
		{Key: "api_base", Value: r.APIBase},
		{Key: "slide", Value: r.Slide},
		{Key: "fade", Value: r.Fade},
		{Key: "half_life", Value: r.HalfLife},
		{Key: "shuffle_batch", Value: strconv.Itoa(r.ShuffleBatch)},
	}
}

// SlideshowCommand returns the slideshow command, which prints the resolved
// slideshow parameters and checks them.
func SlideshowCommand() *cli.Command {
	return &cli.Command{
		Name:   "slideshow",
		Usage:  "Show and check the slideshow display parameters",
		Flags:  ReadOnlyFlags(),
		Action: slideshowAction,
	}
}

func slideshowAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	settings := cfg.SlideshowSettings()
	if err := r.Render(newSlideshowReport(settings)); err != nil {
		return fmt.Errorf("render settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return cli.Exit(fmt.Sprintf("invalid slideshow settings: %v", err), exitConfigError)
	}
	return nil
}
