package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/justapithecus/photodrop/cli/render"
	"github.com/justapithecus/photodrop/intake"
)

// ValidationReport describes a file checked against the acceptance policy.
type ValidationReport struct {
	File         string   `json:"file" yaml:"file"`
	MimeType     string   `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Size         int64    `json:"size" yaml:"size"`
	Accepted     bool     `json:"accepted" yaml:"accepted"`
	Reason       string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Kind         string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	AllowedTypes []string `json:"allowed_types" yaml:"allowed_types"`
	MaxSizeMB    float64  `json:"max_size_mb" yaml:"max_size_mb"`
}

// TableRows implements render.Tabler with human-readable sizes.
func (v ValidationReport) TableRows() []render.Row {
	verdict := "yes"
	if !v.Accepted {
		verdict = "no"
	}
	rows := []render.Row{
		{Key: "file", Value: v.File},
		{Key: "type", Value: v.MimeType},
		{Key: "size", Value: fmt.Sprintf("%s (%s bytes)", humanize.IBytes(uint64(max(v.Size, 0))), humanize.Comma(v.Size))},
		{Key: "accepted", Value: verdict},
	}
	if v.Reason != "" {
		rows = append(rows, render.Row{Key: "reason", Value: v.Reason})
	}
	return append(rows,
		render.Row{Key: "allowed", Value: strings.Join(v.AllowedTypes, ", ")},
		render.Row{Key: "limit", Value: humanize.IBytes(uint64(v.MaxSizeMB * 1024 * 1024))},
	)
}

// ValidateCommand returns the validate command.
// It never touches the network.
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check a photo against the acceptance policy without uploading",
		Flags: []cli.Flag{
			FileFlag,
			ConfigFlag,
			MaxSizeFlag,
			AllowedTypeFlag,
			FormatFlag,
		},
		Action: validateAction,
	}
}

func validateAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	policy, err := resolvePolicy(c, cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	report := ValidationReport{
		File:         c.String("file"),
		AllowedTypes: policy.AllowedTypes,
		MaxSizeMB:    policy.MaxSizeMB,
	}

	file, err := intake.Open(c.String("file"))
	if err == nil {
		report.File = file.Name
		report.MimeType = file.MimeType
		report.Size = file.Size
		err = policy.Validate(file)
	}
	if err != nil {
		report.Reason = err.Error()
		report.Kind = kindName(err)
	} else {
		report.Accepted = true
	}

	if err := r.Render(report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if !report.Accepted {
		return cli.Exit("", exitInvalidFile)
	}
	return nil
}
