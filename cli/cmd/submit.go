package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/photodrop/adapter"
	"github.com/justapithecus/photodrop/cli/config"
	"github.com/justapithecus/photodrop/cli/render"
	"github.com/justapithecus/photodrop/cli/tui"
	"github.com/justapithecus/photodrop/intake"
	"github.com/justapithecus/photodrop/iox"
	"github.com/justapithecus/photodrop/metrics"
	"github.com/justapithecus/photodrop/submit"
	"github.com/justapithecus/photodrop/transport"
	"github.com/justapithecus/photodrop/types"
)

// SubmitResult is the rendered result of the submit command.
type SubmitResult struct {
	Status       types.OutcomeStatus `json:"status" yaml:"status"`
	SubmissionID string              `json:"submission_id,omitempty" yaml:"submission_id,omitempty"`
	File         string              `json:"file" yaml:"file"`
	MimeType     string              `json:"mime_type" yaml:"mime_type"`
	Size         int64               `json:"size" yaml:"size"`
	ReceiptID    string              `json:"receipt_id,omitempty" yaml:"receipt_id,omitempty"`
	ViaFallback  bool                `json:"via_fallback" yaml:"via_fallback"`
	Reason       string              `json:"reason,omitempty" yaml:"reason,omitempty"`
	Kind         string              `json:"kind,omitempty" yaml:"kind,omitempty"`
	DurationMs   int64               `json:"duration_ms" yaml:"duration_ms"`
	Metrics      *metrics.Snapshot   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// SubmitCommand returns the submit command.
func SubmitCommand() *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Validate a photo and upload it to the endpoint",
		Flags: []cli.Flag{
			FileFlag,
			&cli.StringFlag{
				Name:  "comment",
				Usage: "Comment sent with the photo",
			},
			&cli.StringFlag{
				Name:  "contact",
				Usage: "Optional contact (omitted when blank)",
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "Upload endpoint URL",
				EnvVars: []string{"PHOTODROP_ENDPOINT"},
			},
			&cli.BoolFlag{
				Name:    "agree",
				Usage:   "Confirm you have permission to share this photo",
				EnvVars: []string{"PHOTODROP_AGREE"},
			},
			ConfigFlag,
			MaxSizeFlag,
			AllowedTypeFlag,
			&cli.BoolFlag{
				Name:  "no-fallback",
				Usage: "Do not resend in blind mode when the readable upload fails",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request upload timeout",
				Value: transport.DefaultTimeout,
			},
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "Content-Type of the upload request",
				Value: transport.DefaultContentType,
			},
			&cli.StringSliceFlag{
				Name:  "header",
				Usage: "Extra upload header as Key=Value, repeatable",
			},
			&cli.StringFlag{
				Name:  "notify-type",
				Usage: "Publish a completion event: webhook or redis",
			},
			&cli.StringFlag{
				Name:  "notify-url",
				Usage: "Webhook URL or redis:// URL for --notify-type",
			},
			&cli.StringFlag{
				Name:  "notify-channel",
				Usage: "Redis channel (default: photodrop:submission_completed)",
			},
			&cli.DurationFlag{
				Name:  "notify-timeout",
				Usage: "Per-attempt notification timeout (default: adapter specific)",
			},
			&cli.IntFlag{
				Name:  "notify-retries",
				Usage: "Notification retry attempts",
				Value: 3,
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Show a live status view",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Include submission counters in the result",
			},
			FormatFlag,
			QuietFlag,
		},
		Action: submitAction,
	}
}

func submitAction(c *cli.Context) error {
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

	endpoint := resolveString(c, "endpoint", configVal(cfg, func(c *config.Config) string { return c.Endpoint }))
	if err := submit.CheckEndpoint(endpoint); err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	tr, err := buildTransport(c, cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	defer iox.DiscardClose(tr)

	notifier, err := resolveAdapter(c, cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid notification config: %v", err), exitConfigError)
	}
	if notifier != nil {
		defer iox.DiscardClose(notifier)
	}

	logger := newLogger(c)
	defer func() { _ = logger.Sync() }()
	collector := metrics.NewCollector(endpointHost(endpoint))

	file, err := intake.Open(c.String("file"))
	if err == nil {
		err = policy.Validate(file)
	}
	if err == nil && !resolveBool(c, "agree", cfg.Agreed()) {
		err = types.NewSubmissionError(types.ErrPermissionRequired, "submit",
			"permission to share the photo is required (pass --agree)", nil)
	}
	if err != nil {
		collector.IncValidationRejected(kindName(err))
		logger.Warn("file rejected", map[string]any{"reason": err.Error()})
		if !c.Bool("quiet") {
			result := newSubmitResult(file, types.Failure(err), 0)
			if c.Bool("metrics") {
				snap := collector.Snapshot()
				result.Metrics = &snap
			}
			if rerr := r.Render(result); rerr != nil {
				return fmt.Errorf("render result: %w", rerr)
			}
		}
		return cli.Exit(err.Error(), exitInvalidFile)
	}

	noFallback := resolveBool(c, "no-fallback", !cfg.FallbackEnabled())
	submitter := submit.New(tr,
		submit.WithLogger(logger),
		submit.WithMetrics(collector),
		submit.WithFallback(!noFallback),
	)
	meta := types.Metadata{
		Comment: c.String("comment"),
		Contact: c.String("contact"),
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	started := time.Now()
	send := func() *types.Outcome {
		return submitter.Submit(ctx, file, meta, endpoint)
	}

	var outcome *types.Outcome
	if c.Bool("tui") {
		info := tui.Info{File: file, Endpoint: endpoint, Comment: meta.Comment}
		outcome, err = tui.RunSubmit(info, send, cancel)
		if err != nil {
			logger.Warn("status view failed", map[string]any{"error": err.Error()})
		}
	} else {
		outcome = send()
	}
	took := time.Since(started)

	if notifier != nil {
		ev := adapter.NewEvent(file, outcome, time.Now(), took)
		publishEvent(context.WithoutCancel(ctx), notifier, ev, logger)
	}

	if !c.Bool("quiet") && (!c.Bool("tui") || c.IsSet("format")) {
		result := newSubmitResult(file, outcome, took)
		if c.Bool("metrics") {
			snap := collector.Snapshot()
			result.Metrics = &snap
		}
		if err := r.Render(result); err != nil {
			return fmt.Errorf("render result: %w", err)
		}
	}

	if code := outcomeExitCode(outcome); code != exitSuccess {
		return cli.Exit(outcome.Reason, code)
	}
	return nil
}

func buildTransport(c *cli.Context, cfg *config.Config) (*transport.HTTPTransport, error) {
	headers, err := parseHeaders(cfg.TransportHeaders(), c.StringSlice("header"))
	if err != nil {
		return nil, err
	}
	return transport.NewHTTP(transport.Config{
		Timeout:     resolveDuration(c, "timeout", configVal(cfg, func(c *config.Config) time.Duration { return c.Transport.Timeout.Duration })),
		ContentType: resolveString(c, "content-type", configVal(cfg, func(c *config.Config) string { return c.Transport.ContentType })),
		Headers:     headers,
	}), nil
}

func newSubmitResult(file *types.CandidateFile, o *types.Outcome, took time.Duration) SubmitResult {
	res := SubmitResult{
		Status:       o.Status,
		SubmissionID: o.SubmissionID,
		ReceiptID:    o.ReceiptID,
		ViaFallback:  o.ViaFallback,
		Reason:       o.Reason,
		Kind:         o.Kind,
		DurationMs:   took.Milliseconds(),
	}
	if file != nil {
		res.File = file.Name
		res.MimeType = file.MimeType
		res.Size = file.Size
	}
	return res
}

// outcomeExitCode maps an outcome to the process exit code. A misconfigured
// endpoint is a configuration error, not a delivery failure.
func outcomeExitCode(o *types.Outcome) int {
	switch {
	case o.OK():
		return exitSuccess
	case o.Is(types.ErrEndpointNotConfigured):
		return exitConfigError
	case o.Is(types.ErrNoFileSelected), o.Is(types.ErrUnsupportedType), o.Is(types.ErrFileTooLarge),
		o.Is(types.ErrPermissionRequired):
		return exitInvalidFile
	default:
		return exitSubmissionFailure
	}
}

func kindName(err error) string {
	if kind := types.Classify(err); kind != nil {
		return kind.Error()
	}
	return "unknown"
}

func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Host
}
