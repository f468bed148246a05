package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/photodrop/adapter"
	"github.com/justapithecus/photodrop/adapter/redis"
	"github.com/justapithecus/photodrop/adapter/webhook"
	"github.com/justapithecus/photodrop/cli/config"
	"github.com/justapithecus/photodrop/log"
)

// adapterChoice is the resolved notification adapter configuration.
type adapterChoice struct {
	adapterType string
	url         string
	channel     string
	headers     map[string]string
	timeout     time.Duration
	retries     int
}

// parseAdapterConfigWithPrecedence resolves adapter settings, CLI over config.
func parseAdapterConfigWithPrecedence(c *cli.Context, cfg *config.Config, adapterType string) (*adapterChoice, error) {
	ac := &adapterChoice{
		adapterType: adapterType,
		url:         resolveString(c, "notify-url", configVal(cfg, func(c *config.Config) string { return c.Adapter.URL })),
		channel:     resolveString(c, "notify-channel", configVal(cfg, func(c *config.Config) string { return c.Adapter.Channel })),
		headers:     configVal(cfg, func(c *config.Config) map[string]string { return c.Adapter.Headers }),
		timeout:     resolveDuration(c, "notify-timeout", configVal(cfg, func(c *config.Config) time.Duration { return c.Adapter.Timeout.Duration })),
		retries:     resolveInt(c, "notify-retries", configVal(cfg, func(c *config.Config) *int { return c.Adapter.Retries })),
	}

	switch adapterType {
	case "webhook", "redis":
		if ac.url == "" {
			return nil, fmt.Errorf("--notify-url is required when --notify-type=%s", adapterType)
		}
	default:
		return nil, fmt.Errorf("unknown notify type %q (must be webhook or redis)", adapterType)
	}
	if ac.retries < 0 {
		return nil, fmt.Errorf("--notify-retries must be >= 0, got %d", ac.retries)
	}
	return ac, nil
}

// buildAdapter creates the adapter described by ac.
func buildAdapter(ac *adapterChoice) (adapter.Adapter, error) {
	switch ac.adapterType {
	case "webhook":
		return webhook.New(webhook.Config{
			URL:     ac.url,
			Headers: ac.headers,
			Timeout: ac.timeout,
			Retries: ac.retries,
		})
	case "redis":
		return redis.New(redis.Config{
			URL:     ac.url,
			Channel: ac.channel,
			Timeout: ac.timeout,
			Retries: ac.retries,
		})
	default:
		return nil, fmt.Errorf("unknown notify type %q", ac.adapterType)
	}
}

// resolveAdapter returns the configured adapter, or nil when notification
// is off.
func resolveAdapter(c *cli.Context, cfg *config.Config) (adapter.Adapter, error) {
	adapterType := resolveString(c, "notify-type", configVal(cfg, func(c *config.Config) string { return c.Adapter.Type }))
	if adapterType == "" {
		return nil, nil
	}
	ac, err := parseAdapterConfigWithPrecedence(c, cfg, adapterType)
	if err != nil {
		return nil, err
	}
	return buildAdapter(ac)
}

// publishEvent publishes ev. A failure is logged and otherwise ignored: the
// submission outcome stands either way.
func publishEvent(ctx context.Context, a adapter.Adapter, ev *adapter.SubmissionCompletedEvent, logger *log.Logger) {
	if err := a.Publish(ctx, ev); err != nil {
		logger.Warn("notification publish failed", map[string]any{
			"submission_id": ev.SubmissionID,
			"error":         err.Error(),
		})
		return
	}
	logger.Debug("notification published", map[string]any{
		"submission_id": ev.SubmissionID,
	})
}
