package config

import (
	"fmt"
	"maps"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/justapithecus/photodrop/intake"
	"github.com/justapithecus/photodrop/slideshow"
)

// Config represents a photodrop.yaml configuration file.
// All values are optional. CLI flags always override config values.
type Config struct {
	Endpoint   string           `yaml:"endpoint"`
	Acceptance AcceptanceConfig `yaml:"acceptance"`
	Transport  TransportConfig  `yaml:"transport"`
	Adapter    AdapterConfig    `yaml:"adapter"`
	Slideshow  SlideshowConfig  `yaml:"slideshow"`
}

// AcceptanceConfig overrides the acceptance policy.
type AcceptanceConfig struct {
	AllowedTypes []string `yaml:"allowed_types,omitempty"`
	MaxSizeMB    *float64 `yaml:"max_size_mb,omitempty"`
	// Agree records standing permission to share submitted photos.
	Agree *bool `yaml:"agree,omitempty"`
}

// TransportConfig holds upload transport options.
type TransportConfig struct {
	Timeout     Duration          `yaml:"timeout,omitempty"`
	ContentType string            `yaml:"content_type,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	// Fallback toggles the blind resend; nil means enabled.
	Fallback *bool `yaml:"fallback,omitempty"`
}

// AdapterConfig holds notification adapter defaults.
type AdapterConfig struct {
	Type    string            `yaml:"type"`
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// SlideshowConfig overrides slideshow parameters. Nil fields keep defaults.
type SlideshowConfig struct {
	APIBase       string   `yaml:"api_base"`
	SlideMs       *int     `yaml:"slide_ms,omitempty"`
	FadeMs        *int     `yaml:"fade_ms,omitempty"`
	HalfLifeHours *float64 `yaml:"half_life_hours,omitempty"`
	ShuffleBatch  *int     `yaml:"shuffle_batch,omitempty"`
}

// Duration wraps time.Duration for YAML strings such as "10s" or "1m30s".
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a Go duration string. An empty string is zero.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Policy returns the acceptance policy with config overrides applied to the
// defaults.
func (c *Config) Policy() intake.Policy {
	p := intake.DefaultPolicy()
	if c == nil {
		return p
	}
	if len(c.Acceptance.AllowedTypes) > 0 {
		p.AllowedTypes = append([]string(nil), c.Acceptance.AllowedTypes...)
	}
	if c.Acceptance.MaxSizeMB != nil {
		p.MaxSizeMB = *c.Acceptance.MaxSizeMB
	}
	return p
}

// SlideshowSettings returns slideshow settings with config overrides applied
// to the defaults.
func (c *Config) SlideshowSettings() slideshow.Settings {
	s := slideshow.Defaults()
	if c == nil {
		return s
	}
	sc := c.Slideshow
	s.APIBase = sc.APIBase
	if sc.SlideMs != nil {
		s.SlideMs = *sc.SlideMs
	}
	if sc.FadeMs != nil {
		s.FadeMs = *sc.FadeMs
	}
	if sc.HalfLifeHours != nil {
		s.HalfLifeHours = *sc.HalfLifeHours
	}
	if sc.ShuffleBatch != nil {
		s.ShuffleBatch = *sc.ShuffleBatch
	}
	return s
}

// Agreed reports whether the config grants sharing permission. Unset means no.
func (c *Config) Agreed() bool {
	return c != nil && c.Acceptance.Agree != nil && *c.Acceptance.Agree
}

// FallbackEnabled reports whether the blind resend is enabled.
func (c *Config) FallbackEnabled() bool {
	if c == nil || c.Transport.Fallback == nil {
		return true
	}
	return *c.Transport.Fallback
}

// TransportHeaders returns a copy of the configured upload headers.
func (c *Config) TransportHeaders() map[string]string {
	if c == nil || len(c.Transport.Headers) == 0 {
		return nil
	}
	return maps.Clone(c.Transport.Headers)
}
