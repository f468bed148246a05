// Package slideshow holds the tunable parameters of the slideshow display
// that consumes submitted photos.
//
// Only the parameters are modeled here. The display and its recency-weighted
// draw live elsewhere.
package slideshow

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Defaults for each parameter.
const (
	DefaultSlideMs       = 30000
	DefaultFadeMs        = 2000
	DefaultHalfLifeHours = 6.0
	DefaultShuffleBatch  = 20
)

// placeholder marks an API base copied from a template and never replaced.
const placeholder = "DEPLOY_ID"

// Settings are the slideshow parameters.
type Settings struct {
	// APIBase is the URL of the slideshow API.
	APIBase string `json:"api_base" yaml:"api_base"`
	// SlideMs is how long each photo is shown.
	SlideMs int `json:"slide_ms" yaml:"slide_ms"`
	// FadeMs is the cross-fade length between photos.
	FadeMs int `json:"fade_ms" yaml:"fade_ms"`
	// HalfLifeHours is the recency half-life. Shorter favors new photos more.
	HalfLifeHours float64 `json:"half_life_hours" yaml:"half_life_hours"`
	// ShuffleBatch caps how many photos enter one weighted draw.
	ShuffleBatch int `json:"shuffle_batch" yaml:"shuffle_batch"`
}

// Defaults returns the default settings. APIBase has no default.
func Defaults() Settings {
	return Settings{
		SlideMs:       DefaultSlideMs,
		FadeMs:        DefaultFadeMs,
		HalfLifeHours: DefaultHalfLifeHours,
		ShuffleBatch:  DefaultShuffleBatch,
	}
}

// Slide returns SlideMs as a duration.
func (s Settings) Slide() time.Duration {
	return time.Duration(s.SlideMs) * time.Millisecond
}

// Fade returns FadeMs as a duration.
func (s Settings) Fade() time.Duration {
	return time.Duration(s.FadeMs) * time.Millisecond
}

// HalfLife returns HalfLifeHours as a duration.
func (s Settings) HalfLife() time.Duration {
	return time.Duration(s.HalfLifeHours * float64(time.Hour))
}

// Validate reports every invalid parameter at once.
func (s Settings) Validate() error {
	var errs []error

	switch {
	case strings.TrimSpace(s.APIBase) == "":
		errs = append(errs, errors.New("api_base is required"))
	case strings.Contains(s.APIBase, placeholder):
		errs = append(errs, fmt.Errorf("api_base still contains the %s placeholder", placeholder))
	default:
		if u, err := url.Parse(s.APIBase); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("api_base %q is not an absolute URL", s.APIBase))
		}
	}

	if s.SlideMs <= 0 {
		errs = append(errs, fmt.Errorf("slide_ms must be > 0, got %d", s.SlideMs))
	}
	if s.FadeMs < 0 {
		errs = append(errs, fmt.Errorf("fade_ms must be >= 0, got %d", s.FadeMs))
	} else if s.SlideMs > 0 && s.FadeMs >= s.SlideMs {
		errs = append(errs, fmt.Errorf("fade_ms (%d) must be shorter than slide_ms (%d)", s.FadeMs, s.SlideMs))
	}
	if s.HalfLifeHours <= 0 {
		errs = append(errs, fmt.Errorf("half_life_hours must be > 0, got %v", s.HalfLifeHours))
	}
	if s.ShuffleBatch < 1 {
		errs = append(errs, fmt.Errorf("shuffle_batch must be >= 1, got %d", s.ShuffleBatch))
	}

	return errors.Join(errs...)
}
