package slideshow

import (
	"strings"
	"testing"
	"time"
)

const testAPI = "https://script.example.com/macros/s/XYZ/exec"

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.SlideMs != 30000 || s.FadeMs != 2000 || s.HalfLifeHours != 6 || s.ShuffleBatch != 20 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.APIBase != "" {
		t.Errorf("APIBase should have no default, got %q", s.APIBase)
	}
	if s.Slide() != 30*time.Second || s.Fade() != 2*time.Second || s.HalfLife() != 6*time.Hour {
		t.Errorf("unexpected durations: %v %v %v", s.Slide(), s.Fade(), s.HalfLife())
	}
}

func TestValidate(t *testing.T) {
	valid := Defaults()
	valid.APIBase = testAPI

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"defaults with api", func(*Settings) {}, ""},
		{"zero fade", func(s *Settings) { s.FadeMs = 0 }, ""},
		{"fractional half-life", func(s *Settings) { s.HalfLifeHours = 0.5 }, ""},
		{"missing api", func(s *Settings) { s.APIBase = " " }, "api_base is required"},
		{"placeholder api", func(s *Settings) { s.APIBase = "https://script.google.com/macros/s/DEPLOY_ID/exec" }, "placeholder"},
		{"relative api", func(s *Settings) { s.APIBase = "/exec" }, "not an absolute URL"},
		{"zero slide", func(s *Settings) { s.SlideMs = 0 }, "slide_ms must be > 0"},
		{"negative fade", func(s *Settings) { s.FadeMs = -1 }, "fade_ms must be >= 0"},
		{"fade equals slide", func(s *Settings) { s.FadeMs = s.SlideMs }, "shorter than slide_ms"},
		{"zero half-life", func(s *Settings) { s.HalfLifeHours = 0 }, "half_life_hours must be > 0"},
		{"zero batch", func(s *Settings) { s.ShuffleBatch = 0 }, "shuffle_batch must be >= 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	err := Settings{}.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"api_base", "slide_ms", "half_life_hours", "shuffle_batch"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}
