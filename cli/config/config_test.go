package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/justapithecus/photodrop/intake"
	"github.com/justapithecus/photodrop/slideshow"
)

func TestLoad_FullConfig(t *testing.T) {
	yaml := `endpoint: https://script.example.com/macros/s/ABC/exec

acceptance:
  allowed_types: [image/jpeg, image/png]
  max_size_mb: 4.5
  agree: true

transport:
  timeout: 30s
  content_type: application/json
  headers:
    X-Client: photodrop
  fallback: false

adapter:
  type: webhook
  url: https://hooks.example.com/photodrop
  headers:
    Authorization: Bearer token123
  timeout: 10s
  retries: 3

slideshow:
  api_base: https://script.example.com/macros/s/XYZ/exec
  slide_ms: 15000
  fade_ms: 1000
  half_life_hours: 12
  shuffle_batch: 40
`
	cfg, err := Load(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assertEqual(t, "endpoint", cfg.Endpoint, "https://script.example.com/macros/s/ABC/exec")

	p := cfg.Policy()
	if !slices.Equal(p.AllowedTypes, []string{"image/jpeg", "image/png"}) {
		t.Errorf("allowed_types = %v", p.AllowedTypes)
	}
	if p.MaxSizeMB != 4.5 {
		t.Errorf("max_size_mb = %v", p.MaxSizeMB)
	}
	if !cfg.Agreed() {
		t.Error("expected acceptance.agree=true")
	}

	if cfg.Transport.Timeout.Duration != 30*time.Second {
		t.Errorf("transport.timeout = %v", cfg.Transport.Timeout.Duration)
	}
	assertEqual(t, "transport.content_type", cfg.Transport.ContentType, "application/json")
	if cfg.FallbackEnabled() {
		t.Error("expected fallback disabled")
	}
	if cfg.TransportHeaders()["X-Client"] != "photodrop" {
		t.Error("expected X-Client header")
	}

	assertEqual(t, "adapter.type", cfg.Adapter.Type, "webhook")
	assertEqual(t, "adapter.url", cfg.Adapter.URL, "https://hooks.example.com/photodrop")
	if cfg.Adapter.Timeout.Duration != 10*time.Second {
		t.Errorf("adapter.timeout = %v", cfg.Adapter.Timeout.Duration)
	}
	if cfg.Adapter.Retries == nil || *cfg.Adapter.Retries != 3 {
		t.Error("expected adapter.retries=3")
	}
	if cfg.Adapter.Headers["Authorization"] != "Bearer token123" {
		t.Error("expected Authorization header")
	}

	want := slideshow.Settings{
		APIBase:       "https://script.example.com/macros/s/XYZ/exec",
		SlideMs:       15000,
		FadeMs:        1000,
		HalfLifeHours: 12,
		ShuffleBatch:  40,
	}
	if got := cfg.SlideshowSettings(); got != want {
		t.Errorf("slideshow = %+v, want %+v", got, want)
	}
}

func TestLoad_EmptyDocuments(t *testing.T) {
	for name, content := range map[string]string{
		"empty":      "",
		"whitespace": "   \n  \n",
		"comments":   "# photodrop\n# nothing set\n",
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeTemp(t, content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Endpoint != "" {
				t.Errorf("expected empty endpoint, got %q", cfg.Endpoint)
			}
			if !cfg.FallbackEnabled() {
				t.Error("fallback should default to enabled")
			}
			if cfg.Agreed() {
				t.Error("permission must not default to granted")
			}
			if got := cfg.Policy(); got.MaxSizeMB != intake.DefaultMaxSizeMB {
				t.Errorf("expected default policy, got %+v", got)
			}
			if got := cfg.SlideshowSettings(); got != slideshow.Defaults() {
				t.Errorf("expected default slideshow, got %+v", got)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"invalid yaml", "{{invalid yaml", "invalid config"},
		{"unknown key", "endpoint: x\nbogus_key: 1\n", "bogus_key"},
		{"unknown nested key", "transport:\n  timeout: 5s\n  unknown_field: bad\n", "unknown_field"},
		{"invalid duration", "transport:\n  timeout: not-a-duration\n", "invalid duration"},
		{"wrong type", "acceptance:\n  max_size_mb: big\n", "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/photodrop.yaml")
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("PD_DEPLOYMENT", "AKfy123")

	cfg, err := Load(writeTemp(t, "endpoint: https://script.google.com/macros/s/${PD_DEPLOYMENT}/exec\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "endpoint", cfg.Endpoint, "https://script.google.com/macros/s/AKfy123/exec")
}

func TestLoad_ZeroDistinctFromOmitted(t *testing.T) {
	cfg, err := Load(writeTemp(t, "adapter:\n  type: webhook\n  url: https://example.com\n  retries: 0\nslideshow:\n  fade_ms: 0\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Adapter.Retries == nil || *cfg.Adapter.Retries != 0 {
		t.Error("expected retries to be *int(0)")
	}
	if got := cfg.SlideshowSettings().FadeMs; got != 0 {
		t.Errorf("explicit fade_ms: 0 should override the default, got %d", got)
	}

	cfg, err = Load(writeTemp(t, "adapter:\n  type: webhook\n  url: https://example.com\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Adapter.Retries != nil {
		t.Errorf("expected retries to be nil, got %d", *cfg.Adapter.Retries)
	}
}

func TestLoad_RedisAdapterConfig(t *testing.T) {
	yaml := `adapter:
  type: redis
  url: redis://localhost:6379/0
  channel: gallery:uploads
  timeout: 5s
`
	cfg, err := Load(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "adapter.type", cfg.Adapter.Type, "redis")
	assertEqual(t, "adapter.url", cfg.Adapter.URL, "redis://localhost:6379/0")
	assertEqual(t, "adapter.channel", cfg.Adapter.Channel, "gallery:uploads")
	if cfg.Adapter.Timeout.Duration != 5*time.Second {
		t.Errorf("adapter.timeout = %v", cfg.Adapter.Timeout.Duration)
	}
}

func TestDuration_EmptyIsZero(t *testing.T) {
	cfg, err := Parse([]byte("transport:\n  timeout: \"\"\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Transport.Timeout.Duration != 0 {
		t.Errorf("expected zero duration, got %v", cfg.Transport.Timeout.Duration)
	}
}

func TestNilConfigDefaults(t *testing.T) {
	var cfg *Config
	if !cfg.FallbackEnabled() {
		t.Error("nil config should enable fallback")
	}
	if cfg.Agreed() {
		t.Error("nil config should not grant permission")
	}
	if cfg.TransportHeaders() != nil {
		t.Error("nil config should have no headers")
	}
	if got := cfg.Policy(); !slices.Equal(got.AllowedTypes, intake.DefaultAllowedTypes) {
		t.Errorf("nil config policy = %+v", got)
	}
	if cfg.SlideshowSettings() != slideshow.Defaults() {
		t.Error("nil config should yield default slideshow settings")
	}
}

func TestPolicy_DoesNotAliasConfig(t *testing.T) {
	cfg := &Config{Acceptance: AcceptanceConfig{AllowedTypes: []string{"image/png"}}}
	p := cfg.Policy()
	p.AllowedTypes[0] = "image/gif"
	if cfg.Acceptance.AllowedTypes[0] != "image/png" {
		t.Error("Policy must copy allowed types")
	}
}

// writeTemp writes content to a temp file and returns the path.
func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func assertEqual(t *testing.T, field, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}
