package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogger_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Output: &buf})

	l.Info("upload started", map[string]any{"size": 42})

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	entry := lines[0]
	if entry["message"] != "upload started" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("missing timestamp")
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields missing or wrong type: %v", entry["fields"])
	}
	if fields["size"] != float64(42) {
		t.Errorf("fields.size = %v", fields["size"])
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Output: &buf, Level: "warn"})

	l.Debug("debug", nil)
	l.Info("info", nil)
	l.Warn("warn", nil)
	l.Error("error", nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected warn and error only, got %d lines", len(lines))
	}
	if lines[0]["level"] != "warn" || lines[1]["level"] != "error" {
		t.Errorf("unexpected levels: %v, %v", lines[0]["level"], lines[1]["level"])
	}
}

func TestLogger_WithAttachesContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Output: &buf}).With(map[string]any{
		"submission_id": "sub-1",
		"filename":      "a.jpg",
	})

	l.Warn("fallback", nil)

	entry := decodeLines(t, &buf)[0]
	if entry["submission_id"] != "sub-1" {
		t.Errorf("submission_id = %v", entry["submission_id"])
	}
	if entry["filename"] != "a.jpg" {
		t.Errorf("filename = %v", entry["filename"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped", map[string]any{"k": "v"})
	_ = l.Sync()
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "debug",
		"WARN":  "warn",
		"error": "error",
		"":      "info",
		"bogus": "info",
	}
	for in, want := range tests {
		if got := ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
