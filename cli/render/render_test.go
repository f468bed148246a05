package render

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"json lowercase", "json", FormatJSON, false},
		{"json uppercase", "JSON", FormatJSON, false},
		{"table", "table", FormatTable, false},
		{"yaml padded", " yaml ", FormatYAML, false},
		{"empty", "", "", false},
		{"invalid", "xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	_, err := ParseFormat("csv")
	if err == nil || !strings.Contains(err.Error(), "json, table, or yaml") {
		t.Errorf("error should list valid formats, got: %v", err)
	}
}

type nested struct {
	Host string `json:"host"`
}

type sample struct {
	Status   string            `json:"status"`
	Receipt  string            `json:"receipt_id,omitempty"`
	Fallback bool              `json:"via_fallback"`
	Types    []string          `json:"types"`
	Target   nested            `json:"target"`
	Counts   map[string]int    `json:"counts,omitempty"`
	Secret   string            `json:"-"`
	Labels   map[string]string `json:"labels"`
}

func TestRenderer_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, &buf)

	data := &sample{
		Status: "success",
		Types:  []string{"image/jpeg", "image/png"},
		Target: nested{Host: "script.example.com"},
		Counts: map[string]int{"b": 2, "a": 1},
		Secret: "hidden",
	}
	if err := r.Render(data); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"status:", "success",
		"via_fallback:", "false",
		"image/jpeg, image/png",
		"target.host:", "script.example.com",
		"counts.a:", "counts.b:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "receipt_id") {
		t.Errorf("empty omitempty field should be skipped:\n%s", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("json:\"-\" field should be skipped:\n%s", got)
	}
	if strings.Index(got, "counts.a") > strings.Index(got, "counts.b") {
		t.Errorf("map keys should be sorted:\n%s", got)
	}
}

type custom struct{}

func (custom) TableRows() []Row {
	return []Row{{Key: "size", Value: "2.1 MB"}}
}

func TestRenderer_TableUsesTabler(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRendererWithWriter(FormatTable, &buf).Render(custom{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "size:  2.1 MB" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRenderer_JSONAndYAML(t *testing.T) {
	data := map[string]string{"key": "value"}

	var js bytes.Buffer
	if err := NewRendererWithWriter(FormatJSON, &js).Render(data); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"key": "value"`) {
		t.Errorf("unexpected json: %s", js.String())
	}

	var ym bytes.Buffer
	if err := NewRendererWithWriter(FormatYAML, &ym).Render(data); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if strings.TrimSpace(ym.String()) != "key: value" {
		t.Errorf("unexpected yaml: %s", ym.String())
	}
}

func TestNewRenderer_NonTTYDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	app := &cli.App{Writer: &buf}
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("format", "", "")
	c := cli.NewContext(app, set, nil)

	r, err := NewRenderer(c)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if r.Format() != FormatJSON {
		t.Errorf("expected json for non-tty writer, got %s", r.Format())
	}

	if err := set.Set("format", "bogus"); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRenderer(c); err == nil {
		t.Error("expected error for invalid format")
	}
}
