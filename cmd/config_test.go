package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/samsaffron/streamui/internal/config"
	"github.com/samsaffron/streamui/internal/ui"
)

func TestWriteConfigWithoutFile(t *testing.T) {
	isolateConfig(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := writeConfig(&buf, cfg, path); err != nil {
		t.Fatalf("writeConfig() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# No config file (using defaults)",
		"# Create one at: " + path,
		"engine: native",
		"flush_interval: 150ms",
		"output: stdout",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigPathCommand(t *testing.T) {
	isolateConfig(t)
	out := execute(t, "", "config", "path")

	want, err := config.GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if out != want+"\n" {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestWriteThemes(t *testing.T) {
	var buf bytes.Buffer
	if err := writeThemes(&buf, termenv.Ascii, "nord"); err != nil {
		t.Fatalf("writeThemes() error: %v", err)
	}

	out := buf.String()
	if out != ansi.Strip(out) {
		t.Error("Ascii profile produced escape sequences")
	}
	for _, name := range ui.PresetThemeNames {
		if !strings.Contains(out, name) {
			t.Errorf("output missing preset %q", name)
		}
	}
	if !strings.Contains(out, "nord (current)") {
		t.Error("current preset not marked")
	}
	if strings.Contains(out, "gruvbox (current)") {
		t.Error("default preset marked while nord is current")
	}
	if !strings.Contains(out, "read_file") {
		t.Error("preview missing the tool line sample")
	}
}

func TestWriteThemesDefaultCurrent(t *testing.T) {
	var buf bytes.Buffer
	if err := writeThemes(&buf, termenv.Ascii, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "gruvbox (current)") {
		t.Error("empty preset should mark gruvbox as current")
	}
}
