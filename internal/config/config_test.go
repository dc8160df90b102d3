package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// isolate points the config directory and working directory at empty
// temp dirs so a developer's own config.yaml is never read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	r := cfg.Render
	if r.Width != 0 || r.DefaultWidth != 80 {
		t.Errorf("widths = %d/%d, want 0/80", r.Width, r.DefaultWidth)
	}
	if r.Engine != "native" || r.Policy != "best-effort" || r.Color != "auto" {
		t.Errorf("enums = %q/%q/%q", r.Engine, r.Policy, r.Color)
	}
	if !r.Highlight {
		t.Error("highlight should default to true")
	}
	if r.FlushInterval != 150*time.Millisecond {
		t.Errorf("flush_interval = %s, want 150ms", r.FlushInterval)
	}
	if r.MaxNewlines != 2 {
		t.Errorf("max_newlines = %d, want 2", r.MaxNewlines)
	}
	if !cfg.Logging.Enabled || cfg.Logging.Output != "stdout" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := isolate(t)
	appDir := filepath.Join(dir, "streamui")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, appDir, `
render:
  width: 72
  engine: glamour
  flush_interval: 1s
theme:
  preset: nord
  primary: "#ffffff"
logging:
  output: stderr
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Width != 72 {
		t.Errorf("width = %d, want 72", cfg.Render.Width)
	}
	if cfg.Render.Engine != "glamour" {
		t.Errorf("engine = %q, want glamour", cfg.Render.Engine)
	}
	if cfg.Render.FlushInterval != time.Second {
		t.Errorf("flush_interval = %s, want 1s", cfg.Render.FlushInterval)
	}
	if cfg.Theme.Preset != "nord" || cfg.Theme.Primary != "#ffffff" {
		t.Errorf("theme = %+v", cfg.Theme)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("logging.output = %q", cfg.Logging.Output)
	}
	// Unset keys keep their defaults.
	if cfg.Render.DefaultWidth != 80 {
		t.Errorf("default_width = %d, want 80", cfg.Render.DefaultWidth)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "render:\n  policy: withhold\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Policy != "withhold" {
		t.Errorf("policy = %q, want withhold", cfg.Render.Policy)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STREAMUI_RENDER_WIDTH", "100")
	t.Setenv("STREAMUI_RENDER_COLOR", "never")
	t.Setenv("STREAMUI_THEME_PRESET", "dracula")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Width != 100 {
		t.Errorf("width = %d, want 100", cfg.Render.Width)
	}
	if cfg.Render.Color != "never" {
		t.Errorf("color = %q, want never", cfg.Render.Color)
	}
	if cfg.Theme.Preset != "dracula" {
		t.Errorf("preset = %q, want dracula", cfg.Theme.Preset)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "render:\n  engine: termimad\n")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "render.engine") {
		t.Fatalf("Load() error = %v, want render.engine error", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Render: RenderConfig{
				DefaultWidth:  80,
				Engine:        "native",
				FlushInterval: time.Second,
				Policy:        "best-effort",
				Color:         "auto",
			},
			Logging: LoggingConfig{Enabled: true, Output: "stdout"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "negative width", mutate: func(c *Config) { c.Render.Width = -1 }, wantErr: "render.width"},
		{name: "zero default width", mutate: func(c *Config) { c.Render.DefaultWidth = 0 }, wantErr: "render.default_width"},
		{name: "zero flush interval", mutate: func(c *Config) { c.Render.FlushInterval = 0 }, wantErr: "render.flush_interval"},
		{name: "negative max newlines", mutate: func(c *Config) { c.Render.MaxNewlines = -2 }, wantErr: "render.max_newlines"},
		{name: "bad policy", mutate: func(c *Config) { c.Render.Policy = "eager" }, wantErr: "render.policy"},
		{name: "bad color", mutate: func(c *Config) { c.Render.Color = "sometimes" }, wantErr: "render.color"},
		{name: "empty output", mutate: func(c *Config) { c.Logging.Output = " " }, wantErr: "logging.output"},
		{name: "empty output disabled", mutate: func(c *Config) { c.Logging = LoggingConfig{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestConfigYAML(t *testing.T) {
	cfg := Config{Render: RenderConfig{Width: 90, FlushInterval: 150 * time.Millisecond, Engine: "native"}}

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error: %v", err)
	}
	s := string(out)
	for _, want := range []string{"width: 90", "flush_interval: 150ms", "engine: native", "theme:", "logging:"} {
		if !strings.Contains(s, want) {
			t.Errorf("YAML missing %q:\n%s", want, s)
		}
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "streamui") {
		t.Errorf("GetConfigDir() = %q", dir)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join("/tmp/xdg", "streamui", "config.yaml") {
		t.Errorf("GetConfigPath() = %q", path)
	}
}
