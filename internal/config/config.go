package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "streamui"

// Config is the effective streamui configuration.
type Config struct {
	Render  RenderConfig  `mapstructure:"render" yaml:"render"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// RenderConfig controls how streamed markdown is rendered.
type RenderConfig struct {
	Width         int           `mapstructure:"width" yaml:"width"`                 // 0 = follow the terminal
	DefaultWidth  int           `mapstructure:"default_width" yaml:"default_width"` // used when the terminal cannot be queried
	Engine        string        `mapstructure:"engine" yaml:"engine"`               // "native" or "glamour"
	Highlight     bool          `mapstructure:"highlight" yaml:"highlight"`         // syntax-highlight fenced code
	FlushInterval time.Duration `mapstructure:"flush_interval" yaml:"-"`            // time between flushes while streaming
	Policy        string        `mapstructure:"policy" yaml:"policy"`               // "best-effort" or "withhold"
	Color         string        `mapstructure:"color" yaml:"color"`                 // "auto", "always" or "never"
	MaxNewlines   int           `mapstructure:"max_newlines" yaml:"max_newlines"`   // cap on blank-line runs in output, 0 = off
}

// MarshalYAML writes FlushInterval as a duration string.
func (r RenderConfig) MarshalYAML() (any, error) {
	type plain RenderConfig
	return struct {
		plain         `yaml:",inline"`
		FlushInterval string `yaml:"flush_interval"`
	}{plain(r), r.FlushInterval.String()}, nil
}

// ThemeConfig allows customization of output colors.
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Preset    string `mapstructure:"preset" yaml:"preset"`       // named palette, overridden per color below
	Primary   string `mapstructure:"primary" yaml:"primary"`     // strong text, inline code
	Secondary string `mapstructure:"secondary" yaml:"secondary"` // headings, tool names, borders
	Success   string `mapstructure:"success" yaml:"success"`     // success states
	Error     string `mapstructure:"error" yaml:"error"`         // error states
	Warning   string `mapstructure:"warning" yaml:"warning"`     // warnings, durations
	Muted     string `mapstructure:"muted" yaml:"muted"`         // dimmed text
	Text      string `mapstructure:"text" yaml:"text"`           // primary text
}

// LoggingConfig selects where rendered output is emitted.
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Output  string `mapstructure:"output" yaml:"output"` // "stdout", "stderr" or a file path
}

// Enumerated settings.
var (
	Engines  = []string{"native", "glamour"}
	Policies = []string{"best-effort", "withhold"}
	Colors   = []string{"auto", "always", "never"}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("render.width", 0)
	v.SetDefault("render.default_width", 80)
	v.SetDefault("render.engine", "native")
	v.SetDefault("render.highlight", true)
	v.SetDefault("render.flush_interval", "150ms")
	v.SetDefault("render.policy", "best-effort")
	v.SetDefault("render.color", "auto")
	v.SetDefault("render.max_newlines", 2)

	// Registered so STREAMUI_THEME_* variables are seen by Unmarshal.
	for _, key := range []string{"preset", "primary", "secondary", "success", "error", "warning", "muted", "text"} {
		v.SetDefault("theme."+key, "")
	}

	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.output", "stdout")
}

// Load reads config.yaml from the config directory or the working
// directory, or from configFile when it is set. A missing config file is
// not an error. Environment variables prefixed STREAMUI_ override file
// values (STREAMUI_RENDER_WIDTH=100).
func Load(configFile string) (*Config, error) {
	return load(viper.New(), configFile)
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		configPath, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config dir: %w", err)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configPath)
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	r := c.Render
	switch {
	case r.Width < 0:
		return fmt.Errorf("render.width must not be negative, got %d", r.Width)
	case r.DefaultWidth <= 0:
		return fmt.Errorf("render.default_width must be positive, got %d", r.DefaultWidth)
	case r.FlushInterval <= 0:
		return fmt.Errorf("render.flush_interval must be positive, got %s", r.FlushInterval)
	case r.MaxNewlines < 0:
		return fmt.Errorf("render.max_newlines must not be negative, got %d", r.MaxNewlines)
	}
	if err := oneOf("render.engine", r.Engine, Engines); err != nil {
		return err
	}
	if err := oneOf("render.policy", r.Policy, Policies); err != nil {
		return err
	}
	if err := oneOf("render.color", r.Color, Colors); err != nil {
		return err
	}
	if c.Logging.Enabled && strings.TrimSpace(c.Logging.Output) == "" {
		return errors.New("logging.output must be set when logging is enabled")
	}
	return nil
}

func oneOf(key, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), value)
}

// GetConfigDir returns $XDG_CONFIG_HOME/streamui, or ~/.config/streamui.
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// GetConfigPath returns the path of the default config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}
