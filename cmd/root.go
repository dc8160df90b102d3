package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samsaffron/streamui/internal/config"
	"github.com/samsaffron/streamui/internal/logging"
	"github.com/samsaffron/streamui/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "streamui",
	Short: "Render streamed markdown for the terminal",
	Long: `streamui renders markdown as it streams in, wrapped to the terminal
width, and prints the notices an agent UI shows around it.

Examples:
  some-llm-cli | streamui render            # render a stream from stdin
  streamui render notes.md --simulate       # replay a file as a stream
  streamui format tool-start read_file path=main.go
  streamui config                           # view configuration`,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupDiagnostics(cmd.ErrOrStderr(), debug)
	},
}

var (
	configFile string
	debug      bool
	colorMode  string
	widthFlag  int
)

func init() {
	flags := rootCmd.PersistentFlags()
	AddConfigFlag(flags, &configFile)
	AddDebugFlag(flags, &debug)
	AddColorFlag(flags, &colorMode)
	AddWidthFlag(flags, &widthFlag)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupDiagnostics routes slog output to w, at debug level when verbose.
func setupDiagnostics(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig loads the configuration and applies the persistent flag
// overrides the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Render.Color = colorMode
	}
	if flags.Changed("width") {
		cfg.Render.Width = widthFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	if !ui.IsPresetTheme(cfg.Theme.Preset) {
		slog.Warn("unknown theme preset, using default",
			"preset", cfg.Theme.Preset,
			"suggestion", ui.SuggestPreset(cfg.Theme.Preset))
	}
	slog.Debug("config loaded", "engine", cfg.Render.Engine, "width", cfg.Render.Width, "color", cfg.Render.Color)
	return cfg, nil
}

// newStyles builds the UI styles for cfg, resolving the color profile
// against stdout.
func newStyles(cfg *config.Config) *ui.Styles {
	profile := ui.ResolveColorProfile(cfg.Render.Color, os.Stdout)
	return ui.NewStyles(profile, ui.ThemeFromConfig(themeConfig(cfg.Theme)))
}

func themeConfig(t config.ThemeConfig) ui.ThemeConfig {
	return ui.ThemeConfig{
		Preset:    t.Preset,
		Primary:   t.Primary,
		Secondary: t.Secondary,
		Success:   t.Success,
		Error:     t.Error,
		Warning:   t.Warning,
		Muted:     t.Muted,
		Text:      t.Text,
	}
}

// installSink points the process-wide output sink at the configured
// destination. The returned function restores the previous state and
// closes any file that was opened.
func installSink(cmd *cobra.Command, cfg config.LoggingConfig) (func() error, error) {
	if !cfg.Enabled {
		logging.Disable()
		return func() error {
			logging.Enable()
			return nil
		}, nil
	}

	var w io.Writer
	closeFn := func() error { return nil }
	switch cfg.Output {
	case "stdout":
		w = cmd.OutOrStdout()
	case "stderr":
		w = cmd.ErrOrStderr()
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open output %s: %w", cfg.Output, err)
		}
		w = f
		closeFn = f.Close
	}

	logging.Enable()
	logging.SetSink(logging.NewWriterSink(w))
	return func() error {
		logging.ResetSink()
		return closeFn()
	}, nil
}
