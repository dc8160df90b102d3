package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/samsaffron/streamui/internal/config"
	"github.com/samsaffron/streamui/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show streamui configuration",
	Long: `View your streamui configuration.

Examples:
  streamui config                     # show effective config
  streamui config path                # print config file path
  streamui config themes              # list theme presets`,
	Args: cobra.NoArgs,
	RunE: configShow, // Default to show
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	Args:  cobra.NoArgs,
	RunE:  configPath,
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List theme presets with a color preview",
	Args:  cobra.NoArgs,
	RunE:  configThemes,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configThemesCmd)
}

func configShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := configFile
	if path == "" {
		if path, err = config.GetConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	return writeConfig(cmd.OutOrStdout(), cfg, path)
}

// writeConfig prints cfg as YAML under a header naming the file it came
// from, or where to create one.
func writeConfig(w io.Writer, cfg *config.Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "# No config file (using defaults)\n")
		fmt.Fprintf(w, "# Create one at: %s\n\n", path)
	} else {
		fmt.Fprintf(w, "# %s\n\n", path)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configThemes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	profile := ui.ResolveColorProfile(cfg.Render.Color, os.Stdout)
	return writeThemes(cmd.OutOrStdout(), profile, cfg.Theme.Preset)
}
