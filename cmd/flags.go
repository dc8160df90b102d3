package cmd

import (
	"time"

	"github.com/spf13/pflag"
)

// AddConfigFlag adds the --config flag
func AddConfigFlag(flags *pflag.FlagSet, dest *string) {
	flags.StringVar(dest, "config", "", "Path to a config file (default: $XDG_CONFIG_HOME/streamui/config.yaml)")
}

// AddDebugFlag adds the --debug/-d flag
func AddDebugFlag(flags *pflag.FlagSet, dest *bool) {
	flags.BoolVarP(dest, "debug", "d", false, "Show debug information")
}

// AddColorFlag adds the --color flag
func AddColorFlag(flags *pflag.FlagSet, dest *string) {
	flags.StringVar(dest, "color", "auto", "Color output: auto, always or never")
}

// AddWidthFlag adds the --width/-w flag
func AddWidthFlag(flags *pflag.FlagSet, dest *int) {
	flags.IntVarP(dest, "width", "w", 0, "Render width in columns (0 follows the terminal)")
}

// AddWithholdFlag adds the --withhold flag
func AddWithholdFlag(flags *pflag.FlagSet, dest *bool) {
	flags.BoolVar(dest, "withhold", false, "Hold back unfinished markdown until a safe boundary")
}

// AddStatsFlag adds the --stats flag
func AddStatsFlag(flags *pflag.FlagSet, dest *bool) {
	flags.BoolVar(dest, "stats", false, "Print render statistics when done")
}

// AddSimulateFlags adds --simulate, --chunk-size and --chunk-delay
func AddSimulateFlags(flags *pflag.FlagSet, simulate *bool, size *int, delay *time.Duration) {
	flags.BoolVar(simulate, "simulate", false, "Replay input in small timed chunks, like a model stream")
	flags.IntVar(size, "chunk-size", 6, "Characters per chunk with --simulate")
	flags.DurationVar(delay, "chunk-delay", 20*time.Millisecond, "Delay between chunks with --simulate")
}
