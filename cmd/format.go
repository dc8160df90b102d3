package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/samsaffron/streamui/internal/config"
	"github.com/samsaffron/streamui/internal/logging"
	"github.com/samsaffron/streamui/internal/ui"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format <kind>",
	Short: "Print one of the UI notices",
	Long: `Print a single formatted notice through the configured output.

Tool arguments are given as key=value pairs. Values that parse as JSON
(numbers, booleans, null, arrays, objects) keep their type; anything else
is a string.

Examples:
  streamui format tool-start read_file path=main.go limit=200
  streamui format tool-result read_file --elapsed 1.2s --tokens 340
  streamui format retry 2 5 --delay 3s --reason "rate limited"
  echo '{"a":"hello"}' | streamui format tokens --json`,
}

var (
	resultElapsed time.Duration
	resultTokens  int
	resultError   bool
	retryDelay    time.Duration
	retryReason   string
	tokensJSON    bool
)

var formatToolStartCmd = &cobra.Command{
	Use:   "tool-start <tool> [key=value...]",
	Short: "Tool execution header",
	Args:  cobra.MinimumNArgs(1),
	RunE: withStyles(func(s *ui.Styles, args []string) (string, error) {
		return strings.TrimSuffix(s.FormatToolExecuting(args[0], parseToolArgs(args[1:])), "\n"), nil
	}),
}

var formatToolArgsCmd = &cobra.Command{
	Use:   "tool-args <tool> [key=value...]",
	Short: "Tool argument summary",
	Args:  cobra.MinimumNArgs(1),
	RunE: withStyles(func(_ *ui.Styles, args []string) (string, error) {
		return ui.FormatToolArgs(args[0], parseToolArgs(args[1:])), nil
	}),
}

var formatToolResultCmd = &cobra.Command{
	Use:   "tool-result <tool>",
	Short: "Tool completion line",
	Args:  cobra.ExactArgs(1),
	RunE: withStyles(func(s *ui.Styles, args []string) (string, error) {
		return s.FormatToolResult(args[0], resultElapsed, resultTokens, resultError), nil
	}),
}

var formatErrorDetailCmd = &cobra.Command{
	Use:   "error-detail <message>",
	Short: "Indented tool error line",
	Args:  cobra.MinimumNArgs(1),
	RunE: withStyles(func(s *ui.Styles, args []string) (string, error) {
		return s.FormatErrorDetail(strings.Join(args, " ")), nil
	}),
}

var formatErrorCmd = &cobra.Command{
	Use:   "error <message>",
	Short: "Error message",
	Args:  cobra.MinimumNArgs(1),
	RunE: withStyles(func(s *ui.Styles, args []string) (string, error) {
		return s.FormatErrorMessage(strings.Join(args, " ")), nil
	}),
}

var formatContextWarningCmd = &cobra.Command{
	Use:   "context-warning <percent>",
	Short: "Context window usage warning",
	Args:  cobra.ExactArgs(1),
	RunE: withStyles(func(s *ui.Styles, args []string) (string, error) {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
		if err != nil {
			return "", fmt.Errorf("invalid percent %q: %w", args[0], err)
		}
		return s.FormatContextWarning(percent), nil
	}),
}

var formatRetryCmd = &cobra.Command{
	Use:   "retry <attempt> <max-attempts>",
	Short: "Retry notice",
	Args:  cobra.ExactArgs(2),
	RunE: withStyles(func(s *ui.Styles, args []string) (string, error) {
		attempt, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid attempt %q: %w", args[0], err)
		}
		maxAttempts, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("invalid max attempts %q: %w", args[1], err)
		}
		return s.FormatRetry(attempt, maxAttempts, retryDelay, retryReason), nil
	}),
}

var formatCtrlCCmd = &cobra.Command{
	Use:   "ctrl-c",
	Short: "Interrupt acknowledgement",
	Args:  cobra.NoArgs,
	RunE: withStyles(func(s *ui.Styles, _ []string) (string, error) {
		return s.FormatCtrlC(), nil
	}),
}

var formatCancelledCmd = &cobra.Command{
	Use:   "cancelled",
	Short: "Task cancelled notice",
	Args:  cobra.NoArgs,
	RunE: withStyles(func(s *ui.Styles, _ []string) (string, error) {
		return s.FormatCancelled(), nil
	}),
}

var formatTokensCmd = &cobra.Command{
	Use:   "tokens [text...]",
	Short: "Estimate the token count of text or JSON",
	Long: `Estimate tokens at four characters per token. Text comes from the
arguments, or stdin when there are none. With --json the input is decoded
and the estimate is taken over its canonical JSON encoding.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			input = string(data)
		}
		n, err := estimateInput(input, tokensJSON)
		if err != nil {
			return err
		}
		return emitFormatted(cmd, strconv.Itoa(n))
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.AddCommand(
		formatToolStartCmd,
		formatToolArgsCmd,
		formatToolResultCmd,
		formatErrorDetailCmd,
		formatErrorCmd,
		formatContextWarningCmd,
		formatRetryCmd,
		formatCtrlCCmd,
		formatCancelledCmd,
		formatTokensCmd,
	)

	formatToolResultCmd.Flags().DurationVar(&resultElapsed, "elapsed", 0, "Tool run time")
	formatToolResultCmd.Flags().IntVar(&resultTokens, "tokens", 0, "Approximate tokens in the tool output")
	formatToolResultCmd.Flags().BoolVar(&resultError, "error", false, "Mark the result as failed")
	formatRetryCmd.Flags().DurationVar(&retryDelay, "delay", time.Second, "Delay before the next attempt")
	formatRetryCmd.Flags().StringVar(&retryReason, "reason", "error", "Why the request is retried")
	formatTokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "Decode the input as JSON first")
}

// withStyles adapts a formatter to a cobra RunE that loads the config,
// builds styles and emits the result as a line.
func withStyles(format func(*ui.Styles, []string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out, err := format(newStyles(cfg), args)
		if err != nil {
			return err
		}
		return emitLine(cmd, cfg.Logging, out)
	}
}

func emitFormatted(cmd *cobra.Command, line string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return emitLine(cmd, cfg.Logging, line)
}

func emitLine(cmd *cobra.Command, cfg config.LoggingConfig, line string) error {
	restore, err := installSink(cmd, cfg)
	if err != nil {
		return err
	}
	logging.LogEventLine(line)
	return restore()
}

// parseToolArgs turns key=value pairs into a tool argument map. A pair
// without "=" becomes a key with a true value.
func parseToolArgs(pairs []string) map[string]any {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			args[key] = true
			continue
		}
		args[key] = parseArgValue(value)
	}
	return args
}

func parseArgValue(s string) any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return s
	}
	// A trailing token that is not a JSON value leaves unread input.
	if rest, _ := io.ReadAll(dec.Buffered()); len(bytes.TrimSpace(rest)) > 0 {
		return s
	}
	return v
}

func estimateInput(input string, asJSON bool) (int, error) {
	if !asJSON {
		return ui.EstimateTokens(input), nil
	}
	var v any
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		return 0, fmt.Errorf("invalid JSON input: %w", err)
	}
	return ui.EstimateTokens(v), nil
}
