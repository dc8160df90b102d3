package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// maxArgDisplayWidth is the widest a string argument is shown before it is
// truncated with "...".
const maxArgDisplayWidth = 80

// Keys left out of the argument summary because the tool's own output
// shows them in full.
var hiddenToolArgs = map[string][]string{
	"edit":       {"old_string", "new_string"},
	"todo_write": {"todos"},
	"ask_user":   {"question", "options"},
}

// FormatToolArgs renders tool arguments as space-separated key=value pairs
// in key order, followed by a trailing space. Strings are quoted with
// newlines flattened and long values truncated; numbers and booleans
// print as-is, nil prints as null and nested values as "...".
func FormatToolArgs(tool string, args map[string]any) string {
	if len(args) == 0 {
		return ""
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		if isHiddenToolArg(tool, k) {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatArgValue(args[k]))
		b.WriteByte(' ')
	}
	return b.String()
}

func isHiddenToolArg(tool, key string) bool {
	for _, hidden := range hiddenToolArgs[tool] {
		if key == hidden {
			return true
		}
	}
	return false
}

func formatArgValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		s := strings.ReplaceAll(v, "\n", " ")
		s = runewidth.Truncate(s, maxArgDisplayWidth, "...")
		return `"` + s + `"`
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	default:
		return "..."
	}
}

// FormatToolExecuting renders the line shown when a tool starts, ending in
// a newline.
func (s *Styles) FormatToolExecuting(name string, args map[string]any) string {
	return fmt.Sprintf("┌─ %s %s\n", s.ToolName.Render(name), FormatToolArgs(name, args))
}

// FormatToolResult renders the line shown when a tool finishes.
func (s *Styles) FormatToolResult(name string, elapsed time.Duration, tokens int, hasError bool) string {
	secs := elapsed.Seconds()
	var duration string
	if secs < 0.001 {
		duration = fmt.Sprintf("%.3fs", secs)
	} else {
		duration = fmt.Sprintf("%.2fs", secs)
	}

	suffix := ""
	if hasError {
		suffix = " " + s.ErrorBadge.Render("ERROR")
	}
	return fmt.Sprintf("└─ %s %s ~%d tok%s", s.ToolName.Render(name), s.Duration.Render(duration), tokens, suffix)
}

// FormatErrorDetail renders the indented error line shown under a failed
// tool result.
func (s *Styles) FormatErrorDetail(msg string) string {
	return "  └─ error: " + s.Dim.Render(msg)
}

// FormatContextWarning renders the context window usage warning. Above
// 95% it suggests clearing the conversation.
func (s *Styles) FormatContextWarning(percent float64) string {
	if percent > 95 {
		return fmt.Sprintf("WARNING: Context window at %.1f%%. Use /clear to reset.", percent)
	}
	return fmt.Sprintf("WARNING: Context window at %.1f%%.", percent)
}

// FormatRetry renders a retry notice. The delay is shown in whole seconds.
func (s *Styles) FormatRetry(attempt, maxAttempts int, delay time.Duration, reason string) string {
	return fmt.Sprintf("[%s: retrying in %ds (attempt %d/%d)]",
		s.Warning.Render(reason), int64(delay/time.Second), attempt, maxAttempts)
}

// FormatErrorMessage renders msg as an error.
func (s *Styles) FormatErrorMessage(msg string) string {
	return s.Error.Render(msg)
}

// FormatCtrlC renders the interrupt acknowledgement.
func (s *Styles) FormatCtrlC() string {
	return "[ctrl-c received]"
}

// FormatCancelled renders the notice for a task cancelled by the client.
func (s *Styles) FormatCancelled() string {
	return s.Error.Render("ABORTED") + " task cancelled by client"
}
