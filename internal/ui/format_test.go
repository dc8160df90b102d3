package ui

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestFormatToolArgs(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{name: "nil", tool: "test", args: nil, want: ""},
		{name: "empty", tool: "test", args: map[string]any{}, want: ""},
		{
			name: "types",
			tool: "test",
			args: map[string]any{"bool": true, "num": 42, "null": nil, "str": "hello"},
			want: `bool=true null=null num=42 str="hello" `,
		},
		{
			name: "float",
			tool: "test",
			args: map[string]any{"ratio": 0.5, "whole": float64(3)},
			want: `ratio=0.5 whole=3 `,
		},
		{
			name: "json number",
			tool: "test",
			args: map[string]any{"n": json.Number("12")},
			want: `n=12 `,
		},
		{
			name: "complex",
			tool: "test",
			args: map[string]any{"arr": []any{1, 2}, "obj": map[string]any{"a": 1}},
			want: `arr=... obj=... `,
		},
		{
			name: "newlines flattened",
			tool: "bash",
			args: map[string]any{"command": "ls\npwd"},
			want: `command="ls pwd" `,
		},
		{
			name: "edit hides strings",
			tool: "edit",
			args: map[string]any{"file_path": "a.go", "old_string": "x", "new_string": "y"},
			want: `file_path="a.go" `,
		},
		{
			name: "other tools keep old_string",
			tool: "write",
			args: map[string]any{"old_string": "x"},
			want: `old_string="x" `,
		},
		{
			name: "todo_write hides todos",
			tool: "todo_write",
			args: map[string]any{"todos": []any{"a"}},
			want: "",
		},
		{
			name: "ask_user hides question and options",
			tool: "ask_user",
			args: map[string]any{"question": "why?", "options": []any{"a"}, "multi": false},
			want: `multi=false `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatToolArgs(tt.tool, tt.args); got != tt.want {
				t.Errorf("FormatToolArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatToolArgsTruncation(t *testing.T) {
	tests := []struct {
		length int
		want   string
	}{
		{length: 79, want: strings.Repeat("a", 79)},
		{length: 80, want: strings.Repeat("a", 80)},
		{length: 81, want: strings.Repeat("a", 77) + "..."},
		{length: 100, want: strings.Repeat("a", 77) + "..."},
	}

	for _, tt := range tests {
		got := FormatToolArgs("test", map[string]any{"s": strings.Repeat("a", tt.length)})
		want := `s="` + tt.want + `" `
		if got != want {
			t.Errorf("length %d: got %q, want %q", tt.length, got, want)
		}
	}
}

func TestFormatToolArgsTruncatesWideRunes(t *testing.T) {
	got := FormatToolArgs("test", map[string]any{"s": strings.Repeat("日", 50)})
	value := strings.TrimSuffix(strings.TrimPrefix(got, `s="`), `" `)
	if !strings.HasSuffix(value, "...") {
		t.Fatalf("expected truncation, got %q", got)
	}
	if w := ansi.StringWidth(value); w > maxArgDisplayWidth {
		t.Errorf("truncated value is %d columns, want <= %d", w, maxArgDisplayWidth)
	}
}

func TestPlainFormatters(t *testing.T) {
	s := PlainStyles()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "tool executing",
			got:  s.FormatToolExecuting("read_file", map[string]any{"path": "test.rs"}),
			want: "┌─ read_file path=\"test.rs\" \n",
		},
		{
			name: "tool executing without args",
			got:  s.FormatToolExecuting("list", nil),
			want: "┌─ list \n",
		},
		{
			name: "tool result",
			got:  s.FormatToolResult("bash", 250*time.Millisecond, 100, false),
			want: "└─ bash 0.25s ~100 tok",
		},
		{
			name: "tool result with error",
			got:  s.FormatToolResult("bash", 1500*time.Millisecond, 5, true),
			want: "└─ bash 1.50s ~5 tok ERROR",
		},
		{
			name: "sub-millisecond result",
			got:  s.FormatToolResult("glob", 800*time.Microsecond, 0, false),
			want: "└─ glob 0.001s ~0 tok",
		},
		{
			name: "zero duration",
			got:  s.FormatToolResult("glob", 0, 0, false),
			want: "└─ glob 0.000s ~0 tok",
		},
		{
			name: "error detail",
			got:  s.FormatErrorDetail("file not found"),
			want: "  └─ error: file not found",
		},
		{
			name: "context warning",
			got:  s.FormatContextWarning(85.5),
			want: "WARNING: Context window at 85.5%.",
		},
		{
			name: "context warning at threshold",
			got:  s.FormatContextWarning(95),
			want: "WARNING: Context window at 95.0%.",
		},
		{
			name: "context warning critical",
			got:  s.FormatContextWarning(96.2),
			want: "WARNING: Context window at 96.2%. Use /clear to reset.",
		},
		{
			name: "retry",
			got:  s.FormatRetry(2, 5, 4*time.Second, "rate limited"),
			want: "[rate limited: retrying in 4s (attempt 2/5)]",
		},
		{
			name: "retry truncates partial seconds",
			got:  s.FormatRetry(1, 3, 1500*time.Millisecond, "overloaded"),
			want: "[overloaded: retrying in 1s (attempt 1/3)]",
		},
		{
			name: "error message",
			got:  s.FormatErrorMessage("boom"),
			want: "boom",
		},
		{
			name: "ctrl-c",
			got:  s.FormatCtrlC(),
			want: "[ctrl-c received]",
		},
		{
			name: "cancelled",
			got:  s.FormatCancelled(),
			want: "ABORTED task cancelled by client",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestStyledFormattersKeepText(t *testing.T) {
	s := NewStyles(termenv.TrueColor, DefaultTheme())

	got := s.FormatToolResult("bash", 250*time.Millisecond, 100, true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected escape sequences, got %q", got)
	}
	if plain := ansi.Strip(got); plain != "└─ bash 0.25s ~100 tok ERROR" {
		t.Errorf("stripped = %q", plain)
	}

	if plain := ansi.Strip(s.FormatCancelled()); plain != "ABORTED task cancelled by client" {
		t.Errorf("stripped cancelled = %q", plain)
	}
}
