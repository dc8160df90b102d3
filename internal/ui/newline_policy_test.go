package ui

import (
	"strings"
	"testing"
)

func TestNormalizeTrailingNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only newlines", in: "\n\n\n", want: ""},
		{name: "none", in: "abc", want: "abc\n\n"},
		{name: "one", in: "abc\n", want: "abc\n\n"},
		{name: "exact", in: "abc\n\n", want: "abc\n\n"},
		{name: "too many", in: "abc\n\n\n\n", want: "abc\n\n"},
		{name: "inner newlines kept", in: "a\n\n\nb\n", want: "a\n\n\nb\n\n"},
		{name: "trailing spaces are content", in: "  \n", want: "  \n\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTrailingNewlines(tc.in, BlockTrailingNewlines); got != tc.want {
				t.Fatalf("NormalizeTrailingNewlines(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStreamingNewlineCompactor_CompactsAcrossChunks(t *testing.T) {
	c := NewStreamingNewlineCompactor(2)

	part1 := c.CompactChunk("hello\n\n\n")
	part2 := c.CompactChunk("\n\nworld")

	if part1 != "hello\n\n" {
		t.Fatalf("part1 = %q, want %q", part1, "hello\n\n")
	}
	if part2 != "world" {
		t.Fatalf("part2 = %q, want %q", part2, "world")
	}
}

func TestStreamingNewlineCompactor_ResetsRunOnText(t *testing.T) {
	c := NewStreamingNewlineCompactor(2)

	got := c.CompactChunk("a\n\n\nb\n\n\n")
	if got != "a\n\nb\n\n" {
		t.Fatalf("got %q, want %q", got, "a\n\nb\n\n")
	}
}

func TestStreamingNewlineCompactor_DefaultRun(t *testing.T) {
	c := NewStreamingNewlineCompactor(0)

	got := c.CompactChunk("a\n\n\n\nb")
	if got != "a\n\nb" {
		t.Fatalf("got %q, want %q", got, "a\n\nb")
	}
}

func TestStreamingNewlineCompactor_KeepsFencedBlankLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "backtick fence",
			in:   "```\na = 1\n\n\n\nb = 2\n```\n\n\n\nafter",
			want: "```\na = 1\n\n\n\nb = 2\n```\n\nafter",
		},
		{
			name: "tilde fence",
			in:   "intro\n\n\n~~~python\nx = 1\n\n\n\ny = 2\n~~~\n",
			want: "intro\n\n~~~python\nx = 1\n\n\n\ny = 2\n~~~\n",
		},
		{
			name: "shorter marker does not close",
			in:   "````\n```\n\n\n\n````\n\n\n",
			want: "````\n```\n\n\n\n````\n\n",
		},
		{
			name: "indented fence in list",
			in:   "- item\n\n  ```\n  a\n\n\n\n  b\n  ```\n",
			want: "- item\n\n  ```\n  a\n\n\n\n  b\n  ```\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewStreamingNewlineCompactor(2)
			if got := c.CompactChunk(tc.in); got != tc.want {
				t.Fatalf("CompactChunk(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStreamingNewlineCompactor_FenceAcrossChunks(t *testing.T) {
	c := NewStreamingNewlineCompactor(2)

	var got strings.Builder
	for _, chunk := range []string{"`", "``\na = 1\n\n", "\n\nb = 2\n`", "``\n\n\n", "\ndone"} {
		got.WriteString(c.CompactChunk(chunk))
	}

	want := "```\na = 1\n\n\n\nb = 2\n```\n\ndone"
	if got.String() != want {
		t.Fatalf("got %q, want %q", got.String(), want)
	}
}
