package mdterm

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Wrap word-wraps s to width columns. Lines break only at whitespace; a word
// wider than width is left intact on its own line. Existing newlines are
// kept. ANSI sequences do not count toward the width. A width of zero or
// less disables wrapping.
//
// No-break spaces (U+00A0, U+2007, U+202F) glue their neighbours together.
// Other Unicode spaces, U+3000 included, are break opportunities.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	ww := wordwrap.NewWriter(width)
	// reflow breaks after hyphens by default; only whitespace may break here.
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(holdNoBreak.Replace(s)))
	_ = ww.Close()
	return strings.Split(releaseNoBreak.Replace(ww.String()), "\n")
}

// reflow treats every unicode.IsSpace rune as a break. No-break spaces are
// swapped for private use runes of the same width while wrapping.
var (
	holdNoBreak    = strings.NewReplacer("\u00a0", "\uf8f0", "\u2007", "\uf8f1", "\u202f", "\uf8f2")
	releaseNoBreak = strings.NewReplacer("\uf8f0", "\u00a0", "\uf8f1", "\u2007", "\uf8f2", "\u202f")
)

// shrink narrows a wrap width by n columns of prefix.
func shrink(width, n int) int {
	if width <= 0 {
		return width
	}
	if width-n < 1 {
		return 1
	}
	return width - n
}
