package ui

import "strings"

// FindSafeBoundary finds the last byte position where markdown context is
// complete. Returns -1 if no safe boundary exists.
//
// A safe boundary is the end of a blank-line paragraph break that is
// outside any open code fence and preceded by balanced inline markers
// (**, *, _, ~~, `). Rendering text[:pos] on its own produces the same
// blocks it would produce as part of the whole.
func FindSafeBoundary(text string) int {
	pos := len(text)
	for {
		paraEnd := strings.LastIndex(text[:pos], "\n\n")
		if paraEnd == -1 {
			return -1
		}

		safePos := paraEnd + 2

		if isInCodeBlock(text, safePos) {
			pos = paraEnd
			continue
		}

		if areInlineMarkersBalanced(outsideFences(text[:safePos])) {
			return safePos
		}

		pos = paraEnd
	}
}

// isInCodeBlock returns true if position pos is inside an unclosed code
// fence.
func isInCodeBlock(text string, pos int) bool {
	if pos > len(text) {
		pos = len(text)
	}
	_, open := scanFences(text[:pos])
	return open
}

// scanFences walks the lines of text tracking ``` and ~~~ fences. It
// returns the text with fenced content removed and whether a fence is still
// open at the end.
func scanFences(text string) (prose string, open bool) {
	var b strings.Builder
	var fence fenceTracker
	for _, line := range strings.SplitAfter(text, "\n") {
		if !fence.line(line) {
			b.WriteString(line)
		}
	}
	return b.String(), fence.open()
}

// fenceTracker follows code fence state one line at a time. A fence closes
// only on a line of the same character at least as long as its opener.
type fenceTracker struct {
	char byte
	n    int
}

func (f *fenceTracker) open() bool { return f.n > 0 }

// line advances past one line and reports whether it belongs to a fence:
// an opener, fenced content or a closer.
func (f *fenceTracker) line(l string) bool {
	trimmed := strings.TrimLeft(l, " \t")
	char, n := fenceMarker(trimmed)

	if f.n == 0 {
		if n >= 3 {
			f.char, f.n = char, n
			return true
		}
		return false
	}

	if char == f.char && n >= f.n && strings.TrimSpace(trimmed[n:]) == "" {
		f.n = 0
	}
	return true
}

func fenceMarker(line string) (byte, int) {
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return 0, 0
	}
	n := 0
	for n < len(line) && line[n] == line[0] {
		n++
	}
	return line[0], n
}

func outsideFences(text string) string {
	prose, _ := scanFences(text)
	return prose
}

// areInlineMarkersBalanced checks if common inline markdown markers are
// balanced. This checks for paired **, *, _, ~~ markers outside of code
// spans.
func areInlineMarkersBalanced(text string) bool {
	inBold := false
	inItalicAsterisk := false
	inItalicUnderscore := false
	inStrikethrough := false

	i := 0
	for i < len(text) {
		// Code spans escape other markers.
		if text[i] == '`' {
			start := i
			for i < len(text) && text[i] == '`' {
				i++
			}
			closing := text[start:i]
			closeIdx := strings.Index(text[i:], closing)
			if closeIdx == -1 {
				return false
			}
			i += closeIdx + len(closing)
			continue
		}

		if text[i] == '\\' {
			i += 2
			continue
		}

		if text[i] == '*' {
			if i+1 < len(text) && text[i+1] == '*' {
				inBold = !inBold
				i += 2
				continue
			}
			// A lone '*' followed by a space at line start is a bullet.
			if !(atLineStart(text, i) && i+1 < len(text) && text[i+1] == ' ') {
				inItalicAsterisk = !inItalicAsterisk
			}
			i++
			continue
		}

		// Only at word boundaries: snake_case identifiers are not emphasis.
		if text[i] == '_' {
			if !isWordByte(text, i-1) || !isWordByte(text, i+1) {
				inItalicUnderscore = !inItalicUnderscore
			}
			i++
			continue
		}

		if text[i] == '~' && i+1 < len(text) && text[i+1] == '~' {
			inStrikethrough = !inStrikethrough
			i += 2
			continue
		}

		i++
	}

	return !inBold && !inItalicAsterisk && !inItalicUnderscore && !inStrikethrough
}

func atLineStart(text string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch text[j] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func isWordByte(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	c := text[i]
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}
