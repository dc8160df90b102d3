package ui

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is the column count assumed when the terminal cannot be
// queried (output piped, no controlling terminal).
const DefaultWidth = 80

// TerminalWidth reports the current column count of stdout.
func TerminalWidth() (int, bool) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
