// Package terminal provides terminal helpers: size detection, interactivity
// checks and clearing previously printed lines.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Width returns the width of the terminal attached to stdout.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// LinesFor returns how many terminal rows text of textLength columns
// occupies at the given width, at least one.
func LinesFor(textLength, width int) int {
	if width <= 0 {
		width = DefaultWidth
	}
	lines := int(math.Ceil(float64(textLength) / float64(width)))
	if lines < 1 {
		return 1
	}
	return lines
}

// ClearPreviousLines clears text that was previously printed to w, such as
// an echoed prompt. textLength is the total number of columns the text used
// (prompt plus input). One extra line is cleared for the newline the user
// typed.
func ClearPreviousLines(w io.Writer, textLength int) {
	linesToClear := LinesFor(textLength, Width()) + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Fprint(w, "\r\x1b[2K") // clear entire line
		if i < linesToClear-1 {
			fmt.Fprint(w, "\x1b[1A") // up one line
		}
	}
}
