// Package tty detects whether a stream is an interactive terminal.
//
// The teacher's package of the same name drives a full raw-mode console:
// SetReadDeadline, termios, a byte-at-a-time keyboard device fed by a
// goroutine. tac-runner's read* instructions are synchronous line reads
// (spec.md §4.5), so none of that machinery applies here; only the
// terminal-detection half survives, used to decide whether the
// state-dump report may use ANSI color. (The logger checks its own
// stream with golang.org/x/term directly.)
package tty

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is connected to an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
