// Package output writes user-facing notices with optional ANSI coloring
// based on TTY detection.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// Notifier writes advisory notices and errors to a single destination,
// usually stderr. Notices never affect a conversion's outcome.
type Notifier struct {
	w        io.Writer
	colorize bool
}

// NewNotifier creates a Notifier writing to w. Color is enabled only when w
// is a terminal.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w, colorize: isTerminal(w)}
}

// Discard returns a Notifier that drops everything. Used by library callers
// that don't want advisory output.
func Discard() *Notifier {
	return &Notifier{w: io.Discard}
}

// Warnf writes an advisory notice.
func (n *Notifier) Warnf(format string, args ...any) {
	n.emit(colorYellow, "Warning: "+fmt.Sprintf(format, args...))
}

// Errorf writes an error notice.
func (n *Notifier) Errorf(format string, args ...any) {
	n.emit(colorRed, "Error: "+fmt.Sprintf(format, args...))
}

func (n *Notifier) emit(color, line string) {
	if n.colorize {
		fmt.Fprintln(n.w, color+line+colorReset)
		return
	}
	fmt.Fprintln(n.w, line)
}

// isTerminal checks if the given writer is backed by a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
