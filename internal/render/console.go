package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/netwatch/internal/engine"
	"github.com/rileyhilliard/netwatch/internal/fetch"
)

// Console writes one block per cycle to an io.Writer. It never clears the
// screen, so the output is safe to pipe or append to a log file.
type Console struct {
	w     io.Writer
	strip []string
	color bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithStripSuffixes sets the domain suffixes removed from display names.
func WithStripSuffixes(suffixes []string) ConsoleOption {
	return func(c *Console) { c.strip = suffixes }
}

// WithColor toggles ANSI color output.
func WithColor(enabled bool) ConsoleOption {
	return func(c *Console) { c.color = enabled }
}

// NewConsole creates a plain-text renderer writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render writes one line per device plus a summary header.
func (c *Console) Render(snap engine.Snapshot) {
	up := 0
	for _, e := range snap.Entries {
		if e.Reachable {
			up++
		}
	}

	fmt.Fprintf(c.w, "%s  %d/%d up\n",
		snap.Taken.Format("15:04:05"), up, len(snap.Entries))

	width := 0
	for _, e := range snap.Entries {
		if n := len(e.Spec.Original); n > width {
			width = n
		}
	}

	for _, e := range snap.Entries {
		fmt.Fprintln(c.w, c.line(e, width))
	}
}

// line formats a single device row.
func (c *Console) line(e engine.Entry, width int) string {
	status := "DOWN"
	style := StatusDownStyle
	if e.Reachable {
		status = "UP  "
		style = StatusUpStyle
	}
	if c.color {
		status = style.Render(status)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %-*s  %s  hostname: %s", width, e.Spec.Original, status, DisplayName(e, c.strip))

	if e.Model != "" && e.Model != fetch.Unknown {
		model := "[" + e.Model + "]"
		if c.color {
			model = MutedStyle.Render(model)
		}
		b.WriteString("  ")
		b.WriteString(model)
	}
	return b.String()
}
