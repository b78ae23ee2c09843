package cli

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Colours are downsampled to whatever w supports, so redirected output is
// plain text.
func renderLine(w io.Writer, format string, args ...any) {
	_, _ = lipgloss.Fprintln(w, fmt.Sprintf(format, args...))
}

func renderError(w io.Writer, msg string) {
	_, _ = lipgloss.Fprintln(w, errorStyle.Render(msg))
}

func renderHeading(w io.Writer, msg string) {
	_, _ = lipgloss.Fprintln(w, headingStyle.Render(msg))
}

func renderMuted(w io.Writer, msg string) {
	_, _ = lipgloss.Fprintln(w, mutedStyle.Render(msg))
}
