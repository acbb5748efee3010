package components

import (
	"strings"

	"github.com/theirongolddev/deskpad/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Flash is a transient status-bar message.
type Flash struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left,
// a flash message or the summary on the right.
func RenderStatusBar(width int, hints string, summary string, flash Flash) string {
	t := theme.Active

	base := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := base.Foreground(t.TextMuted)
	rightStyle := base.Foreground(t.TextDim)

	right := summary
	if flash.Text != "" {
		right = flash.Text
		if flash.Error {
			rightStyle = base.Foreground(t.Red).Bold(true)
		} else {
			rightStyle = base.Foreground(t.Green).Bold(true)
		}
	}

	left := hintStyle.Render(" " + hints)
	rightR := rightStyle.Render(right + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(rightR)
	if gap < 1 {
		gap = 1
	}

	return left + base.Render(strings.Repeat(" ", gap)) + rightR
}
