package components

import (
	"strings"

	"github.com/theirongolddev/deskpad/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ShareBars renders one horizontal bar per value, scaled to the largest.
// labels and values must have the same length; negative values draw empty.
func ShareBars(labels []string, values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > labelW {
			labelW = w
		}
	}
	if labelW > width/3 {
		labelW = width / 3
	}
	barW := width - labelW - 1
	if barW < 5 {
		barW = 5
	}

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Magenta).Background(t.Surface)
	padStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, v := range values {
		n := 0
		if v > 0 {
			n = int(v / peak * float64(barW))
		}
		if n > barW {
			n = barW
		}
		label := truncate(labels[i], labelW)
		gap := labelW - lipgloss.Width(label)
		b.WriteString(labelStyle.Render(label + strings.Repeat(" ", gap)))
		b.WriteString(padStyle.Render(" "))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		if i < len(values)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
