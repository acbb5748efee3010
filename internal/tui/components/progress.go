package components

import (
	"fmt"

	"github.com/theirongolddev/deskpad/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPercent returns the bar color for a completion percentage:
// low completion is orange, middling is accent, finished is green.
func ColorForPercent(pct int) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 100:
		return t.Green
	case pct >= 50:
		return t.Accent
	default:
		return t.Orange
	}
}

// CompletionBar renders a bar for a 0-100 percentage followed by the
// number, e.g. "████░░░░  50%".
func CompletionBar(pct, width int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorForPercent(pct))),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(ColorForPercent(pct)).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(float64(pct)/100) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3d%%", pct))
}

// ScrollBar renders a thin full-width bar whose filled part tracks a
// 0-1 scroll fraction.
func ScrollBar(fraction float64, width int) string {
	t := theme.Active
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	bar := progress.New(
		progress.WithGradient(string(t.Cyan), string(t.Magenta)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.Full = '▀'
	bar.Empty = ' '
	return bar.ViewAs(fraction)
}
