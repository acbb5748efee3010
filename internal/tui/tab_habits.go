package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/deskpad/internal/cli"
	"github.com/theirongolddev/deskpad/internal/metrics"
	"github.com/theirongolddev/deskpad/internal/tui/components"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateHabitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	n := len(a.store.Habits())
	switch msg.String() {
	case "j", "down":
		a.habits.move(false, n)
	case "k", "up":
		a.habits.move(true, n)
	case "a":
		m, cmd := a.openPrompt(promptHabit, "e.g. Read 20 minutes")
		return m, cmd, true
	case "enter", " ":
		if n == 0 {
			return a, nil, true
		}
		if err := a.store.ToggleHabit(context.Background(), a.habits.cursor); err != nil {
			a.flashErr(err)
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderHabitsTab(cw int) string {
	t := theme.Active
	habits := a.store.Habits()
	done, total, pct := metrics.HabitStats(habits)

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Habits", Value: cli.FormatNumber(int64(total))},
		{Label: "Done today", Value: fmt.Sprintf("%d / %d", done, total)},
		{Label: "Completion", Value: cli.FormatPercent(pct)},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	listH := listHeight(a.height, a.prompt.active())
	a.habits.clamp(len(habits), listH)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Strikethrough(true)
	checkStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	openStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
	padStyle := lipgloss.NewStyle().Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var body strings.Builder
	if total > 0 {
		body.WriteString(components.CompletionBar(pct, innerW-6))
		body.WriteString("\n\n")
	} else {
		body.WriteString(dimStyle.Render("No habits yet. Press [a] to add one."))
	}

	end := a.habits.offset + listH
	if end > len(habits) {
		end = len(habits)
	}
	for i := a.habits.offset; i < end; i++ {
		h := habits[i]
		marker := padStyle.Render("  ")
		check := openStyle.Render("○ ")
		style := nameStyle
		if h.Done {
			check = checkStyle.Render("✓ ")
			style = doneStyle
		}
		if i == a.habits.cursor {
			marker, style = selStyle.Render("▸ "), selStyle
		}
		body.WriteString(marker + check + style.Render(truncStr(h.Name, innerW-4)))
		if i < end-1 {
			body.WriteString("\n")
		}
	}

	if p := a.renderPrompt(); p != "" {
		body.WriteString("\n\n")
		body.WriteString(p)
	}

	title := "Habits"
	if len(habits) > listH {
		title = fmt.Sprintf("Habits [%d/%d]", a.habits.cursor+1, len(habits))
	}
	if a.prompt.active() {
		b.WriteString(components.FocusedCard(title, body.String(), cw))
	} else {
		b.WriteString(components.ContentCard(title, body.String(), cw))
	}
	return b.String()
}
