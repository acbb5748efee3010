package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/deskpad/internal/cli"
	"github.com/theirongolddev/deskpad/internal/metrics"
	"github.com/theirongolddev/deskpad/internal/tui/components"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateExpensesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	n := len(a.store.Expenses())
	switch msg.String() {
	case "j", "down":
		a.expenses.move(false, n)
	case "k", "up":
		a.expenses.move(true, n)
	case "a":
		m, cmd := a.openPrompt(promptExpenseName, "e.g. Coffee")
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderExpensesTab(cw int) string {
	t := theme.Active
	expenses := a.store.Expenses()
	total := metrics.TotalExpense(expenses)
	currency := a.cfg.Expenses.Currency

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Entries", Value: cli.FormatNumber(int64(len(expenses)))},
		{Label: "Total", Value: cli.FormatAmount(total, currency)},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	listH := listHeight(a.height, a.prompt.active())
	a.expenses.clamp(len(expenses), listH)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Magenta).Background(t.Surface)
	badStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
	padStyle := lipgloss.NewStyle().Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	listW := innerW
	if len(expenses) > 0 && cw >= 100 {
		listW = innerW / 2
	}

	var list strings.Builder
	if len(expenses) == 0 {
		list.WriteString(dimStyle.Render("No expenses yet. Press [a] to add one."))
	}
	end := a.expenses.offset + listH
	if end > len(expenses) {
		end = len(expenses)
	}
	for i := a.expenses.offset; i < end; i++ {
		e := expenses[i]
		amt := amountStyle.Render(e.Amount)
		if _, err := metrics.ParseAmount(e.Amount); err != nil && strings.TrimSpace(e.Amount) != "" {
			amt = badStyle.Render(e.Amount + " ?")
		}
		name := truncStr(e.Name, listW-lipgloss.Width(amt)-4)
		marker, style := padStyle.Render("  "), nameStyle
		if i == a.expenses.cursor {
			marker, style = selStyle.Render("▸ "), selStyle
		}
		gap := listW - 2 - lipgloss.Width(name) - lipgloss.Width(amt)
		if gap < 1 {
			gap = 1
		}
		list.WriteString(marker + style.Render(name) + padStyle.Render(strings.Repeat(" ", gap)) + amt)
		if i < end-1 {
			list.WriteString("\n")
		}
	}

	if p := a.renderPrompt(); p != "" {
		list.WriteString("\n\n")
		list.WriteString(p)
	}

	body := list.String()
	if listW < innerW {
		labels := make([]string, len(expenses))
		values := make([]float64, len(expenses))
		for i, e := range expenses {
			labels[i] = e.Name
			values[i], _ = metrics.ParseAmount(e.Amount)
		}
		shares := components.ShareBars(labels[a.expenses.offset:end], values[a.expenses.offset:end], innerW-listW-2)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(listW).Background(t.Surface).Render(body),
			padStyle.Render("  "),
			shares,
		)
	}

	title := "Expenses"
	if len(expenses) > listH {
		title = fmt.Sprintf("Expenses [%d/%d]", a.expenses.cursor+1, len(expenses))
	}
	if a.prompt.active() {
		b.WriteString(components.FocusedCard(title, body, cw))
	} else {
		b.WriteString(components.ContentCard(title, body, cw))
	}
	return b.String()
}
