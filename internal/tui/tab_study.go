package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/deskpad/internal/cli"
	"github.com/theirongolddev/deskpad/internal/metrics"
	"github.com/theirongolddev/deskpad/internal/model"
	"github.com/theirongolddev/deskpad/internal/tui/components"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// studyRow is one line of the flattened subject/goal list. goal is -1 on
// the subject's own row.
type studyRow struct {
	subject int
	goal    int
}

func flattenSubjects(subjects []model.Subject) []studyRow {
	var rows []studyRow
	for i, s := range subjects {
		rows = append(rows, studyRow{subject: i, goal: -1})
		for j := range s.Goals {
			rows = append(rows, studyRow{subject: i, goal: j})
		}
	}
	return rows
}

func (a App) studyRows() []studyRow {
	return flattenSubjects(a.store.Subjects())
}

// lastGoalRow returns the row index of subject i's last goal.
func (a App) lastGoalRow(i int) int {
	last := 0
	for idx, r := range a.studyRows() {
		if r.subject == i {
			last = idx
		}
	}
	return last
}

// selectedSubject returns the subject owning the cursor row, or -1.
func (a App) selectedSubject() int {
	rows := a.studyRows()
	if len(rows) == 0 {
		return -1
	}
	c := a.study.cursor
	if c >= len(rows) {
		c = len(rows) - 1
	}
	return rows[c].subject
}

func (a App) updateStudyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	rows := a.studyRows()

	switch msg.String() {
	case "j", "down":
		a.study.move(false, len(rows))
	case "k", "up":
		a.study.move(true, len(rows))
	case "a":
		m, cmd := a.openPrompt(promptSubject, "e.g. Math")
		return m, cmd, true
	case "g":
		i := a.selectedSubject()
		if i < 0 {
			a.flashErr(errors.New("add a subject first"))
			return a, nil, true
		}
		m, cmd := a.openPrompt(promptGoal, "e.g. Read chapter 1")
		app := m.(App)
		app.prompt.subject = i
		return app, cmd, true
	case "enter", " ":
		if len(rows) == 0 || a.study.cursor >= len(rows) {
			return a, nil, true
		}
		r := rows[a.study.cursor]
		if r.goal < 0 {
			a.flashInfo("select a goal to toggle")
			return a, nil, true
		}
		if err := a.store.ToggleGoal(context.Background(), r.subject, r.goal); err != nil {
			a.flashErr(err)
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderStudyTab(cw int) string {
	t := theme.Active
	subjects := a.store.Subjects()
	sum := metrics.Summarize(model.Snapshot{Subjects: subjects})

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Subjects", Value: cli.FormatNumber(int64(sum.Subjects))},
		{Label: "Goals done", Value: fmt.Sprintf("%d / %d", sum.GoalsDone, sum.Goals)},
		{Label: "Overall", Value: cli.FormatPercent(sum.OverallCompletion), Note: "mean of subjects"},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	listH := listHeight(a.height, a.prompt.active())

	rows := flattenSubjects(subjects)
	a.study.clamp(len(rows), listH)

	subjectStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	goalStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Strikethrough(true)
	checkStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	openStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
	padStyle := lipgloss.NewStyle().Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	barW := innerW / 3
	if barW > 30 {
		barW = 30
	}

	var body strings.Builder
	if len(rows) == 0 {
		body.WriteString(dimStyle.Render("No subjects yet. Press [a] to add one."))
	}
	end := a.study.offset + listH
	if end > len(rows) {
		end = len(rows)
	}
	for idx := a.study.offset; idx < end; idx++ {
		r := rows[idx]
		s := subjects[r.subject]
		selected := idx == a.study.cursor

		marker := padStyle.Render("  ")
		if selected {
			marker = selStyle.Render("▸ ")
		}

		var line string
		if r.goal < 0 {
			bar := components.CompletionBar(s.CompletionPercent, barW)
			nameW := innerW - lipgloss.Width(bar) - 3
			name := truncStr(s.Name, nameW)
			style := subjectStyle
			if selected {
				style = selStyle
			}
			gap := innerW - 2 - lipgloss.Width(name) - lipgloss.Width(bar)
			if gap < 1 {
				gap = 1
			}
			line = marker + style.Render(name) + padStyle.Render(strings.Repeat(" ", gap)) + bar
		} else {
			g := s.Goals[r.goal]
			check := openStyle.Render("○ ")
			text := goalStyle
			if g.Done {
				check = checkStyle.Render("✓ ")
				text = doneStyle
			}
			if selected {
				text = selStyle
			}
			line = marker + padStyle.Render("  ") + check + text.Render(truncStr(g.Text, innerW-6))
		}
		body.WriteString(line)
		if idx < end-1 {
			body.WriteString("\n")
		}
	}

	if p := a.renderPrompt(); p != "" && (a.prompt.kind == promptSubject || a.prompt.kind == promptGoal) {
		body.WriteString("\n\n")
		body.WriteString(p)
	}

	title := "Subjects"
	if len(rows) > listH {
		title = fmt.Sprintf("Subjects [%d/%d]", a.study.cursor+1, len(rows))
	}
	if a.prompt.active() {
		b.WriteString(components.FocusedCard(title, body.String(), cw))
	} else {
		b.WriteString(components.ContentCard(title, body.String(), cw))
	}
	return b.String()
}
