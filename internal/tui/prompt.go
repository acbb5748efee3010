package tui

import (
	"context"
	"strings"

	"github.com/theirongolddev/deskpad/internal/state"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptSubject
	promptGoal
	promptExpenseName
	promptExpenseAmount
	promptHabit
)

// prompt is the single-line input used by every "add" action. Expenses
// take two steps: the name is held in pending while the amount is typed.
type prompt struct {
	kind    promptKind
	input   textinput.Model
	subject int // target of promptGoal
	pending string
}

func (p prompt) active() bool { return p.kind != promptNone }

func (p prompt) label() string {
	switch p.kind {
	case promptSubject:
		return "New subject"
	case promptGoal:
		return "New goal"
	case promptExpenseName:
		return "Expense name"
	case promptExpenseAmount:
		return "Amount for " + p.pending
	case promptHabit:
		return "New habit"
	}
	return ""
}

func newPromptInput(placeholder string) textinput.Model {
	t := theme.Active
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 50
	ti.PromptStyle = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	ti.TextStyle = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	ti.Focus()
	return ti
}

// openPrompt starts an input of the given kind.
func (a App) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	a.prompt = prompt{kind: kind, input: newPromptInput(placeholder)}
	return a, textinput.Blink
}

func (a App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.prompt = prompt{}
		return a, nil
	case "enter":
		return a.submitPrompt()
	}

	var cmd tea.Cmd
	a.prompt.input, cmd = a.prompt.input.Update(msg)
	return a, cmd
}

// submitPrompt applies the typed value to the store. On a rejected value the
// prompt closes and the reason is flashed; the store is left as it was.
func (a App) submitPrompt() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	val := a.prompt.input.Value()
	p := a.prompt
	a.prompt = prompt{}

	var err error
	switch p.kind {
	case promptSubject:
		err = a.store.AddSubject(ctx, val)
		if err == nil {
			a.study.cursor = len(a.studyRows()) - 1
		}
	case promptGoal:
		err = a.store.AddGoal(ctx, p.subject, val)
		if err == nil {
			a.study.cursor = a.lastGoalRow(p.subject)
		}
	case promptExpenseName:
		if strings.TrimSpace(val) == "" {
			a.flashErr(state.ErrEmptyInput)
			return a, nil
		}
		next := prompt{kind: promptExpenseAmount, input: newPromptInput("0"), pending: val}
		a.prompt = next
		return a, textinput.Blink
	case promptExpenseAmount:
		err = a.store.AddExpense(ctx, p.pending, val)
		if err == nil {
			a.expenses.cursor = len(a.store.Expenses()) - 1
		}
	case promptHabit:
		err = a.store.AddHabit(ctx, val)
		if err == nil {
			a.habits.cursor = len(a.store.Habits()) - 1
		}
	}

	if err != nil {
		a.flashErr(err)
		return a, nil
	}
	a.flashInfo("saved")
	return a, nil
}

// renderPrompt draws the active input line, or "" when no prompt is open.
func (a App) renderPrompt() string {
	if !a.prompt.active() {
		return ""
	}
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	return labelStyle.Render(a.prompt.label()+": ") + a.prompt.input.View()
}
