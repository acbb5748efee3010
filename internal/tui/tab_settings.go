package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/deskpad/internal/config"
	"github.com/theirongolddev/deskpad/internal/store"
	"github.com/theirongolddev/deskpad/internal/tui/components"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldLightTheme
	settingsFieldDark
	settingsFieldCurrency
	settingsFieldVariant
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.cfg

	// Booleans flip in place instead of opening an input.
	if a.settings.cursor == settingsFieldDark {
		a.toggleDark()
		return a, nil
	}

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldLightTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.LightTheme)
	case settingsFieldCurrency:
		ti.Placeholder = "₹"
		ti.SetValue(cfg.Expenses.Currency)
	case settingsFieldVariant:
		ti.Placeholder = "multi or study"
		ti.SetValue(cfg.General.Variant)
	}

	ti.Focus()
	a.settings.editing = true
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme, settingsFieldLightTheme:
		if !theme.Exists(val) {
			a.flashErr(fmt.Errorf("unknown theme %q", val))
			return
		}
		if a.settings.cursor == settingsFieldTheme {
			cfg.Appearance.Theme = val
		} else {
			cfg.Appearance.LightTheme = val
		}
	case settingsFieldCurrency:
		cfg.Expenses.Currency = val
	case settingsFieldVariant:
		if _, err := store.ParseLayout(val); err != nil {
			a.flashErr(err)
			return
		}
		cfg.General.Variant = val
	}

	a.applyConfig(cfg)
	if a.settings.cursor == settingsFieldVariant {
		a.switchLayout(val)
	}
	if a.flash.Text == "" {
		a.flashInfo("saved")
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	currency := cfg.Expenses.Currency
	if currency == "" {
		currency = "(none)"
	}

	fields := []field{
		{"Dark Theme", cfg.Appearance.Theme},
		{"Light Theme", cfg.Appearance.LightTheme},
		{"Dark Mode", strconv.FormatBool(cfg.Appearance.Dark)},
		{"Currency", currency},
		{"Variant", cfg.General.Variant},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-14s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-14s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-14s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	snap := a.store.Snapshot()
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Data directory: ") + valueStyle.Render(a.dataDir) + "\n")
	infoBody.WriteString(labelStyle.Render("Storage key:    ") + valueStyle.Render(a.layout.Key()) + "\n")
	infoBody.WriteString(labelStyle.Render("Records:        ") + valueStyle.Render(fmt.Sprintf(
		"%d subjects, %d expenses, %d habits", len(snap.Subjects), len(snap.Expenses), len(snap.Habits))) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:    ") + valueStyle.Render(config.Path()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
