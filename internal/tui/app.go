// Package tui provides the interactive Bubble Tea dashboard for deskpad.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/deskpad/internal/cli"
	"github.com/theirongolddev/deskpad/internal/config"
	"github.com/theirongolddev/deskpad/internal/metrics"
	"github.com/theirongolddev/deskpad/internal/state"
	"github.com/theirongolddev/deskpad/internal/store"
	"github.com/theirongolddev/deskpad/internal/tui/components"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// OpenFunc opens the store for a layout. The app calls it when the
// variant changes while running.
type OpenFunc func(ctx context.Context, layout store.Layout) (*state.Store, error)

// Options configures a new App.
type Options struct {
	Store     *state.Store
	Layout    store.Layout
	Config    config.Config
	DataDir   string
	Portfolio string // markdown shown on the Portfolio tab
	NeedSetup bool
	Open      OpenFunc
	Log       *zap.Logger
}

type tabID int

const (
	tabStudy tabID = iota
	tabExpenses
	tabHabits
	tabPortfolio
	tabSettings
)

var tabInfo = map[tabID]components.Tab{
	tabStudy:     {Name: "Study", Key: 's', KeyPos: 0},
	tabExpenses:  {Name: "Expenses", Key: 'e', KeyPos: 0},
	tabHabits:    {Name: "Habits", Key: 'h', KeyPos: 0},
	tabPortfolio: {Name: "Portfolio", Key: 'p', KeyPos: 0},
	tabSettings:  {Name: "Settings", Key: 'x', KeyPos: -1},
}

// tabsFor returns the tab set of a layout.
func tabsFor(layout store.Layout) []tabID {
	if layout == store.LayoutStudy {
		return []tabID{tabStudy, tabPortfolio, tabSettings}
	}
	return []tabID{tabStudy, tabExpenses, tabHabits, tabPortfolio, tabSettings}
}

// App is the root Bubble Tea model.
type App struct {
	store   *state.Store
	layout  store.Layout
	cfg     config.Config
	dataDir string
	open    OpenFunc
	log     *zap.Logger

	// UI state
	width     int
	height    int
	tabs      []tabID
	activeTab int
	showHelp  bool
	flash     components.Flash

	// Add-record input, shared by every tab
	prompt prompt

	// Per-tab state
	study     listState
	habits    listState
	expenses  listState
	portfolio portfolioState
	settings  settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	theme.SetActive(opts.Config.ActiveTheme())

	return App{
		store:     opts.Store,
		layout:    opts.Layout,
		cfg:       opts.Config,
		dataDir:   opts.DataDir,
		open:      opts.Open,
		log:       log,
		tabs:      tabsFor(opts.Layout),
		portfolio: newPortfolioState(opts.Portfolio),
		needSetup: opts.NeedSetup,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

func (a App) current() tabID {
	if a.activeTab < 0 || a.activeTab >= len(a.tabs) {
		return tabStudy
	}
	return a.tabs[a.activeTab]
}

func (a App) tabDefs() []components.Tab {
	out := make([]components.Tab, len(a.tabs))
	for i, id := range a.tabs {
		out[i] = tabInfo[id]
	}
	return out
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		first := a.width == 0
		a.width = msg.Width
		a.height = msg.Height
		a.resizePortfolio()

		if first && a.needSetup && a.setupForm == nil {
			vals := SetupValuesFrom(a.cfg)
			vals.Variant = string(a.layout)
			a.setupVals = &vals
			a.setupForm = NewSetupForm(a.setupVals).WithWidth(msg.Width).WithHeight(msg.Height)
			return a, a.setupForm.Init()
		}
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil || a.prompt.active() {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Add forms capture typing, including letters that are shortcuts elsewhere
		if a.prompt.active() {
			return a.updatePrompt(msg)
		}

		if a.current() == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		a.flash = components.Flash{}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "t":
			a.toggleDark()
			return a, nil
		}

		if model, cmd, handled := a.updateTab(msg); handled {
			return model, cmd
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(a.tabs)) % len(a.tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(a.tabs)
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(a.tabDefs(), msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.prompt.active() {
		var cmd tea.Cmd
		a.prompt.input, cmd = a.prompt.input.Update(msg)
		return a, cmd
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

// updateTab routes a key to the active tab. handled is false when the tab
// has no binding for it.
func (a App) updateTab(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch a.current() {
	case tabStudy:
		return a.updateStudyKey(msg)
	case tabExpenses:
		return a.updateExpensesKey(msg)
	case tabHabits:
		return a.updateHabitsKey(msg)
	case tabPortfolio:
		return a.updatePortfolioKey(msg)
	case tabSettings:
		return a.updateSettingsKey(msg)
	}
	return a, nil, false
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		up := msg.Button == tea.MouseButtonWheelUp
		switch a.current() {
		case tabStudy:
			a.study.move(up, len(a.studyRows()))
		case tabHabits:
			a.habits.move(up, len(a.store.Habits()))
		case tabExpenses:
			a.expenses.move(up, len(a.store.Expenses()))
		case tabPortfolio:
			var cmd tea.Cmd
			a.portfolio.viewport, cmd = a.portfolio.viewport.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.applyConfig(a.setupVals.Apply(a.cfg))
		a.switchLayout(a.cfg.General.Variant)
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// applyConfig saves cfg and brings the running app in line with it:
// theme, and the store when the configured variant changed. A variant the
// user picks explicitly goes through switchLayout, since the running
// layout can come from --variant rather than the config.
func (a *App) applyConfig(cfg config.Config) {
	prevVariant := a.cfg.General.Variant
	a.cfg = cfg
	theme.SetActive(cfg.ActiveTheme())
	a.resizePortfolio()

	if err := config.Save(cfg); err != nil {
		a.log.Warn("saving config", zap.Error(err))
		a.flashErr(err)
	}

	if cfg.General.Variant != prevVariant {
		a.switchLayout(cfg.General.Variant)
	}
}

func (a *App) switchLayout(variant string) {
	layout, err := store.ParseLayout(variant)
	if err != nil {
		a.flashErr(err)
		return
	}
	if layout == a.layout {
		return
	}
	if a.open == nil {
		a.flashInfo("restart to switch to " + variant)
		return
	}
	st, err := a.open(context.Background(), layout)
	if err != nil {
		a.flashErr(fmt.Errorf("opening %s: %w", variant, err))
		return
	}
	a.store = st
	a.layout = layout
	a.tabs = tabsFor(layout)
	a.activeTab = len(a.tabs) - 1 // stay on Settings
	a.study = listState{}
	a.habits = listState{}
	a.expenses = listState{}
	a.log.Info("switched layout", zap.String("layout", string(layout)))
}

func (a *App) toggleDark() {
	cfg := a.cfg
	cfg.Appearance.Dark = !cfg.Appearance.Dark
	a.applyConfig(cfg)
	if a.flash.Text == "" {
		mode := "light"
		if cfg.Appearance.Dark {
			mode = "dark"
		}
		a.flashInfo(mode + " mode")
	}
}

func (a *App) flashErr(err error) {
	a.flash = components.Flash{Text: describeErr(err), Error: true}
}

func (a *App) flashInfo(text string) {
	a.flash = components.Flash{Text: text}
}

// describeErr turns store errors into short status-line messages.
func describeErr(err error) string {
	switch {
	case errors.Is(err, state.ErrEmptyInput):
		return "nothing entered"
	case errors.Is(err, state.ErrInvalidAmount):
		return "amount must be a number"
	case errors.Is(err, state.ErrIndexOutOfRange):
		return "no such item"
	}
	return err.Error()
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  deskpad needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var tabKeys []string
	for _, tab := range a.tabDefs() {
		tabKeys = append(tabKeys, string(tab.Key))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{strings.Join(tabKeys, " "), "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection / scroll"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"a", "Add subject / expense / habit"},
			{"g", "Add goal to selected subject"},
			{"Enter Space", "Toggle goal or habit"},
			{"Esc", "Cancel input"},
			{"t", "Toggle dark / light"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-11s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.tabDefs(), a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.hints(), a.summaryLine(), a.flash)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.current() {
	case tabStudy:
		content = a.renderStudyTab(cw)
	case tabExpenses:
		content = a.renderExpensesTab(cw)
	case tabHabits:
		content = a.renderHabitsTab(cw)
	case tabPortfolio:
		content = a.renderPortfolioTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	if a.prompt.active() {
		return "[enter]save [esc]cancel"
	}
	switch a.current() {
	case tabStudy:
		return "[a]dd subject [g]oal [enter]toggle [?]help [q]uit"
	case tabExpenses:
		return "[a]dd expense [?]help [q]uit"
	case tabHabits:
		return "[a]dd habit [enter]toggle [?]help [q]uit"
	case tabPortfolio:
		return "[j/k]scroll [?]help [q]uit"
	case tabSettings:
		return "[enter]edit [t]heme [?]help [q]uit"
	}
	return "[?]help [q]uit"
}

func (a App) summaryLine() string {
	sum := metrics.Summarize(a.store.Snapshot())
	parts := []string{
		fmt.Sprintf("%d subjects %s", sum.Subjects, cli.FormatPercent(sum.OverallCompletion)),
	}
	if a.layout == store.LayoutMulti {
		parts = append(parts,
			cli.FormatAmount(sum.TotalExpense, a.cfg.Expenses.Currency),
			fmt.Sprintf("%d/%d habits", sum.HabitsDone, sum.Habits),
		)
	}
	return strings.Join(parts, " · ")
}

// ─── Helpers ────────────────────────────────────────────────────

// listState is a cursor over a list with a scroll offset.
type listState struct {
	cursor int
	offset int
}

func (l *listState) move(up bool, n int) {
	if up {
		if l.cursor > 0 {
			l.cursor--
		}
		return
	}
	if l.cursor < n-1 {
		l.cursor++
	}
}

// listHeight is how many list rows fit below the metric cards.
func listHeight(termH int, prompting bool) int {
	h := termH - 12
	if prompting {
		h -= 2
	}
	if h < 1 {
		h = 1
	}
	return h
}

// clamp keeps the cursor inside n items and the offset keeping the cursor
// within a window of the given height.
func (l *listState) clamp(n, height int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if height < 1 {
		height = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+height {
		l.offset = l.cursor - height + 1
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	tabs := a.tabDefs()
	pos := 0
	for i, tab := range tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(tabs)-1 {
			pos++
		}
	}
	return -1
}
