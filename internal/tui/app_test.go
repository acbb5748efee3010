package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theirongolddev/deskpad/internal/config"
	"github.com/theirongolddev/deskpad/internal/model"
	"github.com/theirongolddev/deskpad/internal/state"
	"github.com/theirongolddev/deskpad/internal/store"
	"github.com/theirongolddev/deskpad/internal/tui/components"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

type harness struct {
	app  App
	st   *state.Store
	slot *store.Memory
}

func newHarness(t *testing.T, layout store.Layout) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	slot := store.NewMemory()
	bridge := store.NewBridge(slot, layout, zap.NewNop())
	st := state.New(bridge.Load(context.Background()), bridge)

	cfg := config.DefaultConfig()
	cfg.General.Variant = string(layout)

	h := &harness{st: st, slot: slot}
	h.app = NewApp(Options{
		Store:     st,
		Layout:    layout,
		Config:    cfg,
		Portfolio: "# Portfolio\n\nHello there.",
		Open: func(ctx context.Context, l store.Layout) (*state.Store, error) {
			b := store.NewBridge(slot, l, zap.NewNop())
			return state.New(b.Load(ctx), b), nil
		},
	})
	h.send(tea.WindowSizeMsg{Width: 100, Height: 32})
	return h
}

func (h *harness) send(msg tea.Msg) {
	m, _ := h.app.Update(msg)
	h.app = m.(App)
}

func (h *harness) keys(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "left":
			h.send(tea.KeyMsg{Type: tea.KeyLeft})
		case "right":
			h.send(tea.KeyMsg{Type: tea.KeyRight})
		case "space":
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		case "ctrl+u":
			h.send(tea.KeyMsg{Type: tea.KeyCtrlU})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (h *harness) reload(layout store.Layout) model.Snapshot {
	return store.NewBridge(h.slot, layout, zap.NewNop()).Load(context.Background())
}

func TestStudyAddAndToggleGoal(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)

	h.keys("a", "Math", "enter")
	h.keys("g", "Read ch1", "enter")
	require.Equal(t, 1, h.app.study.cursor, "cursor should land on the new goal")
	h.keys("enter")

	want := []model.Subject{{
		Name:              "Math",
		Goals:             []model.Goal{{Text: "Read ch1", Done: true}},
		CompletionPercent: 100,
	}}
	assert.Empty(t, cmp.Diff(want, h.st.Subjects()))
	assert.Empty(t, cmp.Diff(want, h.reload(store.LayoutMulti).Subjects))

	h.keys("space")
	assert.Equal(t, 0, h.st.Subjects()[0].CompletionPercent)
}

func TestToggleOnSubjectRowIsNoop(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("a", "Math", "enter", "g", "Read", "enter", "k", "enter")

	assert.False(t, h.st.Subjects()[0].Goals[0].Done)
	assert.False(t, h.app.flash.Error)
	assert.NotEmpty(t, h.app.flash.Text)
}

func TestAddGoalWithoutSubject(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("g")

	assert.False(t, h.app.prompt.active())
	assert.True(t, h.app.flash.Error)
}

func TestBlankSubjectIsRejected(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("a", "   ", "enter")

	assert.Empty(t, h.st.Subjects())
	assert.Equal(t, "nothing entered", h.app.flash.Text)
	assert.True(t, h.app.flash.Error)
}

func TestPromptCapturesShortcutLetters(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("a", "q", "x", "t", "?")

	require.True(t, h.app.prompt.active())
	assert.Equal(t, "qxt?", h.app.prompt.input.Value())
	assert.Equal(t, 0, h.app.activeTab)
	assert.False(t, h.app.showHelp)

	h.keys("esc")
	assert.False(t, h.app.prompt.active())
	assert.Empty(t, h.st.Subjects())
}

func TestExpensesFlow(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("e")
	require.Equal(t, tabExpenses, h.app.current())

	h.keys("a", "Coffee", "enter", "abc", "enter")
	assert.Empty(t, h.st.Expenses())
	assert.Equal(t, "amount must be a number", h.app.flash.Text)

	h.keys("a", "Coffee", "enter", "50", "enter")
	h.keys("a", "Book", "enter", "150", "enter")

	assert.Equal(t, []model.Expense{{Name: "Coffee", Amount: "50"}, {Name: "Book", Amount: "150"}}, h.st.Expenses())
	assert.InDelta(t, 200.0, h.st.TotalExpense(), 1e-9)
	assert.Contains(t, h.app.View(), "200")
}

func TestHabitToggleTwice(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("h", "a", "Read", "enter")

	h.keys("enter")
	assert.True(t, h.st.Habits()[0].Done)
	h.keys("enter")
	assert.False(t, h.st.Habits()[0].Done)
	assert.False(t, h.reload(store.LayoutMulti).Habits[0].Done)
}

func TestStudyLayoutTabs(t *testing.T) {
	h := newHarness(t, store.LayoutStudy)
	require.Len(t, h.app.tabs, 3)

	h.keys("e")
	assert.Equal(t, tabStudy, h.app.current(), "no expenses tab in study layout")
	h.keys("right")
	assert.Equal(t, tabPortfolio, h.app.current())
	h.keys("left", "left")
	assert.Equal(t, tabSettings, h.app.current())

	h.keys("s", "a", "Physics", "enter")
	snap := h.reload(store.LayoutStudy)
	require.Len(t, snap.Subjects, 1)
	assert.Equal(t, "Physics", snap.Subjects[0].Name)
}

type failingSaver struct{}

func (failingSaver) Save(context.Context, model.Snapshot) error {
	return errors.New("disk full")
}

func TestSaveFailureFlashesAndLeavesStore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	st := state.New(model.Empty(), failingSaver{})
	h := &harness{st: st}
	h.app = NewApp(Options{Store: st, Layout: store.LayoutMulti, Config: config.DefaultConfig()})
	h.send(tea.WindowSizeMsg{Width: 100, Height: 32})

	h.keys("a", "Math", "enter")
	assert.Empty(t, st.Subjects())
	assert.True(t, h.app.flash.Error)
	assert.Contains(t, h.app.flash.Text, "disk full")
}

func TestToggleDarkPersists(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	require.True(t, h.app.cfg.Appearance.Dark)

	h.keys("t")
	assert.False(t, h.app.cfg.Appearance.Dark)
	assert.Equal(t, "flexoki-light", theme.Active.Name)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Appearance.Dark)

	h.keys("t")
	assert.Equal(t, "flexoki-dark", theme.Active.Name)
}

func TestSettingsSwitchVariant(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("a", "Math", "enter")

	h.keys("x")
	require.Equal(t, tabSettings, h.app.current())
	for i := 0; i < settingsFieldVariant; i++ {
		h.keys("j")
	}
	h.keys("enter", "ctrl+u", "study", "enter")

	assert.Equal(t, store.LayoutStudy, h.app.layout)
	assert.Len(t, h.app.tabs, 3)
	assert.Equal(t, tabSettings, h.app.current())
	assert.Empty(t, h.app.store.Subjects(), "study layout uses its own key")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "study", cfg.General.Variant)
}

// The running layout comes from --variant study while the config still
// says multi.
func newFlagOverrideHarness(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, store.LayoutStudy)
	h.app.cfg.General.Variant = string(store.LayoutMulti)
	return h
}

func TestSettingsVariantFollowsRunningLayout(t *testing.T) {
	h := newFlagOverrideHarness(t)

	h.keys("x")
	require.Equal(t, tabSettings, h.app.current())
	for i := 0; i < settingsFieldVariant; i++ {
		h.keys("j")
	}
	h.keys("enter", "ctrl+u", "multi", "enter")

	assert.Equal(t, store.LayoutMulti, h.app.layout)
	assert.Len(t, h.app.tabs, 5)
	assert.False(t, h.app.flash.Error, h.app.flash.Text)
}

func TestToggleDarkKeepsFlagLayout(t *testing.T) {
	h := newFlagOverrideHarness(t)
	h.keys("t")

	assert.Equal(t, store.LayoutStudy, h.app.layout)
	assert.Len(t, h.app.tabs, 3)
}

func TestSettingsRejectsUnknownTheme(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("x", "enter", "ctrl+u", "nope", "enter")

	assert.True(t, h.app.flash.Error)
	assert.Equal(t, "flexoki-dark", h.app.cfg.Appearance.Theme)
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("?")
	assert.True(t, h.app.showHelp)
	assert.Contains(t, h.app.View(), "Keyboard Shortcuts")
	h.keys("j")
	assert.False(t, h.app.showHelp)
}

func TestViewShowsEveryTab(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	h.keys("a", "Math", "enter")

	assert.Contains(t, h.app.View(), "Math")
	for range h.app.tabs {
		h.keys("right")
		assert.NotEmpty(t, h.app.View())
	}
}

func TestFirstRunShowsSetupForm(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	st := state.New(model.Empty(), nil)
	a := NewApp(Options{Store: st, Layout: store.LayoutMulti, Config: config.DefaultConfig(), NeedSetup: true})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	a = m.(App)

	require.NotNil(t, a.setupForm)
	assert.NotEmpty(t, a.View())
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	got := SetupValues{Variant: "study", Theme: "catppuccin-latte", Dark: false, Currency: " $ "}.Apply(cfg)

	assert.Equal(t, "study", got.General.Variant)
	assert.False(t, got.Appearance.Dark)
	assert.Equal(t, "catppuccin-latte", got.Appearance.LightTheme)
	assert.Equal(t, "flexoki-dark", got.Appearance.Theme)
	assert.Equal(t, "$", got.Expenses.Currency)
	assert.Equal(t, "catppuccin-latte", got.ActiveTheme())

	bad := SetupValues{Variant: "weird", Theme: "nope", Dark: true}.Apply(cfg)
	assert.Equal(t, cfg.General.Variant, bad.General.Variant)
	assert.Equal(t, cfg.Appearance.Theme, bad.Appearance.Theme)
	assert.Equal(t, cfg.Expenses.Currency, bad.Expenses.Currency)
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for _, layout := range []store.Layout{store.LayoutMulti, store.LayoutStudy} {
		tabs := tabsFor(layout)
		for active := range tabs {
			a := App{tabs: tabs, activeTab: active}
			defs := a.tabDefs()
			pos := 0

			for i, tab := range defs {
				w := components.TabVisualWidth(tab, i == active)
				x := pos + w/2 // midpoint inside this tab
				if got := a.tabAtX(x); got != i {
					t.Fatalf("layout=%s active=%d x=%d -> tab=%d, want %d", layout, active, x, got, i)
				}
				pos += w
				if i < len(defs)-1 {
					pos++ // separator
				}
			}
			if got := a.tabAtX(pos + 5); got != -1 {
				t.Fatalf("x past last tab -> %d, want -1", got)
			}
		}
	}
}

func TestMouseClickSelectsTab(t *testing.T) {
	h := newHarness(t, store.LayoutMulti)
	defs := h.app.tabDefs()
	x := components.TabVisualWidth(defs[0], true) + 1 + 1

	h.send(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 1, h.app.activeTab)
}
