package tui

import (
	"strings"

	"github.com/theirongolddev/deskpad/internal/config"
	"github.com/theirongolddev/deskpad/internal/store"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the first-run form.
type SetupValues struct {
	Variant  string
	Theme    string
	Dark     bool
	Currency string
}

// SetupValuesFrom seeds the form with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Variant:  cfg.General.Variant,
		Theme:    cfg.ActiveTheme(),
		Dark:     cfg.Appearance.Dark,
		Currency: cfg.Expenses.Currency,
	}
}

// Apply writes the answers into cfg. The chosen theme becomes the dark or
// light theme depending on the chosen mode.
func (v SetupValues) Apply(cfg config.Config) config.Config {
	if _, err := store.ParseLayout(v.Variant); err == nil {
		cfg.General.Variant = v.Variant
	}
	cfg.Appearance.Dark = v.Dark
	if theme.Exists(v.Theme) {
		if v.Dark {
			cfg.Appearance.Theme = v.Theme
		} else {
			cfg.Appearance.LightTheme = v.Theme
		}
	}
	if c := strings.TrimSpace(v.Currency); c != "" {
		cfg.Expenses.Currency = c
	}
	return cfg
}

// NewSetupForm builds the first-run wizard. Answers are written to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to deskpad").
				Description("A study planner, expense tracker and habit tracker.\nLet's set up a few things."),
			huh.NewSelect[string]().
				Title("Which app layout?").
				Description("Study keeps only subjects and goals.").
				Options(
					huh.NewOption("Multi (study, expenses, habits)", string(store.LayoutMulti)),
					huh.NewOption("Study planner only", string(store.LayoutStudy)),
				).
				Value(&vals.Variant),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Dark mode?").
				Affirmative("Dark").
				Negative("Light").
				Value(&vals.Dark),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewInput().
				Title("Currency symbol").
				Placeholder("₹").
				CharLimit(8).
				Value(&vals.Currency),
		),
	).WithShowHelp(true)
}
