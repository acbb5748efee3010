package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/deskpad/internal/config"
	"github.com/theirongolddev/deskpad/internal/portfolio"
	"github.com/theirongolddev/deskpad/internal/state"
	"github.com/theirongolddev/deskpad/internal/store"
	"github.com/theirongolddev/deskpad/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	page, err := portfolio.Load(sess.dataDir, time.Now())
	if err != nil {
		sess.log.Warn("loading portfolio", zap.Error(err))
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	slot := sess.slot
	app := tui.NewApp(tui.Options{
		Store:     st,
		Layout:    sess.layout,
		Config:    sess.cfg,
		DataDir:   sess.dataDir,
		Portfolio: page,
		NeedSetup: !config.Exists(),
		Log:       sess.log,
		Open: func(ctx context.Context, layout store.Layout) (*state.Store, error) {
			next, _ := loadLayout(ctx, slot, layout, sess.log)
			return next, nil
		},
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
