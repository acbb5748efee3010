package tui

import (
	"github.com/theirongolddev/deskpad/internal/portfolio"
	"github.com/theirongolddev/deskpad/internal/tui/components"
	"github.com/theirongolddev/deskpad/internal/tui/theme"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// portfolioState holds the markdown page and the viewport scrolling it.
type portfolioState struct {
	markdown string
	viewport viewport.Model
	err      error
}

func newPortfolioState(markdown string) portfolioState {
	vp := viewport.New(80, 20)
	vp.SetContent("")
	return portfolioState{markdown: markdown, viewport: vp}
}

// resizePortfolio re-renders the page for the current width and theme.
// The header, status bar and scroll bar take three rows.
func (a *App) resizePortfolio() {
	if a.width == 0 {
		return
	}
	w := a.contentWidth()
	h := a.height - 3
	if h < minContentHeight {
		h = minContentHeight
	}

	yOff := a.portfolio.viewport.YOffset
	a.portfolio.viewport.Width = w
	a.portfolio.viewport.Height = h

	out, err := portfolio.Render(a.portfolio.markdown, w-4, theme.Active.Dark)
	a.portfolio.err = err
	if err != nil {
		a.log.Warn("rendering portfolio", zap.Error(err))
		out = a.portfolio.markdown
	}
	a.portfolio.viewport.SetContent(out)
	a.portfolio.viewport.SetYOffset(yOff)
}

func (a App) updatePortfolioKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "j", "down", "k", "up", "pgdown", "pgup", "ctrl+d", "ctrl+u", "f", "b", "d", "u":
		var cmd tea.Cmd
		a.portfolio.viewport, cmd = a.portfolio.viewport.Update(msg)
		return a, cmd, true
	case "g", "home":
		a.portfolio.viewport.GotoTop()
		return a, nil, true
	case "G", "end":
		a.portfolio.viewport.GotoBottom()
		return a, nil, true
	}
	return a, nil, false
}

func (a App) renderPortfolioTab(cw int) string {
	t := theme.Active
	bar := components.ScrollBar(a.portfolio.viewport.ScrollPercent(), cw)
	view := lipgloss.NewStyle().Background(t.Background).Render(a.portfolio.viewport.View())
	return bar + "\n" + view
}
