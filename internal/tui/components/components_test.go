package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/deskpad/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for total := 0; total < 50; total++ {
		for n := 1; n < 7; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			assert.Equal(t, total, sum, "total=%d n=%d", total, n)
		}
	}
	assert.Nil(t, LayoutRow(10, 0))
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	row := MetricCardRow([]Metric{{"Subjects", "3", ""}, {"Total", "₹ 200", "2 entries"}}, 60)
	for _, line := range strings.Split(row, "\n") {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	tabs := []Tab{{Name: "Study", Key: 's', KeyPos: 0}, {Name: "Settings", Key: 'x', KeyPos: -1}}
	for active := range tabs {
		total := 0
		for i, tab := range tabs {
			total += TabVisualWidth(tab, i == active)
		}
		total += len(tabs) - 1
		bar := RenderTabBar(tabs, active, total)
		assert.Equal(t, total, lipgloss.Width(bar))
	}
}

func TestTabIdxByKey(t *testing.T) {
	tabs := []Tab{{Name: "Study", Key: 's'}, {Name: "Habits", Key: 'h'}}
	assert.Equal(t, 1, TabIdxByKey(tabs, 'h'))
	assert.Equal(t, -1, TabIdxByKey(tabs, 'z'))
}

func TestStatusBarFillsWidth(t *testing.T) {
	bar := RenderStatusBar(80, "[?]help [q]uit", "3 subjects", Flash{})
	assert.Equal(t, 80, lipgloss.Width(bar))

	bar = RenderStatusBar(80, "[?]help", "3 subjects", Flash{Text: "invalid amount", Error: true})
	assert.Contains(t, bar, "invalid amount")
	assert.NotContains(t, bar, "3 subjects")
}

func TestShareBarsScalesToPeak(t *testing.T) {
	out := ShareBars([]string{"Coffee", "Book"}, []float64{50, 150}, 30)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Less(t, strings.Count(lines[0], "█"), strings.Count(lines[1], "█"))
}

func TestCompletionBarShowsPercent(t *testing.T) {
	assert.Contains(t, CompletionBar(50, 20), " 50%")
	assert.Contains(t, CompletionBar(130, 20), "100%")
}
