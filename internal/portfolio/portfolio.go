// Package portfolio provides the markdown page shown on the Portfolio tab.
package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
)

// FileName is the user override looked up in the data directory.
const FileName = "portfolio.md"

//go:embed portfolio.md
var defaultPage string

// Default returns the built-in page with the footer year filled in.
func Default(now time.Time) string {
	return expand(defaultPage, now)
}

// Load returns the user's page from dataDir if one exists, else the default.
func Load(dataDir string, now time.Time) (string, error) {
	if dataDir != "" {
		data, err := os.ReadFile(filepath.Join(dataDir, FileName))
		switch {
		case err == nil:
			return expand(string(data), now), nil
		case !errors.Is(err, fs.ErrNotExist):
			return Default(now), fmt.Errorf("reading portfolio: %w", err)
		}
	}
	return Default(now), nil
}

// Render turns markdown into styled terminal text wrapped at width.
func Render(markdown string, width int, dark bool) (string, error) {
	if width < 20 {
		width = 20
	}
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering portfolio: %w", err)
	}
	return out, nil
}

func expand(page string, now time.Time) string {
	return strings.ReplaceAll(page, "{{year}}", strconv.Itoa(now.Year()))
}
