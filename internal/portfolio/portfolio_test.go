package portfolio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestDefaultFillsYear(t *testing.T) {
	page := Default(fixed)
	assert.Contains(t, page, "© 2026")
	assert.NotContains(t, page, "{{year}}")
	for _, section := range []string{"## About", "## Projects", "## Skills", "## Contact"} {
		assert.Contains(t, page, section)
	}
}

func TestLoadPrefersUserFile(t *testing.T) {
	dir := t.TempDir()

	page, err := Load(dir, fixed)
	require.NoError(t, err)
	assert.Equal(t, Default(fixed), page)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("# Mine {{year}}"), 0o644))
	page, err = Load(dir, fixed)
	require.NoError(t, err)
	assert.Equal(t, "# Mine 2026", page)
}

func TestLoadWithoutDataDir(t *testing.T) {
	page, err := Load("", fixed)
	require.NoError(t, err)
	assert.Equal(t, Default(fixed), page)
}

func TestRenderProducesText(t *testing.T) {
	out, err := Render("# Hello\n\nworld", 40, true)
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "world")
}
