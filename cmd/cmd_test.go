package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/deskpad/internal/model"
	"github.com/theirongolddev/deskpad/internal/state"
)

// resetFlags restores every flag to its default so runs don't leak into
// each other through the package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type cliEnv struct {
	t       *testing.T
	dataDir string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	return &cliEnv{t: t, dataDir: t.TempDir()}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--data-dir", e.dataDir, "--quiet"}, args...))
	err := rootCmd.Execute()
	closeSession()
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, out)
	return out
}

func (e *cliEnv) exportJSON(args ...string) model.Snapshot {
	e.t.Helper()
	out := e.mustRun(append(args, "export")...)
	var snap model.Snapshot
	require.NoError(e.t, json.Unmarshal([]byte(out), &snap), out)
	return snap
}

func TestSubjectGoalFlow(t *testing.T) {
	e := newCLIEnv(t)

	e.mustRun("subjects", "add", "Math")
	e.mustRun("goals", "add", "1", "Read", "ch1")
	out := e.mustRun("goals", "toggle", "1", "1")
	assert.Contains(t, out, "100%")

	want := model.Snapshot{
		Subjects: []model.Subject{{
			Name:              "Math",
			Goals:             []model.Goal{{Text: "Read ch1", Done: true}},
			CompletionPercent: 100,
		}},
		Expenses: []model.Expense{},
		Habits:   []model.Habit{},
	}
	assert.Empty(t, cmp.Diff(want, e.exportJSON()))

	list := e.mustRun("subjects")
	assert.Contains(t, list, "Math")
	assert.Contains(t, list, "Read ch1")
}

func TestGoalIndexErrors(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("subjects", "add", "Math")

	_, err := e.run("goals", "toggle", "1", "3")
	assert.True(t, errors.Is(err, state.ErrIndexOutOfRange), "got %v", err)

	_, err = e.run("goals", "add", "2", "x")
	assert.True(t, errors.Is(err, state.ErrIndexOutOfRange), "got %v", err)

	_, err = e.run("goals", "add", "0", "x")
	assert.Error(t, err)
}

func TestExpenses(t *testing.T) {
	e := newCLIEnv(t)

	e.mustRun("expenses", "add", "Coffee", "50")
	e.mustRun("expenses", "add", "Book", "150")

	_, err := e.run("expenses", "add", "Lunch", "abc")
	assert.True(t, errors.Is(err, state.ErrInvalidAmount), "got %v", err)

	out := e.mustRun("expenses")
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "200")
	assert.NotContains(t, out, "Lunch")
}

func TestHabits(t *testing.T) {
	e := newCLIEnv(t)

	e.mustRun("habits", "add", "Read")
	e.mustRun("habits", "toggle", "1")
	assert.True(t, e.exportJSON().Habits[0].Done)
	e.mustRun("habits", "toggle", "1")
	assert.False(t, e.exportJSON().Habits[0].Done)

	_, err := e.run("habits", "toggle", "5")
	assert.True(t, errors.Is(err, state.ErrIndexOutOfRange), "got %v", err)
}

func TestBlankNamesRejected(t *testing.T) {
	e := newCLIEnv(t)

	_, err := e.run("subjects", "add", "   ")
	assert.True(t, errors.Is(err, state.ErrEmptyInput), "got %v", err)
	assert.Empty(t, e.exportJSON().Subjects)
}

func TestStudyVariant(t *testing.T) {
	e := newCLIEnv(t)

	_, err := e.run("--variant", "study", "expenses", "add", "Coffee", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available in the study variant")

	e.mustRun("--variant", "study", "subjects", "add", "Physics")
	assert.Len(t, e.exportJSON("--variant", "study").Subjects, 1)
	assert.Empty(t, e.exportJSON().Subjects, "multi variant uses its own key")

	_, err = e.run("--variant", "weird", "subjects")
	assert.Error(t, err)
}

func TestEphemeralDoesNotPersist(t *testing.T) {
	e := newCLIEnv(t)

	e.mustRun("--ephemeral", "subjects", "add", "Math")
	_, err := os.Stat(filepath.Join(e.dataDir, dbFileName))
	assert.True(t, os.IsNotExist(err), "ephemeral run should not create the database")
	assert.Empty(t, e.exportJSON().Subjects)
}

func TestExportImportYAML(t *testing.T) {
	src := newCLIEnv(t)
	src.mustRun("subjects", "add", "Math")
	src.mustRun("goals", "add", "1", "Read")
	src.mustRun("expenses", "add", "Coffee", "2.5")
	src.mustRun("habits", "add", "Walk")

	file := filepath.Join(t.TempDir(), "backup.yaml")
	src.mustRun("export", "--format", "yaml", "-o", file)
	want := src.exportJSON()

	dst := &cliEnv{t: t, dataDir: t.TempDir()}
	out := dst.mustRun("import", file)
	assert.Contains(t, out, "Imported 1 subjects, 1 expenses, 1 habits")
	assert.Empty(t, cmp.Diff(want, dst.exportJSON()))
}

func TestImportBareArrayIntoStudy(t *testing.T) {
	e := newCLIEnv(t)
	file := filepath.Join(t.TempDir(), "planner.json")
	raw := `[{"name":"Bio","goals":[{"text":"Cells","done":true},{"text":"DNA","done":false}],"completionPercent":7}]`
	require.NoError(t, os.WriteFile(file, []byte(raw), 0o644))

	e.mustRun("--variant", "study", "import", file)
	snap := e.exportJSON("--variant", "study")
	require.Len(t, snap.Subjects, 1)
	assert.Equal(t, 50, snap.Subjects[0].CompletionPercent, "stale percent is recomputed")
}

func TestImportRejectsGarbage(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("subjects", "add", "Keep")

	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte("{nope"), 0o644))

	_, err := e.run("import", file)
	assert.Error(t, err)
	assert.Len(t, e.exportJSON().Subjects, 1)
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("expenses", "add", "Keep", "1")

	file := filepath.Join(t.TempDir(), "bad.json")
	raw := `{"subjects":[],"expenses":[{"name":"Coffee","amount":"abc"},{"name":"","amount":"5"}],"habits":[]}`
	require.NoError(t, os.WriteFile(file, []byte(raw), 0o644))

	_, err := e.run("import", file)
	assert.True(t, errors.Is(err, state.ErrInvalidAmount), "got %v", err)

	snap := e.exportJSON()
	assert.Equal(t, []model.Expense{{Name: "Keep", Amount: "1"}}, snap.Expenses)
}

func TestExportUnknownFormat(t *testing.T) {
	e := newCLIEnv(t)
	_, err := e.run("export", "--format", "xml")
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	e := newCLIEnv(t)

	out := e.mustRun("status")
	assert.Contains(t, out, "multiSPA")
	assert.Contains(t, out, "nothing saved yet")

	e.mustRun("subjects", "add", "Math")
	out = e.mustRun("status")
	assert.Contains(t, out, "Revision")
	assert.Contains(t, out, "bytes")
	assert.NotContains(t, out, "nothing saved yet")
}

func TestSummary(t *testing.T) {
	e := newCLIEnv(t)
	assert.Contains(t, e.mustRun(), "Nothing tracked yet")

	e.mustRun("subjects", "add", "Math")
	e.mustRun("expenses", "add", "Coffee", "50")
	out := e.mustRun("summary")
	assert.Contains(t, out, "Overall completion")
	assert.Contains(t, out, "50")
}

func TestConfigShowsDefaults(t *testing.T) {
	e := newCLIEnv(t)
	out := e.mustRun("config")
	assert.Contains(t, out, "using defaults")
	assert.Contains(t, out, "flexoki-dark")
	assert.Contains(t, out, e.dataDir)
}

func TestDecodeSnapshot(t *testing.T) {
	snap, err := decodeSnapshot("x.json", []byte(`{"subjects":[{"name":"A","goals":null}]}`))
	require.NoError(t, err)
	assert.Equal(t, []model.Goal{}, snap.Subjects[0].Goals)
	assert.Equal(t, []model.Expense{}, snap.Expenses)

	snap, err = decodeSnapshot("x.YML", []byte("habits:\n  - name: Walk\n    done: true\n"))
	require.NoError(t, err)
	assert.Equal(t, []model.Habit{{Name: "Walk", Done: true}}, snap.Habits)
	assert.Equal(t, []model.Subject{}, snap.Subjects)
}
