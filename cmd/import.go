package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/deskpad/internal/model"
	"github.com/theirongolddev/deskpad/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all tracked data with the contents of FILE",
	Long: "Replace all tracked data with FILE. YAML is detected by the .yaml/.yml extension, " +
		"anything else is read as JSON. A bare JSON array is taken as a list of subjects.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}
	snap, err := decodeSnapshot(args[0], data)
	if err != nil {
		return err
	}

	if sess.layout == store.LayoutStudy && (len(snap.Expenses) > 0 || len(snap.Habits) > 0) {
		fmt.Fprintf(cmd.ErrOrStderr(), "  Warning: study variant keeps subjects only; dropping %d expenses and %d habits\n",
			len(snap.Expenses), len(snap.Habits))
		snap.Expenses = []model.Expense{}
		snap.Habits = []model.Habit{}
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	if err := st.Replace(cmd.Context(), snap); err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  Imported %d subjects, %d expenses, %d habits\n",
		len(snap.Subjects), len(snap.Expenses), len(snap.Habits))
	return nil
}

// decodeSnapshot parses an export file. The format follows the extension.
func decodeSnapshot(path string, data []byte) (model.Snapshot, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var snap model.Snapshot
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return model.Snapshot{}, fmt.Errorf("parsing yaml: %w", err)
		}
		snap.Normalize()
		return snap, nil
	}

	layout := store.LayoutMulti
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		layout = store.LayoutStudy
	}
	snap, err := store.Decode(layout, data)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing json: %w", err)
	}
	return snap, nil
}
