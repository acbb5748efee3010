package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/theirongolddev/deskpad/internal/cli"
	"github.com/theirongolddev/deskpad/internal/store"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where data is stored and when it last changed",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// slotInspector is implemented by slots that can describe their last write.
type slotInspector interface {
	Info(ctx context.Context, key string) (store.SlotInfo, bool, error)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if _, err := openStore(cmd.Context()); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	key := sess.bridge.Key()

	location := "memory (--ephemeral)"
	if !flagEphemeral {
		location = filepath.Join(sess.dataDir, dbFileName)
	}

	rows := [][]string{
		{"Variant", string(sess.layout)},
		{"Storage", location},
		{"Key", key},
	}

	insp, ok := sess.slot.(slotInspector)
	if !ok {
		return errors.New("storage does not report status")
	}
	info, found, err := insp.Info(cmd.Context(), key)
	if err != nil {
		return err
	}
	if found {
		rows = append(rows,
			[]string{"Revision", info.Revision},
			[]string{"Updated", info.UpdatedAt.Local().Format(time.DateTime)},
			[]string{"Size", cli.FormatNumber(int64(info.Size)) + " bytes"},
		)
	} else {
		rows = append(rows, []string{"Revision", "(nothing saved yet)"})
	}

	if sq, ok := sess.slot.(*store.SQLite); ok {
		if keys, err := sq.Keys(cmd.Context()); err == nil && len(keys) > 1 {
			rows = append(rows, []string{"Other keys", fmt.Sprint(len(keys) - 1)})
		}
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:     "Storage",
		Headers:   []string{"Field", "Value"},
		Rows:      rows,
		LeftAlign: map[int]bool{1: true},
	}))
	return nil
}
