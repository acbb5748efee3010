package cmd

import (
	"fmt"

	"github.com/theirongolddev/deskpad/internal/cli"
	"github.com/theirongolddev/deskpad/internal/metrics"
	"github.com/theirongolddev/deskpad/internal/store"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline numbers for subjects, expenses and habits",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	snap := st.Snapshot()

	if len(snap.Subjects) == 0 && len(snap.Expenses) == 0 && len(snap.Habits) == 0 {
		fmt.Fprintln(out, "\n  Nothing tracked yet.")
		fmt.Fprintln(out, "  Try `deskpad subjects add Math` or `deskpad tui`.")
		return nil
	}

	sum := metrics.Summarize(snap)

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("DESKPAD  "+string(sess.layout)))
	fmt.Fprintln(out)

	rows := [][]string{
		{"Subjects", cli.FormatNumber(int64(sum.Subjects))},
		{"Goals done", fmt.Sprintf("%d / %d", sum.GoalsDone, sum.Goals)},
		{"Overall completion", cli.FormatPercent(sum.OverallCompletion)},
	}
	if sess.layout == store.LayoutMulti {
		rows = append(rows,
			[]string{"---"},
			[]string{"Expenses", cli.FormatNumber(int64(sum.Expenses))},
			[]string{"Total spent", cli.FormatAmount(sum.TotalExpense, sess.cfg.Expenses.Currency)},
			[]string{"---"},
			[]string{"Habits", cli.FormatNumber(int64(sum.Habits))},
			[]string{"Habits done", fmt.Sprintf("%d / %d  (%s)", sum.HabitsDone, sum.Habits, cli.FormatPercent(sum.HabitsPercent))},
		)
	}

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	return nil
}
