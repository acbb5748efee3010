package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/deskpad/internal/cli"
	"github.com/theirongolddev/deskpad/internal/metrics"

	"github.com/spf13/cobra"
)

var habitsCmd = &cobra.Command{
	Use:     "habits",
	Aliases: []string{"habit"},
	Short:   "List habits and today's progress",
	Args:    cobra.NoArgs,
	RunE:    runHabitsList,
}

var habitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits and today's progress",
	Args:  cobra.NoArgs,
	RunE:  runHabitsList,
}

var habitsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitsAdd,
}

var habitsToggleCmd = &cobra.Command{
	Use:   "toggle INDEX",
	Short: "Flip a habit between done and open (1-based index)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitsToggle,
}

func init() {
	habitsCmd.AddCommand(habitsListCmd, habitsAddCmd, habitsToggleCmd)
	rootCmd.AddCommand(habitsCmd)
}

func runHabitsList(cmd *cobra.Command, _ []string) error {
	if err := requireMulti("habits"); err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	habits := st.Habits()

	if len(habits) == 0 {
		fmt.Fprintln(out, "\n  No habits yet. Add one with `deskpad habits add NAME`.")
		return nil
	}

	done, total, pct := metrics.HabitStats(habits)
	fmt.Fprintln(out)
	for i, h := range habits {
		fmt.Fprintf(out, "  %s %s %s\n", cli.RenderDone(h.Done), cli.RenderMuted(cli.FormatIndex(i)+"."), h.Name)
	}
	fmt.Fprintf(out, "\n  %s %d/%d %s\n\n", cli.RenderProgressBar(pct, 20), done, total, cli.FormatPercent(pct))
	return nil
}

func runHabitsAdd(cmd *cobra.Command, args []string) error {
	if err := requireMulti("habits"); err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	name := strings.Join(args, " ")
	if err := st.AddHabit(cmd.Context(), name); err != nil {
		return fmt.Errorf("adding habit: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Added habit %s. %s\n", cli.FormatIndex(len(st.Habits())-1), name)
	return nil
}

func runHabitsToggle(cmd *cobra.Command, args []string) error {
	if err := requireMulti("habits"); err != nil {
		return err
	}
	i, err := cli.ParseIndex(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	if err := st.ToggleHabit(cmd.Context(), i); err != nil {
		return fmt.Errorf("toggling habit: %w", err)
	}
	h := st.Habits()[i]
	fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", cli.RenderDone(h.Done), h.Name)
	return nil
}
