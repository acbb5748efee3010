package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/deskpad/internal/cli"

	"github.com/spf13/cobra"
)

var goalsCmd = &cobra.Command{
	Use:     "goals",
	Aliases: []string{"goal"},
	Short:   "Add or toggle goals of a subject",
}

var goalsAddCmd = &cobra.Command{
	Use:   "add SUBJECT TEXT",
	Short: "Add a goal to a subject (1-based index)",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runGoalsAdd,
}

var goalsToggleCmd = &cobra.Command{
	Use:   "toggle SUBJECT GOAL",
	Short: "Flip a goal between done and open (1-based indices)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsToggle,
}

func init() {
	goalsCmd.AddCommand(goalsAddCmd, goalsToggleCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	i, err := cli.ParseIndex(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	if err := st.AddGoal(cmd.Context(), i, text); err != nil {
		return fmt.Errorf("adding goal: %w", err)
	}
	s := st.Subjects()[i]
	fmt.Fprintf(cmd.OutOrStdout(), "  Added goal %s to %s (%s done)\n",
		cli.FormatIndex(len(s.Goals)-1), s.Name, cli.FormatPercent(s.CompletionPercent))
	return nil
}

func runGoalsToggle(cmd *cobra.Command, args []string) error {
	i, err := cli.ParseIndex(args[0])
	if err != nil {
		return err
	}
	j, err := cli.ParseIndex(args[1])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	if err := st.ToggleGoal(cmd.Context(), i, j); err != nil {
		return fmt.Errorf("toggling goal: %w", err)
	}
	s := st.Subjects()[i]
	fmt.Fprintf(cmd.OutOrStdout(), "  %s %s  (%s %s)\n",
		cli.RenderDone(s.Goals[j].Done), s.Goals[j].Text, s.Name, cli.FormatPercent(s.CompletionPercent))
	return nil
}
