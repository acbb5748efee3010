package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/deskpad/internal/cli"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:     "subjects",
	Aliases: []string{"subject"},
	Short:   "List subjects with their goals",
	Args:    cobra.NoArgs,
	RunE:    runSubjectsList,
}

var subjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects with their goals",
	Args:  cobra.NoArgs,
	RunE:  runSubjectsList,
}

var subjectsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a subject",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSubjectsAdd,
}

func init() {
	subjectsCmd.AddCommand(subjectsListCmd, subjectsAddCmd)
	rootCmd.AddCommand(subjectsCmd)
}

func runSubjectsList(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	subjects := st.Subjects()

	if len(subjects) == 0 {
		fmt.Fprintln(out, "\n  No subjects yet. Add one with `deskpad subjects add NAME`.")
		return nil
	}

	fmt.Fprintln(out)
	for i, s := range subjects {
		fmt.Fprintf(out, "  %s. %s  %s %s\n",
			cli.FormatIndex(i), s.Name,
			cli.RenderProgressBar(s.CompletionPercent, 20), cli.FormatPercent(s.CompletionPercent))
		for j, g := range s.Goals {
			fmt.Fprintf(out, "       %s %s %s\n", cli.RenderDone(g.Done), cli.RenderMuted(cli.FormatIndex(j)+"."), g.Text)
		}
		if len(s.Goals) == 0 {
			fmt.Fprintf(out, "       %s\n", cli.RenderMuted("no goals"))
		}
	}
	fmt.Fprintln(out)
	return nil
}

func runSubjectsAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	name := strings.Join(args, " ")
	if err := st.AddSubject(cmd.Context(), name); err != nil {
		return fmt.Errorf("adding subject: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Added subject %s. %s\n", cli.FormatIndex(len(st.Subjects())-1), name)
	return nil
}
