package cmd

import (
	"fmt"

	"github.com/theirongolddev/deskpad/internal/cli"

	"github.com/spf13/cobra"
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"expense"},
	Short:   "List expenses with the running total",
	Args:    cobra.NoArgs,
	RunE:    runExpensesList,
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses with the running total",
	Args:  cobra.NoArgs,
	RunE:  runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Record an expense",
	Args:  cobra.ExactArgs(2),
	RunE:  runExpensesAdd,
}

func init() {
	expensesCmd.AddCommand(expensesListCmd, expensesAddCmd)
	rootCmd.AddCommand(expensesCmd)
}

func runExpensesList(cmd *cobra.Command, _ []string) error {
	if err := requireMulti("expenses"); err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	expenses := st.Expenses()

	if len(expenses) == 0 {
		fmt.Fprintln(out, "\n  No expenses yet. Add one with `deskpad expenses add NAME AMOUNT`.")
		return nil
	}

	currency := sess.cfg.Expenses.Currency
	rows := make([][]string, 0, len(expenses)+2)
	for i, e := range expenses {
		rows = append(rows, []string{cli.FormatIndex(i), e.Name, e.Amount})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Total", cli.FormatAmount(st.TotalExpense(), currency)})

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:     "Expenses",
		Headers:   []string{"#", "Name", "Amount"},
		Rows:      rows,
		LeftAlign: map[int]bool{1: true},
	}))
	return nil
}

func runExpensesAdd(cmd *cobra.Command, args []string) error {
	if err := requireMulti("expenses"); err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	if err := st.AddExpense(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("adding expense: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Added %s. Total: %s\n",
		args[0], cli.FormatAmount(st.TotalExpense(), sess.cfg.Expenses.Currency))
	return nil
}
