package cmd

import (
	"fmt"

	"github.com/theirongolddev/deskpad/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfg := sess.cfg

	fmt.Fprintf(out, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Variant:        %s\n", cfg.General.Variant)
	if flagVariant != "" && flagVariant != cfg.General.Variant {
		fmt.Fprintf(out, "    (overridden by --variant %s)\n", flagVariant)
	}
	fmt.Fprintf(out, "    Data directory: %s\n", sess.dataDir)
	fmt.Fprintf(out, "    Storage key:    %s\n", sess.layout.Key())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Dark theme:  %s\n", cfg.Appearance.Theme)
	fmt.Fprintf(out, "    Light theme: %s\n", cfg.Appearance.LightTheme)
	fmt.Fprintf(out, "    Dark mode:   %v\n", cfg.Appearance.Dark)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Expenses]")
	fmt.Fprintf(out, "    Currency: %s\n", cfg.Expenses.Currency)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level: %s\n", cfg.Log.Level)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `deskpad setup` to reconfigure.")
	return nil
}
