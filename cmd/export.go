package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/deskpad/internal/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tracked data as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "json", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	data, err := encodeSnapshot(flagExportFormat, st.Snapshot())
	if err != nil {
		return err
	}

	if flagExportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(flagExportOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "  Exported to %s\n", flagExportOutput)
	}
	return nil
}

// encodeSnapshot renders the full snapshot in the requested format.
func encodeSnapshot(format string, snap model.Snapshot) ([]byte, error) {
	snap.Normalize()
	switch format {
	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
}
