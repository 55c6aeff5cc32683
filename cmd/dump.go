package cmd

import (
	"github.com/spf13/cobra"

	"sheetview/internal/export"
)

func newDumpCmd(opts *options) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the sheet as JSON",
		Long: `Fetch the sheet once and print the displayed rows as JSON.

The document has the shape {"columns": [...], "rows": [[...], ...]} with raw
cell values. --filter and --sort apply before printing.

Examples:
  sheetview dump --sort Price --desc
  sheetview dump --jq '.rows[] | .[0]'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := loadView(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return export.WriteJSON(cmd.OutOrStdout(), view, query)
		},
	}

	cmd.Flags().StringVar(&query, "jq", "", "jq expression applied to the document")
	return cmd
}
