package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sheetview/internal/export"
	"sheetview/internal/ui"
)

func newExportCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the sheet to an xlsx workbook",
		Long: `Fetch the sheet once and write the displayed rows to an xlsx workbook.

Numbers stay numeric in the workbook. --filter and --sort apply before writing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := loadView(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := export.SaveXLSX(out, view); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(view.Rows), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", ui.DefaultExportPath, "Output file")
	return cmd
}
