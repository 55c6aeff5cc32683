package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"sheetview/internal/db"
	"sheetview/internal/model"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded fetches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(opts, false)
			if err != nil {
				return err
			}
			if settings.NoJournal {
				return errors.New("fetch journal is disabled")
			}
			if _, err := os.Stat(settings.JournalPath); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No fetches recorded")
				return nil
			}

			journal, err := db.Open(settings.JournalPath)
			if err != nil {
				return err
			}
			defer journal.Close()

			recs, err := db.ListFetches(journal, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderHistory(recs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of fetches to show (0 for all)")
	return cmd
}

func renderHistory(recs []model.FetchRecord) string {
	if len(recs) == 0 {
		return "No fetches recorded\n"
	}

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		detail := strconv.Itoa(r.Rows) + " rows"
		if r.Status == model.FetchFailed {
			detail = r.ErrorKind
		}
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(r.Status),
			r.Duration.String(),
			detail,
			r.ID,
		})
	}

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers("started", "status", "took", "result", "id").
		Rows(rows...)
	return t.Render() + "\n"
}
