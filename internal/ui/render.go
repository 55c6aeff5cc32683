package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"sheetview/internal/model"
	"sheetview/internal/util"
)

// NoDataMessage is shown in place of rows when nothing matches.
const NoDataMessage = "No matching data"

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).MaxWidth(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func renderTableDivider(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	return DividerStyle.Render(strings.Repeat("─", total))
}

func renderActiveHeaderLabel(label string) string {
	return ActiveHeaderStyle.Render(label)
}

// headerLabel returns the column label with the sort indicator of state.
func headerLabel(label string, index int, state model.ViewState) string {
	if state.SortColumn != index {
		return label
	}
	switch state.Direction {
	case model.SortAscending:
		return label + " ▲"
	case model.SortDescending:
		return label + " ▼"
	}
	return label
}

// RenderPlain renders a view as a bordered text table for non-interactive
// output.
func RenderPlain(view model.Dataset, state model.ViewState) string {
	if len(view.Rows) == 0 {
		return NoDataMessage + "\n"
	}

	headers := make([]string, len(view.Columns))
	for i, c := range view.Columns {
		headers[i] = headerLabel(c, i, state)
	}

	rows := make([][]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		cells := make([]string, len(view.Columns))
		for i := range view.Columns {
			if i < len(r) {
				cells[i] = util.FormatCell(r[i], view.Columns[i])
			}
		}
		rows = append(rows, cells)
	}

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	return t.Render() + "\n"
}
