package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sheetview/internal/model"
	"sheetview/internal/table"
	"sheetview/internal/util"
)

const (
	maxColumnWidth = 32
	minColumnWidth = 6
)

// SheetModel represents the sheet table screen.
type SheetModel struct {
	table  *table.Table
	cursor int
	offset int

	viewportHeight int

	activeColumn int
	colOffset    int
}

// NewSheetModel creates a sheet model for a freshly fetched dataset.
func NewSheetModel(ds model.Dataset) *SheetModel {
	return &SheetModel{table: table.New(ds)}
}

// Columns returns the column labels.
func (m *SheetModel) Columns() []string {
	return m.table.Columns()
}

// State returns the current view state.
func (m *SheetModel) State() model.ViewState {
	return m.table.State()
}

// Rows returns the rows currently displayed.
func (m *SheetModel) Rows() []model.Row {
	return m.table.Rows()
}

// Displayed returns the displayed rows together with the column labels.
func (m *SheetModel) Displayed() model.Dataset {
	return model.Dataset{Columns: m.table.Columns(), Rows: m.table.Rows()}
}

// ActiveColumn returns the index of the highlighted column.
func (m *SheetModel) ActiveColumn() int {
	return m.activeColumn
}

// Cursor returns the index of the selected row.
func (m *SheetModel) Cursor() int {
	return m.cursor
}

// SetFilter replaces the filter text.
func (m *SheetModel) SetFilter(text string) {
	m.table.SetFilterText(text)
	m.clampCursor()
}

// ClearFilter drops the filter. It reports whether a filter was set.
func (m *SheetModel) ClearFilter() bool {
	if m.table.State().FilterText == "" {
		return false
	}
	m.SetFilter("")
	return true
}

func (m *SheetModel) clampCursor() {
	n := len(m.table.Rows())
	if n == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m *SheetModel) NextColumn() {
	if n := len(m.table.Columns()); n > 0 {
		m.activeColumn = (m.activeColumn + 1) % n
	}
}

func (m *SheetModel) PrevColumn() {
	n := len(m.table.Columns())
	if n == 0 {
		return
	}
	m.activeColumn--
	if m.activeColumn < 0 {
		m.activeColumn = n - 1
	}
}

func (m *SheetModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.table.Columns()) {
		return false
	}
	m.activeColumn = number - 1
	return true
}

// ToggleSortActiveColumn advances the sort cycle on the active column and
// returns a status message.
func (m *SheetModel) ToggleSortActiveColumn() string {
	columns := m.table.Columns()
	if len(columns) == 0 {
		return ""
	}
	label := columnLabel(columns[m.activeColumn])
	dir := m.table.ToggleSort(m.activeColumn)
	m.clampCursor()
	switch dir {
	case model.SortAscending:
		return fmt.Sprintf("Sorted %s ascending", label)
	case model.SortDescending:
		return fmt.Sprintf("Sorted %s descending", label)
	default:
		return "Sorting cleared"
	}
}

func (m *SheetModel) TableMeta() string {
	columns := m.table.Columns()
	if len(columns) == 0 {
		return ""
	}
	state := m.table.State()
	parts := []string{fmt.Sprintf("col %s", columnLabel(columns[m.activeColumn]))}
	if state.Direction != model.SortNone && state.SortColumn >= 0 {
		parts = append(parts, fmt.Sprintf("sort %s %s", columnLabel(columns[state.SortColumn]), state.Direction))
	}
	if state.FilterText != "" {
		parts = append(parts, fmt.Sprintf("filter %q", state.FilterText))
	}
	return strings.Join(parts, "  ·  ")
}

func columnLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		return "#"
	}
	return strings.ToUpper(label)
}

// columnWidths returns the rendered width of each column, padding included.
func (m *SheetModel) columnWidths(columns []string, rows []model.Row) []int {
	state := m.table.State()
	widths := make([]int, len(columns))
	for i, c := range columns {
		w := lipgloss.Width(headerLabel(c, i, state))
		if state.SortColumn != i {
			// room for the sort indicator
			w += 2
		}
		for _, r := range rows {
			if i < len(r) {
				w = max(w, lipgloss.Width(util.FormatCell(r[i], c)))
			}
		}
		widths[i] = min(max(w, minColumnWidth), maxColumnWidth) + 2
	}
	return widths
}

// visibleColumns returns the indexes of the columns that fit in width,
// scrolling horizontally so the active column stays on screen.
func (m *SheetModel) visibleColumns(widths []int, width int) []int {
	if m.activeColumn < m.colOffset {
		m.colOffset = m.activeColumn
	}
	for m.colOffset < m.activeColumn && sum(widths[m.colOffset:m.activeColumn+1]) > width {
		m.colOffset++
	}

	var idxs []int
	total := 0
	for i := m.colOffset; i < len(widths); i++ {
		if total+widths[i] > width && len(idxs) > 0 {
			break
		}
		total += widths[i]
		idxs = append(idxs, i)
	}
	return idxs
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// View renders the sheet.
func (m *SheetModel) View(width, height int) string {
	columns := m.table.Columns()
	if len(columns) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render(NoDataMessage)
	}

	rows := m.table.Rows()
	state := m.table.State()
	allWidths := m.columnWidths(columns, rows)
	visible := m.visibleColumns(allWidths, width)

	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	totalFixed := 0
	for _, idx := range visible {
		w := allWidths[idx]
		label := util.TruncateString(headerLabel(columns[idx], idx, state), w-2)
		if idx == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		totalFixed += w
		widths = append(widths, w)
		headers = append(headers, label)
	}
	if extra := width - totalFixed; extra > 0 && len(widths) > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	visibleHeight := max(1, height-3)
	m.viewportHeight = visibleHeight

	var lines []string
	if len(rows) == 0 {
		lines = append(lines, EmptyStateStyle.Render(NoDataMessage))
	}
	for i := m.offset; i < len(rows) && i < m.offset+visibleHeight; i++ {
		row := rows[i]
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}

		cells := make([]string, 0, len(visible))
		for j, idx := range visible {
			text := ""
			if idx < len(row) {
				text = util.FormatCell(row[idx], columns[idx])
			}
			cells = append(cells, util.TruncateString(text, widths[j]-2))
		}
		lines = append(lines, renderTableRow(cells, widths, style))
	}

	filterInfo := ""
	if state.FilterText != "" {
		filterInfo = fmt.Sprintf("  ·  filtered: %d/%d", len(rows), m.table.Total())
	}
	rowPos := ""
	if len(rows) > 0 {
		rowPos = fmt.Sprintf("  ·  row %d/%d", m.cursor+1, len(rows))
	}
	meta := m.TableMeta()
	if meta != "" {
		meta = "  ·  " + meta
	}
	status := StatusBarStyle.Render(fmt.Sprintf("%d rows%s%s%s", len(rows), rowPos, filterInfo, meta))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(lines, "\n"),
	)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		status,
	)
}

func (m *SheetModel) pageHeight() int {
	if m.viewportHeight == 0 {
		return 10
	}
	return m.viewportHeight
}

// MoveDown moves the cursor down.
func (m *SheetModel) MoveDown() {
	if m.cursor < len(m.table.Rows())-1 {
		m.cursor++
		if m.cursor >= m.offset+m.pageHeight() {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *SheetModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first row.
func (m *SheetModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last row.
func (m *SheetModel) JumpToBottom() {
	n := len(m.table.Rows())
	if n == 0 {
		return
	}
	m.cursor = n - 1
	if vh := m.pageHeight(); m.cursor >= vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageDown moves down half a page.
func (m *SheetModel) HalfPageDown(pageSize int) {
	n := len(m.table.Rows())
	if n == 0 {
		return
	}
	m.cursor = min(m.cursor+pageSize/2, n-1)
	if vh := m.pageHeight(); m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *SheetModel) HalfPageUp(pageSize int) {
	m.cursor = max(m.cursor-pageSize/2, 0)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}
