// Package table holds the sort and filter semantics of the sheet view.
//
// A Table keeps two copies of the fetched rows: the order they arrived in and
// a working copy that sorting replaces. Filtering never touches either copy;
// it is applied on read by Rows.
package table

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"sheetview/internal/model"
	"sheetview/internal/util"
)

// Table is the view state of one activation over one dataset.
type Table struct {
	columns []string
	fetched []model.Row
	working []model.Row
	state   model.ViewState
}

// New creates a table over ds with an empty view state.
func New(ds model.Dataset) *Table {
	return &Table{
		columns: slices.Clone(ds.Columns),
		fetched: slices.Clone(ds.Rows),
		working: slices.Clone(ds.Rows),
		state:   model.NewViewState(),
	}
}

// Columns returns the column labels.
func (t *Table) Columns() []string {
	return t.columns
}

// State returns the current view state.
func (t *Table) State() model.ViewState {
	return t.state
}

// Total returns the number of rows before filtering.
func (t *Table) Total() int {
	return len(t.working)
}

// Rows returns the rows to display: the working order with the filter applied.
// The result must not be modified.
func (t *Table) Rows() []model.Row {
	return Filter(t.working, t.state.FilterText)
}

// SetFilterText replaces the filter text.
func (t *Table) SetFilterText(text string) {
	t.state.FilterText = text
}

// ToggleSort advances the sort state for column and reorders the working rows.
// Out of range columns are ignored.
func (t *Table) ToggleSort(column int) model.SortDirection {
	if column < 0 || column >= len(t.columns) {
		return t.state.Direction
	}

	t.state = NextSort(t.state, column)
	if t.state.Direction == model.SortNone {
		t.working = slices.Clone(t.fetched)
	} else {
		t.working = SortRows(t.working, column, t.state.Direction)
	}
	return t.state.Direction
}

// NextSort returns the view state after the header of column was selected.
// Repeated selection of one column cycles ascending, descending, unsorted;
// selecting another column starts over at ascending.
func NextSort(state model.ViewState, column int) model.ViewState {
	next := state
	if state.SortColumn != column {
		next.SortColumn = column
		next.Direction = model.SortAscending
		return next
	}

	switch state.Direction {
	case model.SortAscending:
		next.Direction = model.SortDescending
	case model.SortDescending:
		next.SortColumn = model.NoColumn
		next.Direction = model.SortNone
	default:
		next.Direction = model.SortAscending
	}
	return next
}

// SortRows returns a stably sorted copy of rows ordered by column.
func SortRows(rows []model.Row, column int, dir model.SortDirection) []model.Row {
	sorted := slices.Clone(rows)
	if dir == model.SortNone {
		return sorted
	}

	c := collate.New(language.English)
	slices.SortStableFunc(sorted, func(a, b model.Row) int {
		n := Compare(cell(a, column), cell(b, column), c)
		if dir == model.SortDescending {
			return -n
		}
		return n
	})
	return sorted
}

// Compare orders two cells. Percentages and dollar amounts compare as numbers;
// when either side is not numeric both are compared as text using c.
func Compare(a, b model.Value, c *collate.Collator) int {
	a, b = SortableValue(a), SortableValue(b)
	if a.IsNumber() && b.IsNumber() {
		// NaN differences compare equal.
		switch d := a.Number - b.Number; {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
		return 0
	}
	return c.CompareString(a.String(), b.String())
}

// SortableValue normalizes "%" and "$" formatted text into numbers.
// Unparseable text yields NaN, which is still a number.
func SortableValue(v model.Value) model.Value {
	if v.IsNumber() {
		return v
	}
	switch {
	case strings.Contains(v.Text, "%"):
		return model.Number(util.ParseFloat(strings.Replace(v.Text, "%", "", 1)))
	case strings.HasPrefix(v.Text, "$"):
		return model.Number(util.ParseFloat(strings.Replace(v.Text, "$", "", 1)))
	}
	return v
}

// Filter keeps the rows whose first cell contains text, ignoring case.
// An empty text keeps every row.
func Filter(rows []model.Row, text string) []model.Row {
	if text == "" {
		return rows
	}

	needle := strings.ToLower(text)
	out := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(r[0].String()), needle) {
			out = append(out, r)
		}
	}
	return out
}

func cell(r model.Row, i int) model.Value {
	if i < len(r) {
		return r[i]
	}
	return model.Text("")
}
