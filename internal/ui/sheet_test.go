package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetview/internal/model"
)

func domainsDataset() model.Dataset {
	return model.Dataset{
		Columns: []string{"Domain", "Price", "Spam Score"},
		Rows: []model.Row{
			{model.Text("b.com"), model.Number(20), model.Number(3)},
			{model.Text("c.com"), model.Number(5), model.Text("7.456")},
			{model.Text("a.com"), model.Number(100), model.Number(1.5)},
		},
	}
}

func firstColumn(rows []model.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r[0].String()
	}
	return out
}

func TestSheetModelToggleSortMessages(t *testing.T) {
	m := NewSheetModel(domainsDataset())
	m.NextColumn()

	assert.Equal(t, "Sorted PRICE ascending", m.ToggleSortActiveColumn())
	assert.Equal(t, []string{"c.com", "b.com", "a.com"}, firstColumn(m.Rows()))

	assert.Equal(t, "Sorted PRICE descending", m.ToggleSortActiveColumn())
	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, firstColumn(m.Rows()))

	assert.Equal(t, "Sorting cleared", m.ToggleSortActiveColumn())
	assert.Equal(t, []string{"b.com", "c.com", "a.com"}, firstColumn(m.Rows()))
}

func TestSheetModelColumnNavigationWraps(t *testing.T) {
	m := NewSheetModel(domainsDataset())

	m.PrevColumn()
	assert.Equal(t, 2, m.ActiveColumn())
	m.NextColumn()
	assert.Equal(t, 0, m.ActiveColumn())

	assert.True(t, m.JumpToColumn(2))
	assert.Equal(t, 1, m.ActiveColumn())
	assert.False(t, m.JumpToColumn(4))
	assert.False(t, m.JumpToColumn(0))
}

func TestSheetModelFilterClampsCursor(t *testing.T) {
	m := NewSheetModel(domainsDataset())
	m.JumpToBottom()
	require.Equal(t, 2, m.Cursor())

	m.SetFilter("B.")
	assert.Equal(t, []string{"b.com"}, firstColumn(m.Rows()))
	assert.Equal(t, 0, m.Cursor())

	assert.True(t, m.ClearFilter())
	assert.False(t, m.ClearFilter())
	assert.Len(t, m.Rows(), 3)
}

func TestSheetModelMovement(t *testing.T) {
	m := NewSheetModel(domainsDataset())

	m.MoveUp()
	assert.Equal(t, 0, m.Cursor())
	m.MoveDown()
	m.MoveDown()
	m.MoveDown()
	assert.Equal(t, 2, m.Cursor())
	m.HalfPageUp(4)
	assert.Equal(t, 0, m.Cursor())
	m.HalfPageDown(20)
	assert.Equal(t, 2, m.Cursor())
	m.JumpToTop()
	assert.Equal(t, 0, m.Cursor())
}

func TestSheetModelViewFormatsCells(t *testing.T) {
	m := NewSheetModel(domainsDataset())
	m.NextColumn()
	m.ToggleSortActiveColumn()

	out := m.View(120, 20)
	assert.Contains(t, out, "Price ▲")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "$5.00")
	assert.Contains(t, out, "7.46")
	assert.Contains(t, out, "1.50")
	assert.Contains(t, out, "row 1/3")
	assert.NotContains(t, out, "filtered:")
}

func TestSheetModelViewEmptyFilterResult(t *testing.T) {
	m := NewSheetModel(domainsDataset())
	m.SetFilter("zzz")

	out := m.View(120, 20)
	assert.Contains(t, out, NoDataMessage)
	assert.Contains(t, out, "filtered: 0/3")
	assert.Contains(t, out, "Domain")
}

func TestSheetModelViewWithoutColumns(t *testing.T) {
	m := NewSheetModel(model.Dataset{})
	assert.Contains(t, m.View(80, 10), NoDataMessage)
	assert.Equal(t, "", m.ToggleSortActiveColumn())
	assert.Equal(t, "", m.TableMeta())
}

func TestSheetModelScrollsToActiveColumn(t *testing.T) {
	ds := model.Dataset{Columns: make([]string, 12)}
	row := make(model.Row, 12)
	for i := range ds.Columns {
		ds.Columns[i] = strings.Repeat(string(rune('A'+i)), 10)
		row[i] = model.Number(float64(i))
	}
	ds.Rows = []model.Row{row}

	m := NewSheetModel(ds)
	require.True(t, m.JumpToColumn(12))

	out := m.View(60, 10)
	assert.Contains(t, out, "LLLLLLLLLL")
	assert.NotContains(t, out, "AAAAAAAAAA")
}

func TestRenderPlain(t *testing.T) {
	ds := domainsDataset()
	out := RenderPlain(ds, model.ViewState{SortColumn: 1, Direction: model.SortDescending})

	assert.Contains(t, out, "Price ▼")
	assert.Contains(t, out, "$20.00")
	assert.Contains(t, out, "3.00")
	assert.Contains(t, out, "b.com")

	assert.Equal(t, NoDataMessage+"\n", RenderPlain(model.Dataset{Columns: ds.Columns}, model.NewViewState()))
}
