package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetview/internal/model"
)

const gvizPrefix = "/*O_o*/\ngoogle.visualization.Query.setResponse("

func wrap(body string) string {
	return gvizPrefix + body + ");"
}

func TestWrapperPrefixLength(t *testing.T) {
	require.Len(t, gvizPrefix, wrapperPrefixLen)
}

func TestUnwrap(t *testing.T) {
	got, err := Unwrap(wrap(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)
}

func TestUnwrapTooShort(t *testing.T) {
	_, err := Unwrap("short")
	require.ErrorIs(t, err, ErrWrapper)
	assert.Equal(t, "wrapper", Kind(err))
}

func TestDecode(t *testing.T) {
	payload := wrap(`{"version":"0.6","status":"ok","table":{
		"cols":[{"id":"A","label":"Domain","type":"string"},{"id":"B","label":"","type":"number"},{"id":"C","type":"boolean"}],
		"rows":[
			{"c":[{"v":"example.com"},{"v":12.5,"f":"12.5"},{"v":true}]},
			{"c":[null,{"v":null},{"v":false}]},
			{"c":[{"v":"short.io"}]}
		]}}`)

	ds, err := Decode(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"Domain", UnnamedColumn, UnnamedColumn}, ds.Columns)
	require.Len(t, ds.Rows, 3)
	assert.Equal(t, model.Row{model.Text("example.com"), model.Number(12.5), model.Text("true")}, ds.Rows[0])
	assert.Equal(t, model.Row{model.Text(""), model.Text(""), model.Text("false")}, ds.Rows[1])
	assert.Equal(t, model.Row{model.Text("short.io"), model.Text(""), model.Text("")}, ds.Rows[2])
}

func TestDecodeNonStringLabels(t *testing.T) {
	ds, err := Decode(wrap(`{"table":{"cols":[` +
		`{"label":5},{"label":2.5e-7},{"label":true},{"label":["a",1]},` +
		`{"label":null},{"label":0},{"label":false},{"label":""}` +
		`],"rows":[]}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"5", "2.5e-7", "true", `["a",1]`,
		UnnamedColumn, UnnamedColumn, UnnamedColumn, UnnamedColumn,
	}, ds.Columns)
}

func TestDecodeTruncatesLongRows(t *testing.T) {
	ds, err := Decode(wrap(`{"table":{"cols":[{"label":"Only"}],"rows":[{"c":[{"v":1},{"v":2}]}]}}`))
	require.NoError(t, err)
	assert.Equal(t, []model.Row{{model.Number(1)}}, ds.Rows)
}

func TestDecodeNestedValueKeepsJSONText(t *testing.T) {
	ds, err := Decode(wrap(`{"table":{"cols":[{"label":"X"}],"rows":[{"c":[{"v":{"a": [1, 2]}}]}]}}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2]}`, ds.Rows[0][0].String())
}

func TestDecodeEmptyTable(t *testing.T) {
	ds, err := Decode(wrap(`{"table":{"cols":[],"rows":[]}}`))
	require.NoError(t, err)
	assert.True(t, ds.Empty())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
		kind    string
	}{
		{"empty payload", "", ErrWrapper, "wrapper"},
		{"not json", wrap(`<html>`), ErrJSON, "json"},
		{"missing table", wrap(`{"status":"error"}`), ErrShape, "shape"},
		{"missing cols", wrap(`{"table":{"rows":[]}}`), ErrShape, "shape"},
		{"missing rows", wrap(`{"table":{"cols":[]}}`), ErrShape, "shape"},
		{"null column", wrap(`{"table":{"cols":[null],"rows":[]}}`), ErrShape, "shape"},
		{"row without cells", wrap(`{"table":{"cols":[{"label":"A"}],"rows":[{}]}}`), ErrShape, "shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.payload)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, Kind(err))
		})
	}
}
