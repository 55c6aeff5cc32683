package sheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"sheetview/internal/model"
)

// The gviz endpoint wraps its JSON as
//
//	/*O_o*/\ngoogle.visualization.Query.setResponse({...});
//
// and only the lengths of the two ends are relied upon.
const (
	wrapperPrefixLen = 47
	wrapperSuffixLen = 2
)

// UnnamedColumn is the label of columns without one.
const UnnamedColumn = "Unnamed Column"

// Unwrap strips the JSON-with-padding wrapper from a gviz payload.
func Unwrap(payload string) (string, error) {
	if len(payload) < wrapperPrefixLen+wrapperSuffixLen {
		return "", fmt.Errorf("%w: payload is %d bytes, need at least %d",
			ErrWrapper, len(payload), wrapperPrefixLen+wrapperSuffixLen)
	}
	return payload[wrapperPrefixLen : len(payload)-wrapperSuffixLen], nil
}

// gviz response types

type response struct {
	Table *gvizTable `json:"table"`
}

type gvizTable struct {
	Cols []*gvizColumn `json:"cols"`
	Rows []*gvizRow    `json:"rows"`
}

type gvizColumn struct {
	Label json.RawMessage `json:"label"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCell struct {
	V json.RawMessage `json:"v"`
}

// Decode turns a raw gviz payload into a dataset.
func Decode(payload string) (model.Dataset, error) {
	body, err := Unwrap(payload)
	if err != nil {
		return model.Dataset{}, err
	}

	var resp response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return model.Dataset{}, fmt.Errorf("%w: %v", ErrJSON, err)
	}

	if resp.Table == nil {
		return model.Dataset{}, fmt.Errorf("%w: missing table", ErrShape)
	}
	if resp.Table.Cols == nil {
		return model.Dataset{}, fmt.Errorf("%w: missing table.cols", ErrShape)
	}
	if resp.Table.Rows == nil {
		return model.Dataset{}, fmt.Errorf("%w: missing table.rows", ErrShape)
	}

	columns := make([]string, 0, len(resp.Table.Cols))
	for i, col := range resp.Table.Cols {
		if col == nil {
			return model.Dataset{}, fmt.Errorf("%w: column %d is null", ErrShape, i)
		}
		label, err := columnLabel(col.Label)
		if err != nil {
			return model.Dataset{}, fmt.Errorf("%w: column %d label: %v", ErrJSON, i, err)
		}
		columns = append(columns, label)
	}

	rows := make([]model.Row, 0, len(resp.Table.Rows))
	for i, r := range resp.Table.Rows {
		if r == nil || r.C == nil {
			return model.Dataset{}, fmt.Errorf("%w: row %d has no cells", ErrShape, i)
		}
		row := make(model.Row, len(columns))
		for j := range row {
			row[j] = model.Text("")
			if j < len(r.C) && r.C[j] != nil {
				v, err := cellValue(r.C[j].V)
				if err != nil {
					return model.Dataset{}, fmt.Errorf("%w: row %d column %d: %v", ErrJSON, i, j, err)
				}
				row[j] = v
			}
		}
		rows = append(rows, row)
	}

	return model.Dataset{Columns: columns, Rows: rows}, nil
}

// columnLabel renders any JSON label as text. Falsy labels (missing, null,
// empty, false or zero) fall back to UnnamedColumn.
func columnLabel(raw json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("false")) {
		return UnnamedColumn, nil
	}
	v, err := cellValue(raw)
	if err != nil {
		return "", err
	}
	if (v.IsNumber() && v.Number == 0) || (!v.IsNumber() && v.Text == "") {
		return UnnamedColumn, nil
	}
	return v.String(), nil
}

func cellValue(raw json.RawMessage) (model.Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return model.Text(""), nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return model.Value{}, err
		}
		return model.Text(s), nil
	case 't', 'f':
		return model.Text(string(raw)), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return model.Value{}, err
		}
		return model.Text(buf.String()), nil
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return model.Value{}, err
	}
	return model.Number(f), nil
}
