// Package export writes the displayed sheet view to files and streams.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/itchyny/gojq"
	"github.com/xuri/excelize/v2"

	"sheetview/internal/model"
)

const sheetName = "Sheet1"

// SaveXLSX writes view to an Excel workbook at path. Numeric cells stay numeric
// and the header row is bold.
func SaveXLSX(path string, view model.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, 0, len(view.Columns))
	for _, c := range view.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range view.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, 0, len(row))
		for _, v := range row {
			values = append(values, plainValue(v))
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteJSON writes view as {"columns": [...], "rows": [[...]]}. A non-empty
// query is run as a jq program over that document and each result is written
// on its own.
func WriteJSON(w io.Writer, view model.Dataset, query string) error {
	doc := document(view)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if query == "" {
		return enc.Encode(doc)
	}

	parsed, err := gojq.Parse(query)
	if err != nil {
		return fmt.Errorf("invalid jq query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return fmt.Errorf("invalid jq query: %w", err)
	}

	iter := code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := v.(error); ok {
			if err, ok := err.(*gojq.HaltError); ok && err.Value() == nil {
				return nil
			}
			return fmt.Errorf("jq query failed: %w", err)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
}

// document converts view to the plain map/slice form gojq operates on.
func document(view model.Dataset) map[string]any {
	columns := make([]any, 0, len(view.Columns))
	for _, c := range view.Columns {
		columns = append(columns, c)
	}

	rows := make([]any, 0, len(view.Rows))
	for _, r := range view.Rows {
		cells := make([]any, 0, len(r))
		for _, v := range r {
			cells = append(cells, plainValue(v))
		}
		rows = append(rows, cells)
	}

	return map[string]any{
		"columns": columns,
		"rows":    rows,
	}
}

// plainValue returns the cell as float64 or string. Non-finite numbers have no
// JSON or spreadsheet form and are written as text.
func plainValue(v model.Value) any {
	if v.IsNumber() && !math.IsNaN(v.Number) && !math.IsInf(v.Number, 0) {
		return v.Number
	}
	return v.String()
}
