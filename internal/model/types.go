package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the content of a Value.
type ValueKind int

const (
	KindText ValueKind = iota
	KindNumber
)

// Value is a single spreadsheet cell: either text or a number.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
}

// Text returns a text cell.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Number returns a numeric cell.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// IsNumber reports whether the cell holds a number.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// String returns the textual representation of the cell. Numbers follow the
// JavaScript Number-to-String rules so that sheet values print the way the
// source spreadsheet shows them in a browser.
func (v Value) String() string {
	if v.Kind == KindNumber {
		return FormatNumber(v.Number)
	}
	return v.Text
}

// FormatNumber formats f like JavaScript's String(f).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		// Go pads the exponent to two digits ("1e+07"); JavaScript does not.
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Row is one spreadsheet row, positionally aligned with Dataset.Columns.
type Row []Value

// Dataset is a decoded sheet: column labels plus rows.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the dataset has neither columns nor rows.
func (d Dataset) Empty() bool {
	return len(d.Columns) == 0 && len(d.Rows) == 0
}

// SortDirection is the sort state of the selected column.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// NoColumn marks a ViewState without a sort column.
const NoColumn = -1

// ViewState is the user-controlled part of the table view.
type ViewState struct {
	FilterText string
	SortColumn int
	Direction  SortDirection
}

// NewViewState returns the state of a freshly activated view.
func NewViewState() ViewState {
	return ViewState{SortColumn: NoColumn, Direction: SortNone}
}

// FetchStatus is the outcome of a fetch attempt.
type FetchStatus string

const (
	FetchOK     FetchStatus = "ok"
	FetchFailed FetchStatus = "failed"
)

// FetchRecord is one entry of the fetch journal.
type FetchRecord struct {
	ID        string
	URL       string
	StartedAt time.Time
	Duration  time.Duration
	Status    FetchStatus
	ErrorKind string
	Error     string
	Columns   int
	Rows      int
}
