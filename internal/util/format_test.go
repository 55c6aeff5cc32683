package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"sheetview/internal/model"
)

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name   string
		value  model.Value
		column string
		want   string
	}{
		{"price number", model.Number(12.5), "Price", "$12.50"},
		{"price label case", model.Number(3), "Domain PRICE (USD)", "$3.00"},
		{"price text untouched", model.Text("$5"), "Price", "$5"},
		{"spam score text", model.Text("7"), "Spam Score", "7.00"},
		{"spam score number", model.Number(0.125), "spam score", "0.13"},
		{"spam score garbage", model.Text("foo"), "Spam Score", "NaN"},
		{"spam score empty", model.Text(""), "Spam Score", "NaN"},
		{"spam score negative zero", model.Text("-0"), "Spam Score", "0.00"},
		{"price negative zero", model.Number(math.Copysign(0, -1)), "Price", "$0.00"},
		{"other text", model.Text("foo"), "Other", "foo"},
		{"other number", model.Number(1e21), "Other", "1e+21"},
		{"price wins over spam", model.Number(1), "Spam Score Price", "$1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(tt.value, tt.column))
		})
	}
}

func TestToFixed(t *testing.T) {
	tests := []struct {
		x      float64
		digits int
		want   string
	}{
		{12.5, 2, "12.50"},
		{1.005, 2, "1.00"},
		{1.45, 1, "1.4"},
		{0.125, 2, "0.13"},
		{2.5, 0, "3"},
		{0.5, 0, "1"},
		{9.5, 0, "10"},
		{99.5, 0, "100"},
		{-1.5, 0, "-2"},
		{-0.001, 2, "-0.00"},
		{math.Copysign(0, -1), 2, "0.00"},
		{math.Copysign(0, -1), 0, "0"},
		{1e21, 2, "1e+21"},
		{math.NaN(), 2, "NaN"},
		{math.Inf(-1), 2, "-Infinity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToFixed(tt.x, tt.digits), "ToFixed(%v, %d)", tt.x, tt.digits)
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"  12.5abc", 12.5},
		{".5", 0.5},
		{"+3", 3},
		{"1e5x", 100000},
		{"1e", 1},
		{"-Infinity", math.Inf(-1)},
		{"\uFEFF42", 42},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFloat(tt.in), "ParseFloat(%q)", tt.in)
	}

	assert.True(t, math.IsNaN(ParseFloat("abc")))
	assert.True(t, math.IsNaN(ParseFloat("")))
	assert.True(t, math.IsNaN(ParseFloat("$5")))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}
