package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integer", 42, "42"},
		{"fraction", 12.5, "12.5"},
		{"negative", -3.25, "-3.25"},
		{"small exponent", 1e-7, "1e-7"},
		{"negative small exponent", -2.5e-7, "-2.5e-7"},
		{"smallest plain decimal", 1e-6, "0.000001"},
		{"large exponent", 1e21, "1e+21"},
		{"largest plain integer", 123456789012345680000, "123456789012345680000"},
		{"negative large exponent", -1.5e300, "-1.5e+300"},
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"nan", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "example.com", Text("example.com").String())
	assert.Equal(t, "0.1", Number(0.1).String())
	assert.Equal(t, "1e+21", Number(1e21).String())
}
