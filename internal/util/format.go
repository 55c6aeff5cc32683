package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"sheetview/internal/model"
)

var (
	pricePattern     = regexp.MustCompile(`(?i)price`)
	spamScorePattern = regexp.MustCompile(`(?i)spam score`)

	// Longest numeric prefix accepted by JavaScript's parseFloat.
	floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
)

// FormatCell renders a cell for display under the given column label.
// Price columns show numbers as dollars, spam score columns show two decimals,
// everything else is shown as is.
func FormatCell(v model.Value, column string) string {
	if pricePattern.MatchString(column) && v.IsNumber() {
		return "$" + ToFixed(v.Number, 2)
	}
	if spamScorePattern.MatchString(column) {
		return ToFixed(ParseFloat(v.String()), 2)
	}
	return v.String()
}

// ParseFloat parses the leading number of s the way JavaScript's parseFloat
// does: leading whitespace is skipped, trailing garbage is ignored, and NaN is
// returned when s does not start with a number.
func ParseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	m := floatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	// ErrRange still yields ±Inf.
	f, _ := strconv.ParseFloat(m, 64)
	return f
}

// ToFixed formats x with the given number of decimals like JavaScript's
// Number.prototype.toFixed: exact ties round away from zero and magnitudes of
// 1e21 or more fall back to the plain number string.
func ToFixed(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= 1e21 {
		return model.FormatNumber(x)
	}

	if x == 0 {
		// Drop the sign of negative zero.
		x = 0
	}
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	exact := strconv.FormatFloat(x, 'f', 1074, 64)
	point := strings.IndexByte(exact, '.')
	if strings.TrimRight(exact[point+1+digits:], "0") != "5" {
		return sign + strconv.FormatFloat(x, 'f', digits, 64)
	}

	end := point + 1 + digits
	if digits == 0 {
		end = point
	}
	return sign + incrementDecimal(exact[:end])
}

// incrementDecimal adds one unit in the last place of a decimal string.
func incrementDecimal(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		switch {
		case b[i] == '.':
			continue
		case b[i] == '9':
			b[i] = '0'
		default:
			b[i]++
			return string(b)
		}
	}
	return "1" + string(b)
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
