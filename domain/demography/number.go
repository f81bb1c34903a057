package demography

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber reads a cell that may use "," as the decimal separator.
// "1,234" is 1.234, not 1234.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NumberOrZero is ParseNumber with unparseable cells counted as 0.
func NumberOrZero(s string) float64 {
	v, _ := ParseNumber(s)
	return v
}

// Round2 rounds to two decimal places, halves to even: 0.125 is 0.12.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// Percent returns 100*value/reference rounded to two decimals.
// A zero reference yields 0 so charts stay renderable.
func Percent(value, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	return Round2(100 * value / reference)
}
