package scale

import (
	"math"
	"strconv"
	"strings"
)

// Ticks returns n+1 evenly spaced, rounded tick values from 0 to max.
func Ticks(max float64, n int) []float64 {
	if n <= 0 {
		return []float64{0}
	}
	max = Floor(max)
	ticks := make([]float64, n+1)
	for i := range ticks {
		ticks[i] = math.Round(max / float64(n) * float64(i))
	}
	return ticks
}

// AtFractions returns the rounded axis values found at the given fractions
// of a top-down axis, so fraction 0 is the maximum and 1 is zero.
func AtFractions(max float64, fractions []float64) []float64 {
	max = Floor(max)
	values := make([]float64, len(fractions))
	for i, f := range fractions {
		values[i] = math.Round(max * (1 - f))
	}
	return values
}

// NiceTicks returns ticks from 0 to at least max using a step of 1, 2 or 5
// times a power of ten, aiming for roughly target ticks.
func NiceTicks(max float64, target int) []float64 {
	max = Floor(max)
	if target < 2 {
		target = 2
	}

	rawStep := max / float64(target-1)
	magnitude := math.Pow(10, math.Floor(math.Log10(rawStep)))

	var step float64
	switch normalized := rawStep / magnitude; {
	case normalized <= 1:
		step = magnitude
	case normalized <= 2:
		step = 2 * magnitude
	case normalized <= 5:
		step = 5 * magnitude
	default:
		step = 10 * magnitude
	}

	var ticks []float64
	for tick := 0.0; tick <= max+step/2; tick += step {
		ticks = append(ticks, tick)
	}
	return ticks
}

// FormatValue formats an axis or tooltip value compactly.
func FormatValue(value float64) string {
	switch {
	case value == 0:
		return "0"
	case math.Abs(value) >= 1000000:
		return formatFloat(value/1000000, 1) + "M"
	case math.Abs(value) >= 1000:
		return formatFloat(value/1000, 1) + "k"
	case math.Abs(value) < 1:
		return formatFloat(value, 2)
	case math.Abs(value) < 10:
		return formatFloat(value, 1)
	}
	return formatFloat(value, 0)
}

// formatFloat formats a float with at most the given decimals.
func formatFloat(value float64, decimals int) string {
	formatted := strconv.FormatFloat(value, 'f', decimals, 64)

	if decimals > 0 && strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}

	if formatted == "" || formatted == "-0" {
		formatted = "0"
	}

	return formatted
}
