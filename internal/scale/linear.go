// Package scale maps data domains onto pixel ranges.
package scale

import "math"

// Linear maps the domain [0, Max] onto the pixel range [0, Length].
type Linear struct {
	Max    float64
	Length float64
}

// NewLinear returns a linear scale over [0, max], with max floored at 1.
func NewLinear(max, length float64) Linear {
	return Linear{Max: Floor(max), Length: length}
}

// Map returns the pixel offset of v.
func (l Linear) Map(v float64) float64 {
	return Clean(v) / l.Max * l.Length
}

// Invert maps a pixel offset back into the domain.
func (l Linear) Invert(px float64) float64 {
	if l.Length == 0 {
		return 0
	}
	return px / l.Length * l.Max
}

// Floor returns v when it is a finite value of at least 1, and 1 otherwise.
// Every data-derived denominator goes through it.
func Floor(v float64) float64 {
	if !isFinite(v) || v < 1 {
		return 1
	}
	return v
}

// Clean drops values a chart cannot draw: NaN, infinities and negatives
// become zero.
func Clean(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}

// MaxOf returns the greatest value across all series, floored at 1.
func MaxOf(series ...[]float64) float64 {
	max := 0.0
	for _, values := range series {
		for _, v := range values {
			if v = Clean(v); v > max {
				max = v
			}
		}
	}
	return Floor(max)
}

// Sum adds up the drawable values of a series.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += Clean(v)
	}
	return total
}

// Step returns the horizontal distance between count evenly spaced samples
// spread across length. A single sample (or none) has step 0.
func Step(length float64, count int) float64 {
	if count <= 1 {
		return 0
	}
	return length / float64(count-1)
}

// ClampIndex converts an offset along an axis to the nearest sample index,
// clamped to [0, n-1].
func ClampIndex(x, step float64, n int) int {
	if n <= 1 || step <= 0 || math.IsNaN(x) {
		return 0
	}
	i := int(math.Round(x / step))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
