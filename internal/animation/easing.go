package animation

import "math"

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return clamp01(t)
}

// EaseOutCubic provides smooth deceleration.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	t--
	return t*t*t + 1
}

// Standard is the cubic-bezier(0.4, 0, 0.2, 1) curve used for most
// entrance transitions.
var Standard = CubicBezier(0.4, 0, 0.2, 1)

// Smooth is the cubic-bezier(0.25, 0.1, 0.25, 1) curve used by the
// interactive donut and the comparison bars.
var Smooth = CubicBezier(0.25, 0.1, 0.25, 1)

// CubicBezier returns the easing described by a CSS cubic-bezier() timing
// function with control points (x1, y1) and (x2, y2).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	return func(x float64) float64 {
		x = clamp01(x)
		if x == 0 || x == 1 {
			return x
		}

		// Newton's method first, bisection if the slope is too flat.
		t := x
		for range 8 {
			dx := sampleX(t) - x
			if math.Abs(dx) < 1e-7 {
				return sampleY(t)
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}

		lo, hi := 0.0, 1.0
		t = x
		for range 64 {
			v := sampleX(t)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return sampleY(t)
	}
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
