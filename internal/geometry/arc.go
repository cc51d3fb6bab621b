package geometry

import "math"

// ArcPath returns a ring slice as an open arc path, to be stroked.
//
// A slice that covers the whole circle is emitted as two half arcs, since a
// single arc whose end point equals its start point draws nothing.
func ArcPath(cx, cy, r, start, sweep float64, style Style) Path {
	var b PathBuilder
	x0, y0 := polar(cx, cy, r, start)
	b.MoveTo(x0, y0)
	if sweep >= 2*math.Pi-1e-9 {
		b.ArcTo(cx, cy, r, start, math.Pi)
		b.ArcTo(cx, cy, r, start+math.Pi, math.Pi)
	} else if sweep > 0 {
		b.ArcTo(cx, cy, r, start, sweep)
	}

	p := b.Path(style)
	p.Arc = &Arc{CX: cx, CY: cy, R: r, Start: start, Sweep: sweep}
	return p
}
