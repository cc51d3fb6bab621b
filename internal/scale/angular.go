package scale

import "math"

// Span is one arc of an angular layout. Angles are in radians, measured
// clockwise from 3 o'clock.
type Span struct {
	Start    float64
	End      float64
	Fraction float64
}

// Sweep returns the angular extent of the span.
func (s Span) Sweep() float64 {
	return s.End - s.Start
}

// LargeArc returns the SVG large-arc flag for the span.
func (s Span) LargeArc() int {
	if s.Sweep() > math.Pi {
		return 1
	}
	return 0
}

// Angular maps the domain [0, Total] onto [0, 2π].
type Angular struct {
	Total float64
}

// NewAngular returns an angular scale whose total is floored at 1.
func NewAngular(total float64) Angular {
	return Angular{Total: Floor(total)}
}

// Fraction returns the share of the total that v represents.
func (a Angular) Fraction(v float64) float64 {
	return Clean(v) / a.Total
}

// Spans lays out one arc per value in sequence, starting at angle 0 and
// proceeding clockwise with no gaps.
func (a Angular) Spans(values []float64) []Span {
	spans := make([]Span, 0, len(values))
	angle := 0.0
	for _, v := range values {
		frac := a.Fraction(v)
		end := angle + frac*2*math.Pi
		spans = append(spans, Span{Start: angle, End: end, Fraction: frac})
		angle = end
	}
	return spans
}
