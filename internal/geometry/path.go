package geometry

import (
	"math"
	"strconv"
	"strings"
)

// arcSegments is the number of polyline segments used per full turn when
// flattening arcs.
const arcSegments = 96

// PathBuilder accumulates SVG path data together with its flattened outline.
type PathBuilder struct {
	sb     strings.Builder
	points []Point
	closed bool
}

// MoveTo starts a new subpath at (x, y).
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.cmd("M", x, y)
	b.points = append(b.points, Point{x, y})
	return b
}

// LineTo draws a straight segment to (x, y).
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.cmd("L", x, y)
	b.points = append(b.points, Point{x, y})
	return b
}

// ArcTo sweeps clockwise along the circle centered on (cx, cy) from angle
// start by sweep radians. The current point must already be on the circle
// at angle start.
func (b *PathBuilder) ArcTo(cx, cy, r, start, sweep float64) *PathBuilder {
	end := start + sweep
	x1, y1 := polar(cx, cy, r, end)
	large := 0
	if sweep > math.Pi {
		large = 1
	}

	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteString("A ")
	b.sb.WriteString(Num(r))
	b.sb.WriteByte(' ')
	b.sb.WriteString(Num(r))
	b.sb.WriteString(" 0 ")
	b.sb.WriteString(strconv.Itoa(large))
	b.sb.WriteString(" 1 ")
	b.sb.WriteString(Num(x1))
	b.sb.WriteByte(' ')
	b.sb.WriteString(Num(y1))

	n := int(math.Ceil(sweep / (2 * math.Pi) * arcSegments))
	for i := 1; i <= n; i++ {
		x, y := polar(cx, cy, r, start+sweep*float64(i)/float64(n))
		b.points = append(b.points, Point{x, y})
	}
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteByte('Z')
	b.closed = true
	return b
}

// String returns the SVG path data.
func (b *PathBuilder) String() string {
	return b.sb.String()
}

// Path returns the accumulated outline as a primitive.
func (b *PathBuilder) Path(style Style) Path {
	return Path{
		D:      b.String(),
		Points: append([]Point(nil), b.points...),
		Closed: b.closed,
		Style:  style,
	}
}

func (b *PathBuilder) cmd(op string, x, y float64) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteString(op)
	b.sb.WriteByte(' ')
	b.sb.WriteString(Num(x))
	b.sb.WriteByte(',')
	b.sb.WriteString(Num(y))
}

// Num formats a coordinate with at most two decimals.
func Num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}
