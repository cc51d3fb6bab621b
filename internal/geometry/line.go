package geometry

import "github.com/kedarrpandya/foodbridge/internal/scale"

// LinePoints places one point per value inside the box.
//
// Point i sits at x = left + i*step and y = top + innerH - scale(v), where
// step = innerW/(N-1). A single value has step 0 and sits on the left edge.
func LinePoints(values []float64, box Box, y scale.Linear) []Point {
	step := scale.Step(box.InnerW(), len(values))
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{
			X: box.Left + float64(i)*step,
			Y: box.Top + box.InnerH() - y.Map(v),
		}
	}
	return points
}

// LinePath returns the polyline through points.
func LinePath(points []Point, style Style) Path {
	var b PathBuilder
	for i, p := range points {
		if i == 0 {
			b.MoveTo(p.X, p.Y)
		} else {
			b.LineTo(p.X, p.Y)
		}
	}
	return b.Path(style)
}

// AreaPath returns the polyline through points closed down to baseline and
// back to the first x.
func AreaPath(points []Point, baseline float64, style Style) Path {
	if len(points) == 0 {
		return Path{Style: style}
	}

	var b PathBuilder
	for i, p := range points {
		if i == 0 {
			b.MoveTo(p.X, p.Y)
		} else {
			b.LineTo(p.X, p.Y)
		}
	}
	b.LineTo(points[len(points)-1].X, baseline)
	b.LineTo(points[0].X, baseline)
	b.Close()
	return b.Path(style)
}
