package geometry

import "github.com/kedarrpandya/foodbridge/internal/scale"

// BarWidth returns the length of a horizontal bar for v on a track of the
// given length, scaled against the shared maximum of every compared series.
func BarWidth(v, sharedMax, track float64) float64 {
	return scale.NewLinear(sharedMax, track).Map(v)
}

// VerticalBar is the layout of one column of a vertical bar chart.
type VerticalBar struct {
	X, Y, W, H float64
	// Center is the x coordinate of the middle of the bar.
	Center float64
}

// VerticalBars lays out one column per value across the box. Each column
// occupies a slot of innerW/N and the bar fills the middle 70% of it.
func VerticalBars(values []float64, box Box) []VerticalBar {
	if len(values) == 0 {
		return nil
	}

	slot := box.InnerW() / float64(len(values))
	y := scale.NewLinear(scale.MaxOf(values), box.InnerH())

	bars := make([]VerticalBar, len(values))
	for i, v := range values {
		h := y.Map(v)
		x := box.Left + float64(i)*slot + slot*0.15
		bars[i] = VerticalBar{
			X:      x,
			Y:      box.Baseline() - h,
			W:      slot * 0.7,
			H:      h,
			Center: x + slot*0.35,
		}
	}
	return bars
}
