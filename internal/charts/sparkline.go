package charts

import (
	"fmt"
	"math"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/legend"
	"github.com/kedarrpandya/foodbridge/internal/scale"
)

const (
	sparkW   = 160
	sparkH   = 40
	sparkPad = 6
)

// KPI is a headline number with its recent trend.
type KPI struct {
	Label  string    `json:"label" yaml:"label"`
	Value  float64   `json:"value" yaml:"value"`
	Suffix string    `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Color  string    `json:"color" yaml:"color"`
	Spark  []float64 `json:"spark" yaml:"spark"`
}

// Delta describes the change between the last two trend samples. It is
// empty when the trend has fewer than two samples.
func (k KPI) Delta() string {
	if len(k.Spark) < 2 {
		return ""
	}
	return legend.Delta(k.Spark[len(k.Spark)-1], k.Spark[len(k.Spark)-2])
}

// Display returns the value shown after clock has counted up to it.
func (k KPI) Display(clock animation.Clock) string {
	p := clock.At(animation.Sparkline, 0, 1)
	return fmt.Sprintf("%s%s", scale.FormatValue(math.Round(k.Value*p)), k.Suffix)
}

// KPIs derives the four headline metrics from the summary and the daily
// series: total, claimed, unclaimed and claim rate.
func KPIs(s *analytics.Summary, t *analytics.TimeSeries) []KPI {
	if s == nil {
		s = &analytics.Summary{}
	}
	var created, claimed []float64
	if t != nil {
		n := t.Len()
		created, claimed = t.Created[:n], t.Claimed[:n]
	}
	return []KPI{
		{Label: "Total Items", Value: float64(s.TotalItems), Color: "#6b7280", Spark: created},
		{Label: "Claimed", Value: float64(s.TotalClaimed), Color: "#16a34a", Spark: claimed},
		{Label: "Unclaimed", Value: float64(s.TotalUnclaimed), Color: "#f59e0b", Spark: analytics.UnclaimedSeries(t)},
		{Label: "Claim Rate", Value: math.Round(s.ClaimRate * 100), Suffix: "%", Color: "#3b82f6", Spark: analytics.ClaimRateSeries(t)},
	}
}

// Sparkline draws the trend of a KPI as a small line that draws itself in.
func Sparkline(k KPI, clock animation.Clock) geometry.Frame {
	f := geometry.Frame{Title: k.Label, Width: sparkW, Height: sparkH}
	if len(k.Spark) == 0 {
		f.Empty = true
		return f
	}
	f.Add(sparkPath(k, 0, 0, clock))
	return f
}

// sparkPath draws the trend with its top left corner at (x, y).
func sparkPath(k KPI, x, y float64, clock animation.Clock) geometry.Path {
	box := geometry.Box{
		Width: x + sparkW, Height: y + sparkH,
		Top: y + sparkPad, Right: sparkPad, Bottom: sparkPad, Left: x + sparkPad,
	}
	points := geometry.LinePoints(k.Spark, box, scale.NewLinear(scale.MaxOf(k.Spark), box.InnerH()))
	shown := reveal(points, clock.At(animation.Sparkline, 0, 1))
	return geometry.LinePath(shown, geometry.Stroked(k.Color, 2).WithOpacity(0.9))
}

const (
	cardW   = 184
	cardH   = 120
	cardGap = 12
)

// KPICards lays the KPIs out as a row of cards, each with an accent bar,
// its counted-up value, the sparkline and the delta against the previous
// sample.
func KPICards(kpis []KPI, clock animation.Clock) geometry.Frame {
	f := geometry.Frame{
		Title:  "KPIs",
		Width:  float64(len(kpis))*(cardW+cardGap) - cardGap,
		Height: cardH,
	}
	if len(kpis) == 0 {
		f.Empty = true
		return f
	}

	for i, k := range kpis {
		x := float64(i) * (cardW + cardGap)
		border := geometry.Filled(White)
		border.Stroke, border.StrokeWidth = "#e5e7eb", 1
		f.Add(
			geometry.Rect{X: x, Y: 0, W: cardW, H: cardH, RX: 8, Style: border},
			geometry.Rect{X: x + 12, Y: 8, W: cardW - 24, H: 4, RX: 2, Style: geometry.Filled(k.Color)},
			bold(label(x+12, 38, k.Display(clock), geometry.AnchorStart, 20, k.Color)),
			label(x+12, 54, k.Label, geometry.AnchorStart, 11, LabelColor),
		)
		if len(k.Spark) > 0 {
			f.Add(sparkPath(k, x+12, 58, clock))
		}
		if d := k.Delta(); d != "" {
			f.Add(label(x+12, cardH-6, d, geometry.AnchorStart, 10, deltaColor(k)))
		}
		f.Regions = append(f.Regions, geometry.Region{Index: i, Label: k.Label, X: x, Y: 0, W: cardW, H: cardH})
	}
	return f
}

func deltaColor(k KPI) string {
	last, prev := k.Spark[len(k.Spark)-1], k.Spark[len(k.Spark)-2]
	switch {
	case last > prev:
		return "#15803d"
	case last < prev:
		return "#b91c1c"
	}
	return "#4b5563"
}

// reveal returns the leading part of a polyline covering fraction p of
// its length.
func reveal(points []geometry.Point, p float64) []geometry.Point {
	if p >= 1 || len(points) < 2 {
		return points
	}
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
	}
	want := total * math.Max(0, p)

	out := []geometry.Point{points[0]}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if seg >= want {
			t := 0.0
			if seg > 0 {
				t = want / seg
			}
			return append(out, geometry.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
		}
		want -= seg
		out = append(out, b)
	}
	return out
}
