package charts

import (
	"math"
	"time"

	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/legend"
	"github.com/kedarrpandya/foodbridge/internal/scale"
)

const (
	areaWidth  = 900
	areaHeight = 320

	gridLines = 5

	tooltipW = 140
)

// Series colors of the historical and forecast charts.
const (
	HistoryCreated  = "#2563eb"
	HistoryClaimed  = "#16a34a"
	ForecastCreated = "#93c5fd"
	ForecastClaimed = "#86efac"
)

// AreaProps configures a multi-series area chart over a shared time axis.
type AreaProps struct {
	Title  string
	Labels []string
	Series []Series
	// Width and Height default to 900 and 320.
	Width  float64
	Height float64
}

// Box returns the canvas and padding of the chart.
func (p AreaProps) Box() geometry.Box {
	w, h := p.Width, p.Height
	if w <= 0 {
		w = areaWidth
	}
	if h <= 0 {
		h = areaHeight
	}
	return geometry.Box{Width: w, Height: h, Top: 30, Right: 30, Bottom: 40, Left: 50}
}

// Samples is the number of points drawn per series.
func (p AreaProps) Samples() int {
	return len(p.Labels)
}

// Indexable is the number of indices the crosshair can rest on: the shortest
// common length of the labels and every series.
func (p AreaProps) Indexable() int {
	n := len(p.Labels)
	for _, s := range p.Series {
		n = min(n, len(s.Data))
	}
	return n
}

// Clamp maps an arbitrary crosshair index onto a valid one.
func (p AreaProps) Clamp(i int) int {
	return max(0, min(p.Indexable()-1, i))
}

// Tooltip returns the crosshair tooltip at index i.
func (p AreaProps) Tooltip(i int) legend.SeriesTooltip {
	i = p.Clamp(i)
	t := legend.SeriesTooltip{Index: i}
	if i < len(p.Labels) {
		t.Label = p.Labels[i]
	}
	for _, s := range p.Series {
		t.Values = append(t.Values, legend.SeriesValue{Name: s.Name, Color: s.Color, Value: s.At(i)})
	}
	return t
}

// IndexAt maps a pointer x coordinate to the nearest crosshair index.
func (p AreaProps) IndexAt(x float64) int {
	return p.Clamp(interaction.IndexAt(x, p.Box(), p.Samples()))
}

// AreaLine draws each series as a line over a translucent area, with a
// dashed crosshair and tooltip at the hovered index. With external
// ownership the hovered index is the shared crosshair's, so every chart on
// the same crosshair highlights the same sample.
func AreaLine(p AreaProps, m *interaction.Machine, clock animation.Clock) geometry.Frame {
	box := p.Box()
	n := p.Samples()
	if n == 0 || p.Indexable() == 0 {
		return emptyFrame(p.Title, box.Width, box.Height, NoData)
	}

	series := make([][]float64, len(p.Series))
	for i, s := range p.Series {
		values := make([]float64, n)
		for j := range values {
			values[j] = s.At(j)
		}
		series[i] = values
	}

	maxY := scale.MaxOf(series...)
	y := scale.NewLinear(maxY, box.InnerH())
	step := scale.Step(box.InnerW(), n)
	f := geometry.Frame{Title: p.Title, Width: box.Width, Height: box.Height}

	for i, tick := range scale.Ticks(maxY, gridLines) {
		ty := box.Baseline() - y.Map(tick)
		width := 1.0
		if i == 0 {
			width = 1.5
		}
		f.Add(
			geometry.Line{X1: box.Left, Y1: ty, X2: box.Left + box.InnerW(), Y2: ty, Style: geometry.Stroked(GridColor, width)},
			label(box.Left-8, ty+4, scale.FormatValue(tick), geometry.AnchorEnd, 11, "#9ca3af"),
		)
	}
	f.Add(
		geometry.Line{X1: box.Left, Y1: box.Baseline(), X2: box.Left + box.InnerW(), Y2: box.Baseline(), Style: geometry.Stroked(AxisColor, 1.5)},
		geometry.Line{X1: box.Left, Y1: box.Top, X2: box.Left, Y2: box.Baseline(), Style: geometry.Stroked(AxisColor, 1.5)},
	)

	hovered, ok := m.HoverIndex()
	if ok {
		hovered = p.Clamp(hovered)
	}

	for si, values := range series {
		color := p.Series[si].Color
		points := geometry.LinePoints(values, box, y)
		shown := clock.At(animation.AreaSeries, si, len(series))

		line := geometry.Stroked(color, 3).WithOpacity(shown)
		line.RoundCap = true
		f.Add(
			geometry.AreaPath(points, box.Baseline(), geometry.Filled(color).WithOpacity(0.2*shown)),
			geometry.LinePath(points, line),
		)

		for i, pt := range points {
			slot := animation.AreaPoints.Schedule(i, n)
			slot.Delay += time.Duration(si) * 100 * time.Millisecond

			r, w := 4.0, 2.0
			if ok && hovered == i {
				r, w = 6, 3
			}
			style := geometry.Stroked(color, w).WithOpacity(clock.Progress(slot)).WithGlow(ok && hovered == i)
			style.Fill = White
			f.Add(geometry.Circle{CX: pt.X, CY: pt.Y, R: r, Style: style})
		}
	}

	for i, l := range p.Labels {
		f.Add(label(box.Left+float64(i)*step, box.Baseline()+20, short(l), geometry.AnchorMiddle, 11, LabelColor))
	}

	if ok {
		x := box.Left + float64(hovered)*step
		cross := geometry.Stroked(CrossColor, 1).WithOpacity(0.8)
		cross.Dash = []float64{6, 4}
		f.Add(geometry.Line{X1: x, Y1: box.Top, X2: x, Y2: box.Baseline(), Style: cross})
		addSeriesTooltip(&f, p.Tooltip(hovered), math.Min(x+12, box.Left+box.InnerW()-150), box.Top+12)
	}

	f.Regions = append(f.Regions, geometry.Region{
		Label: p.Title,
		X:     box.Left, Y: box.Top, W: box.InnerW(), H: box.InnerH(),
		Count: p.Indexable(),
		Step:  step,
	})
	return f
}

func addSeriesTooltip(f *geometry.Frame, t legend.SeriesTooltip, x, y float64) {
	box := geometry.Filled(TooltipColor).WithOpacity(0.95)
	box.Stroke, box.StrokeWidth = CrossColor, 1
	f.Add(
		geometry.Rect{X: x, Y: y, W: tooltipW, H: float64(20 + 16*len(t.Values)), RX: 8, Style: box},
		bold(label(x+12, y+16, t.Label, geometry.AnchorStart, 12, White)),
	)

	lines := t.Lines()[1:]
	for i, v := range t.Values {
		ry := y + 32 + float64(i)*16
		f.Add(
			geometry.Circle{CX: x + 16, CY: ry - 2, R: 3, Style: geometry.Filled(v.Color)},
			label(x+24, ry+2, lines[i], geometry.AnchorStart, 11, White),
		)
	}
}
