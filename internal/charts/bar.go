package charts

import (
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/legend"
	"github.com/kedarrpandya/foodbridge/internal/scale"
)

// BarProps configures a plain horizontal category bar chart.
type BarProps struct {
	Title string
	Pairs []legend.Pair
	Color string
	TopN  int
}

// Box returns the canvas and padding of the chart.
func (p BarProps) Box() geometry.Box {
	return geometry.Box{Width: 360, Height: 240, Top: 10, Right: 10, Bottom: 22, Left: 80}
}

// CategoryBar draws one bar per category over a light track, sorted by
// value and scaled to the largest one.
func CategoryBar(p BarProps, m *interaction.Machine, clock animation.Clock) geometry.Frame {
	box := p.Box()
	pairs := legend.TopN(legend.SortDescending(p.Pairs), p.TopN)
	if len(pairs) == 0 {
		return emptyFrame(p.Title, box.Width, box.Height, NoData)
	}

	color := p.Color
	if color == "" {
		color = CategoryPalette[0]
	}

	n := len(pairs)
	barH := min(28, box.InnerH()/float64(n)-6)
	if barH < 1 {
		barH = 1
	}
	x := scale.NewLinear(scale.MaxOf(legend.Values(pairs)), box.InnerW())
	hovered, ok := m.HoverIndex()

	f := geometry.Frame{Title: p.Title, Width: box.Width, Height: box.Height}
	for i, pair := range pairs {
		y := box.Top + float64(i)*(barH+6)
		w := x.Map(pair.Value)
		e := interaction.HoverEmphasis(hovered, ok, i, hoverDim)

		f.Add(
			label(box.Left-8, y+barH/2+3, pair.Label, geometry.AnchorEnd, 10, LabelColor),
			geometry.Rect{X: box.Left, Y: y, W: box.InnerW(), H: barH, RX: 4, Style: geometry.Filled(TrackColor)},
			geometry.Rect{
				X: box.Left, Y: y, H: barH, RX: 4,
				W:     w * clock.At(animation.Bar, i, n),
				Style: geometry.Filled(color).WithOpacity(e.Opacity).WithGlow(e.Glow),
			},
			label(box.Left+w+6, y+barH/2+3, scale.FormatValue(pair.Value), geometry.AnchorStart, 10, "#4b5563"),
		)
		f.Regions = append(f.Regions, geometry.Region{
			Index: i, Label: pair.Label,
			X: box.Left, Y: y, W: box.InnerW(), H: barH,
		})
	}
	return f
}
