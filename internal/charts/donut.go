package charts

import (
	"fmt"

	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/legend"
	"github.com/kedarrpandya/foodbridge/internal/scale"
)

const (
	donutSize   = 240
	donutCX     = 120
	donutCY     = 120
	donutR      = 70
	donutStroke = 24

	donutRing = "#f8fafc"

	// hoverDim is the opacity of the slices not under the pointer.
	hoverDim = 0.7
	// focusDim is the opacity of slices out of focus in linked charts.
	focusDim = 0.4

	legendX    = 260
	legendTop  = 40
	legendRowH = 32
	legendW    = 200
)

// OtherLabel names the slice that stands for truncated categories.
const OtherLabel = "Other"

// DonutProps configures a donut chart.
type DonutProps struct {
	Title   string
	Pairs   []legend.Pair
	Palette []string
	// TopN limits the drawn categories. Zero draws them all.
	TopN int
	// Ordered keeps Pairs in the given order instead of sorting them.
	Ordered bool
}

// Legend returns the legend of the donut, in slice order.
func (p DonutProps) Legend() legend.Legend {
	if p.Ordered {
		return legend.Ordered(p.Pairs, palette(p.Palette), p.TopN)
	}
	return legend.Compose(p.Pairs, palette(p.Palette), p.TopN)
}

// Slice is one arc of a donut.
type Slice struct {
	legend.Entry
	Span scale.Span
}

// Slices lays out the arcs of the donut. When categories were truncated, a
// final Other slice covers their share so the ring stays closed.
func (p DonutProps) Slices() []Slice {
	l := p.Legend()
	entries := l.Entries
	if l.Rest > 0 {
		entries = append(entries, legend.Entry{
			Label:   OtherLabel,
			Value:   l.Rest,
			Color:   OtherColor,
			Percent: legend.Percent(l.Rest, l.Total),
		})
	}

	spans := scale.NewAngular(l.Total).Spans(legend.Values(entryPairs(entries)))
	slices := make([]Slice, len(entries))
	for i, e := range entries {
		slices[i] = Slice{Entry: e, Span: spans[i]}
	}
	return slices
}

func entryPairs(entries []legend.Entry) []legend.Pair {
	return legend.Legend{Entries: entries}.Pairs()
}

// Donut draws a categorical share chart. The hovered slice is thickened and
// glows while the others are dimmed, and the center shows either the total
// or the hovered slice's label and share.
func Donut(p DonutProps, m *interaction.Machine, clock animation.Clock) geometry.Frame {
	l := p.Legend()
	if l.Total == 0 {
		return emptyDonut(p.Title, donutSize)
	}

	f := geometry.Frame{Title: p.Title, Width: donutSize, Height: donutSize}
	f.Add(geometry.Circle{CX: donutCX, CY: donutCY, R: donutR, Style: geometry.Stroked(donutRing, donutStroke)})

	slices := p.Slices()
	hovered, ok := m.HoverIndex()
	for i, s := range slices {
		e := interaction.HoverEmphasis(hovered, ok, i, hoverDim)
		f.Add(arc(s, e, clock.At(animation.Donut, i, len(slices))))
		f.Regions = append(f.Regions, sliceRegion(i, s))
	}

	f.Add(geometry.Circle{CX: donutCX, CY: donutCY, R: donutR - donutStroke/2 - 2, Style: geometry.Filled(White)})

	value, caption := scale.FormatValue(l.Total), "total"
	if ok && hovered >= 0 && hovered < len(slices) {
		s := slices[hovered]
		value = scale.FormatValue(s.Value)
		caption = fmt.Sprintf("%s (%d%%)", s.Label, s.Percent)
	}
	f.Add(
		bold(label(donutCX, donutCY-8, value, geometry.AnchorMiddle, 18, TextColor)),
		label(donutCX, donutCY+8, caption, geometry.AnchorMiddle, 11, LabelColor),
	)
	return f
}

// InteractiveDonut draws a donut linked to sibling charts through sel. A
// slice is highlighted when it is hovered here or when its label is the
// selection's effective label; everything else is dimmed while anything is
// in focus. A clickable legend is drawn to the right of the ring.
func InteractiveDonut(p DonutProps, m *interaction.Machine, sel *interaction.Selection, clock animation.Clock) geometry.Frame {
	width := float64(legendX + legendW)
	l := p.Legend()
	if l.Total == 0 {
		return emptyDonut(p.Title, width)
	}

	slices := p.Slices()
	height := max(donutSize, legendTop+float64(len(slices))*legendRowH+legendTop)
	f := geometry.Frame{Title: p.Title, Width: width, Height: height}
	f.Add(geometry.Circle{CX: donutCX, CY: donutCY, R: donutR, Style: geometry.Stroked(GridColor, donutStroke)})

	hovered, ok := m.HoverIndex()
	active := sel.Effective()
	anyFocus := ok || active != ""
	locked := sel.Locked()

	for i, s := range slices {
		highlighted := (ok && hovered == i) || active == s.Label
		e := interaction.FocusEmphasis(highlighted, anyFocus, focusDim)
		f.Add(arc(s, e, clock.At(animation.InteractiveDonut, i, len(slices))))
		f.Regions = append(f.Regions, sliceRegion(i, s))

		y := legendTop + float64(i)*legendRowH
		if highlighted {
			f.Add(geometry.Rect{X: legendX, Y: y, W: legendW, H: legendRowH - 4, RX: 8, Style: geometry.Filled("#f9fafb")})
		}
		name := label(legendX+28, y+18, s.Label, geometry.AnchorStart, 12, "#374151")
		if locked == s.Label {
			name = bold(name)
		}
		f.Add(
			geometry.Circle{CX: legendX + 14, CY: y + 14, R: 6, Style: geometry.Filled(s.Color)},
			name,
			label(legendX+legendW-8, y+18, s.Row(), geometry.AnchorEnd, 12, LabelColor),
		)
		f.Regions = append(f.Regions, geometry.Region{
			Index: i, Label: s.Label,
			X: legendX, Y: y, W: legendW, H: legendRowH - 4,
		})
	}

	f.Add(
		geometry.Circle{CX: donutCX, CY: donutCY, R: donutR - donutStroke/2 - 3, Style: geometry.Filled(White)},
		label(donutCX, donutCY+4, scale.FormatValue(l.Total)+" total", geometry.AnchorMiddle, 13, "#374151"),
	)
	return f
}

// ClaimDonut draws the claimed vs unclaimed share of all items.
func ClaimDonut(claimed, unclaimed float64, m *interaction.Machine, clock animation.Clock) geometry.Frame {
	return Donut(ClaimProps(claimed, unclaimed), m, clock)
}

// ClaimProps returns the props of the claimed vs unclaimed donut.
func ClaimProps(claimed, unclaimed float64) DonutProps {
	return DonutProps{
		Title:   "Claimed vs Unclaimed",
		Pairs:   []legend.Pair{{Label: "Claimed", Value: claimed}, {Label: "Unclaimed", Value: unclaimed}},
		Palette: ClaimPalette,
		Ordered: true,
	}
}

func arc(s Slice, e interaction.Emphasis, progress float64) geometry.Path {
	style := geometry.Stroked(s.Color, donutStroke+e.StrokeBoost).WithOpacity(e.Opacity).WithGlow(e.Glow)
	style.RoundCap = true
	return geometry.ArcPath(donutCX, donutCY, donutR, s.Span.Start, s.Span.Sweep()*progress, style)
}

func sliceRegion(i int, s Slice) geometry.Region {
	outer := float64(donutR + donutStroke/2)
	return geometry.Region{
		Index: i,
		Label: s.Label,
		X:     donutCX - outer,
		Y:     donutCY - outer,
		W:     2 * outer,
		H:     2 * outer,
		Ring: &geometry.Ring{
			CX: donutCX, CY: donutCY,
			Inner: donutR - donutStroke/2, Outer: outer,
			Start: s.Span.Start, Sweep: s.Span.Sweep(),
		},
	}
}

func emptyDonut(title string, width float64) geometry.Frame {
	f := geometry.Frame{Title: title, Width: width, Height: donutSize, Empty: true, Message: NoData}
	f.Add(
		geometry.Circle{CX: donutCX, CY: donutCY, R: donutR, Style: geometry.Stroked(donutRing, donutStroke)},
		label(donutCX, donutCY+4, NoData, geometry.AnchorMiddle, 12, LabelColor),
	)
	return f
}
