package charts

import (
	"sort"

	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/legend"
	"github.com/kedarrpandya/foodbridge/internal/scale"
)

const (
	compareWidth   = 420
	compareBarH    = 20
	compareGap     = 12
	comparePadding = 80

	CreatedColor = "#3b82f6"
	ClaimedColor = "#10b981"

	claimedOpacity = 0.85
	// rowDim is the opacity of rows other than the selected one.
	rowDim = 0.3
)

// CompareProps configures the created vs claimed comparison chart.
type CompareProps struct {
	Title   string
	Created map[string]float64
	Claimed map[string]float64
	// Width defaults to 420.
	Width float64
}

// CompareRow is one category of the comparison.
type CompareRow struct {
	Label   string  `json:"label" yaml:"label"`
	Created float64 `json:"created" yaml:"created"`
	Claimed float64 `json:"claimed" yaml:"claimed"`
}

// Rows returns the sorted union of both maps' categories. A category missing
// from one map counts as 0 there.
func (p CompareProps) Rows() []CompareRow {
	seen := map[string]bool{}
	var labels []string
	for _, m := range []map[string]float64{p.Created, p.Claimed} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				labels = append(labels, k)
			}
		}
	}
	sort.Strings(labels)

	rows := make([]CompareRow, len(labels))
	for i, k := range labels {
		rows[i] = CompareRow{Label: k, Created: p.Created[k], Claimed: p.Claimed[k]}
	}
	return rows
}

// Compare draws a created and a claimed bar per category on one shared
// scale. Rows are highlighted by hover or by sel, and while sel has an
// effective label every other row is dimmed.
func Compare(p CompareProps, m *interaction.Machine, sel *interaction.Selection, clock animation.Clock) geometry.Frame {
	width := p.Width
	if width <= 0 {
		width = compareWidth
	}

	rows := p.Rows()
	if len(rows) == 0 {
		return emptyFrame(p.Title, width, 80, NoData)
	}

	track := width - comparePadding - 20
	values := make([]float64, 0, 2*len(rows))
	for _, r := range rows {
		values = append(values, r.Created, r.Claimed)
	}
	shared := scale.MaxOf(values)

	f := geometry.Frame{
		Title:  p.Title,
		Width:  width,
		Height: float64(len(rows))*(compareBarH+compareGap) + 40,
	}

	hovered, ok := m.HoverIndex()
	selected := sel.Effective()

	for i, r := range rows {
		y := float64(i) * (compareBarH + compareGap)
		w1 := geometry.BarWidth(r.Created, shared, track)
		w2 := geometry.BarWidth(r.Claimed, shared, track)
		isSelected := selected == r.Label
		highlighted := isSelected || (ok && hovered == i)

		name := label(comparePadding-12, y+compareBarH/2+4, r.Label, geometry.AnchorEnd, 12, "#4b5563")
		if highlighted {
			name = bold(name)
		}

		trackStyle := geometry.Filled("#f8fafc")
		trackStyle.Stroke, trackStyle.StrokeWidth = "#e2e8f0", 1

		created := geometry.Filled(CreatedColor).
			WithOpacity(interaction.SelectionOpacity(selected, r.Label, 1, rowDim)).
			WithGlow(highlighted)
		claimed := geometry.Filled(ClaimedColor).
			WithOpacity(interaction.SelectionOpacity(selected, r.Label, claimedOpacity, rowDim)).
			WithGlow(highlighted)

		f.Add(
			name,
			geometry.Rect{X: comparePadding, Y: y, W: track, H: compareBarH, RX: 6, Style: trackStyle},
			geometry.Rect{
				X: comparePadding, Y: y + 1, H: compareBarH - 2, RX: 5, Style: created,
				W: w1 * clock.At(animation.CompareCreated, i, len(rows)),
			},
			geometry.Rect{
				X: comparePadding, Y: y + 1, H: compareBarH - 2, RX: 5, Style: claimed,
				W: w2 * clock.At(animation.CompareClaimed, i, len(rows)),
			},
			label(comparePadding+max(w1, w2)+8, y+compareBarH/2+4, legend.CompareRow(r.Created, r.Claimed), geometry.AnchorStart, 11, LabelColor),
		)
		f.Regions = append(f.Regions, geometry.Region{
			Index: i, Label: r.Label,
			X: 0, Y: y, W: width, H: compareBarH,
		})
	}

	ly := float64(len(rows))*(compareBarH+compareGap) + 15
	f.Add(
		geometry.Rect{X: comparePadding, Y: ly, W: 12, H: 12, RX: 3, Style: geometry.Filled(CreatedColor)},
		label(comparePadding+18, ly+9, "Created", geometry.AnchorStart, 12, "#374151"),
		geometry.Rect{X: comparePadding + 90, Y: ly, W: 12, H: 12, RX: 3, Style: geometry.Filled(ClaimedColor)},
		label(comparePadding+108, ly+9, "Claimed", geometry.AnchorStart, 12, "#374151"),
	)
	return f
}
