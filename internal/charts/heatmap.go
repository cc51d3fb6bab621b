package charts

import (
	"fmt"
	"math"

	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/legend"
)

const (
	cellW   = 32
	cellH   = 28
	cellGap = 4

	heatLabelW  = 64
	heatHeaderH = 24
	heatLegendH = 40
)

// HeatLegend are the sample values of the retention intensity legend.
var HeatLegend = []float64{0, 0.25, 0.5, 0.75, 1}

// HeatmapProps configures the cohort retention heatmap.
type HeatmapProps struct {
	Title   string
	Labels  []string
	Offsets []int
	Matrix  [][]float64
}

// Columns returns the width of the widest row.
func (p HeatmapProps) Columns() int {
	cols := 0
	for _, row := range p.Matrix {
		cols = max(cols, len(row))
	}
	return cols
}

// Value returns the clamped retention of a cell. Missing cells are 0.
func (p HeatmapProps) Value(row, col int) float64 {
	if row < 0 || row >= len(p.Matrix) || col < 0 || col >= len(p.Matrix[row]) {
		return 0
	}
	v := p.Matrix[row][col]
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Cell returns the row and column of a row-major cell index.
func (p HeatmapProps) Cell(index int) (int, int) {
	cols := max(1, p.Columns())
	return index / cols, index % cols
}

// Has reports whether the row-major index names a cell present in its row.
func (p HeatmapProps) Has(index int) bool {
	if index < 0 {
		return false
	}
	row, col := p.Cell(index)
	return row < len(p.Matrix) && col < len(p.Matrix[row])
}

// Tooltip describes the cell at a row-major index.
func (p HeatmapProps) Tooltip(index int) string {
	row, col := p.Cell(index)
	return legend.CohortTooltip(row, col, p.Value(row, col))
}

func (p HeatmapProps) header(col int) string {
	if col < len(p.Offsets) {
		return fmt.Sprintf("+%dw", p.Offsets[col])
	}
	return fmt.Sprintf("+%dw", col)
}

// Heatmap draws the cohort matrix as a grid of cells colored by retention.
// Each row draws only the cells it has. Cells fade and grow in row-major order, and the hovered cell shows its
// tooltip above it.
func Heatmap(p HeatmapProps, m *interaction.Machine, clock animation.Clock) geometry.Frame {
	rows, cols := len(p.Matrix), p.Columns()
	if rows == 0 || cols == 0 {
		return emptyFrame(p.Title, 320, 80, "No cohort data")
	}

	gridH := float64(rows) * (cellH + cellGap)
	f := geometry.Frame{
		Title:  p.Title,
		Width:  math.Max(heatLabelW+float64(cols)*(cellW+cellGap), 320),
		Height: heatHeaderH + gridH + heatLegendH,
	}

	f.Add(bold(label(0, 14, "Cohort", geometry.AnchorStart, 11, "#374151")))
	for j := 0; j < cols; j++ {
		x := heatLabelW + float64(j)*(cellW+cellGap)
		f.Add(label(x+cellW/2, 14, p.header(j), geometry.AnchorMiddle, 10, "#4b5563"))
	}

	hovered, ok := m.HoverIndex()
	total := rows * cols
	for i := 0; i < rows; i++ {
		y := heatHeaderH + float64(i)*(cellH+cellGap)
		name := ""
		if i < len(p.Labels) {
			name = short(p.Labels[i])
		}
		f.Add(label(0, y+cellH/2+4, name, geometry.AnchorStart, 11, "#374151"))

		for j := range p.Matrix[i] {
			index := i*cols + j
			v := p.Value(i, j)
			x := heatLabelW + float64(j)*(cellW+cellGap)

			progress := clock.At(animation.Heatmap, index, total)
			s := animation.Interpolate(0.8, 1, progress)
			w, h := cellW*s, cellH*s

			style := geometry.Filled(geometry.HeatColor(v)).WithOpacity(progress)
			if ok && hovered == index {
				style.Stroke, style.StrokeWidth = TooltipColor, 2
			}
			f.Add(
				geometry.Rect{X: x + (cellW-w)/2, Y: y + (cellH-h)/2, W: w, H: h, RX: 6, Style: style},
				bold(label(x+cellW/2, y+cellH/2+3, fmt.Sprintf("%d%%", int(math.Round(v*100))), geometry.AnchorMiddle, 10, geometry.HeatTextColor(v))),
			)
			f.Regions = append(f.Regions, geometry.Region{
				Index: index, Label: p.Tooltip(index),
				X: x, Y: y, W: cellW, H: cellH,
			})
		}
	}

	ly := heatHeaderH + gridH + 12
	f.Add(label(0, ly+10, "Retention intensity:", geometry.AnchorStart, 11, LabelColor))
	for i, v := range HeatLegend {
		x := 130 + float64(i)*40
		swatch := geometry.Filled(geometry.HeatColor(v))
		swatch.Stroke, swatch.StrokeWidth = "#e5e7eb", 1
		f.Add(
			geometry.Rect{X: x, Y: ly, W: 14, H: 14, RX: 3, Style: swatch},
			label(x+18, ly+11, fmt.Sprintf("%d%%", int(math.Round(v*100))), geometry.AnchorStart, 10, LabelColor),
		)
	}

	if ok && p.Has(hovered) {
		row, col := p.Cell(hovered)
		addTip(&f, heatLabelW+float64(col)*(cellW+cellGap)+cellW/2, heatHeaderH+float64(row)*(cellH+cellGap), p.Tooltip(hovered))
	}
	return f
}

// addTip draws a dark single-line tooltip centered above (x, y), kept inside
// the frame horizontally.
func addTip(f *geometry.Frame, x, y float64, body string) {
	w := float64(len(body))*6 + 16
	left := math.Max(0, math.Min(x-w/2, f.Width-w))
	top := math.Max(0, y-30)
	f.Add(
		geometry.Rect{X: left, Y: top, W: w, H: 24, RX: 6, Style: geometry.Filled(TooltipColor).WithOpacity(0.9)},
		label(left+w/2, top+16, body, geometry.AnchorMiddle, 11, White),
	)
}
