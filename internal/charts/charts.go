// Package charts composes scales, geometry, interaction and animation into
// the dashboard's charts.
//
// Every chart is a pure function of its props, the interaction state it is
// given and an animation clock, returning a geometry.Frame. Rendering the
// frame is left to the render package.
package charts

import (
	"github.com/kedarrpandya/foodbridge/internal/geometry"
)

// Shared colors.
const (
	TrackColor   = "#f3f4f6"
	GridColor    = "#f1f5f9"
	AxisColor    = "#cbd5e1"
	CrossColor   = "#94a3b8"
	LabelColor   = "#6b7280"
	TextColor    = "#1f2937"
	TooltipColor = "#0f172a"
	OtherColor   = "#cbd5e1"
	White        = "#ffffff"
)

// CategoryPalette colors categorical charts in draw order.
var CategoryPalette = []string{"#60a5fa", "#34d399", "#f97316", "#a78bfa", "#f43f5e", "#10b981", "#fb7185"}

// ClaimPalette colors the claimed vs unclaimed donut.
var ClaimPalette = []string{"#16a34a", "#f59e0b"}

// NoData is the message shown by charts with nothing to draw.
const NoData = "No data"

// Series is one named line of a time chart. All series of a chart are
// indexed in parallel with its labels.
type Series struct {
	Name  string    `json:"name" yaml:"name"`
	Color string    `json:"color" yaml:"color"`
	Data  []float64 `json:"data" yaml:"data"`
}

// At returns sample i, or 0 when the series is too short.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s.Data) {
		return 0
	}
	return s.Data[i]
}

func emptyFrame(title string, width, height float64, message string) geometry.Frame {
	f := geometry.Frame{
		Title:   title,
		Width:   width,
		Height:  height,
		Empty:   true,
		Message: message,
	}
	f.Add(label(width/2, height/2, message, geometry.AnchorMiddle, 12, LabelColor))
	return f
}

func label(x, y float64, body string, anchor geometry.Anchor, size float64, color string) geometry.Text {
	return geometry.Text{
		X:      x,
		Y:      y,
		Body:   body,
		Anchor: anchor,
		Size:   size,
		Style:  geometry.Filled(color),
	}
}

func bold(t geometry.Text) geometry.Text {
	t.Bold = true
	return t
}

// short drops the year from an ISO date label.
func short(label string) string {
	if len(label) > 5 {
		return label[5:]
	}
	return label
}

func palette(p []string) []string {
	if len(p) == 0 {
		return CategoryPalette
	}
	return p
}
