package charts

import (
	"fmt"
	"strings"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/legend"
	"github.com/kedarrpandya/foodbridge/internal/scale"
)

const (
	predictionWidth  = 450
	predictionHeight = 240

	PredictedColor  = "#10b981"
	HistoricalColor = "#3b82f6"

	// barDim is the opacity of bars other than the hovered one.
	barDim = 0.6
)

var (
	predictionGrid   = []float64{0, 0.25, 0.5, 0.75, 1}
	predictionLabels = []float64{0, 0.5, 1}
)

// Granularity is the time bucket of a prediction chart.
type Granularity int

const (
	Hourly Granularity = iota
	Daily
)

func (g Granularity) String() string {
	if g == Daily {
		return "daily"
	}
	return "hourly"
}

// Bucket is one bar of a prediction chart. Label is the axis text and Name
// the full name used in captions.
type Bucket struct {
	Label string  `json:"label" yaml:"label"`
	Name  string  `json:"name,omitempty" yaml:"name,omitempty"`
	Count float64 `json:"count" yaml:"count"`
}

// PredictionProps configures a prediction bar chart. Peaks are indices of
// Buckets marked as predicted peaks.
type PredictionProps struct {
	Title   string
	Kind    Granularity
	Buckets []Bucket
	Peaks   []int
}

// HourlyPrediction builds the props of the hourly activity chart, marking
// the predicted best hours.
func HourlyPrediction(p *analytics.Predictions) PredictionProps {
	props := PredictionProps{Title: "Hourly Activity Patterns", Kind: Hourly}
	if p == nil {
		return props
	}
	for _, h := range p.HourlyPatterns {
		props.Buckets = append(props.Buckets, Bucket{Label: fmt.Sprintf("%dh", h.Hour), Name: fmt.Sprintf("%d:00", h.Hour), Count: h.Count})
	}
	props.Peaks = analytics.PredictedHours(p.HourlyPatterns, p.Predictions.BestDonationHours)
	return props
}

// DailyPrediction builds the props of the daily activity chart, marking the
// predicted best days.
func DailyPrediction(p *analytics.Predictions) PredictionProps {
	props := PredictionProps{Title: "Daily Activity Patterns", Kind: Daily}
	if p == nil {
		return props
	}
	for _, d := range p.DailyPatterns {
		props.Buckets = append(props.Buckets, Bucket{Label: dayAbbrev(d.Day), Name: d.Day, Count: d.Count})
	}
	props.Peaks = analytics.PredictedDays(p.DailyPatterns, p.Predictions.BestDonationDays)
	return props
}

func dayAbbrev(day string) string {
	if len(day) > 3 {
		return day[:3]
	}
	return day
}

// IsPeak reports whether bucket i is a predicted peak.
func (p PredictionProps) IsPeak(i int) bool {
	for _, k := range p.Peaks {
		if k == i {
			return true
		}
	}
	return false
}

// Box returns the canvas and padding of the chart.
func (p PredictionProps) Box() geometry.Box {
	return geometry.Box{Width: predictionWidth, Height: predictionHeight, Top: 30, Right: 30, Bottom: 50, Left: 50}
}

// Prediction draws activity counts as vertical bars and marks predicted peaks
// with a PEAK label that appears after the bars have grown. Hover dims the
// other bars; the machine's selection is the label of a sticky selected bar,
// independent of peak marking.
func Prediction(p PredictionProps, m *interaction.Machine, clock animation.Clock) geometry.Frame {
	box := p.Box()
	if len(p.Buckets) == 0 {
		return emptyFrame(p.Title, box.Width, box.Height, NoData)
	}

	counts := make([]float64, len(p.Buckets))
	for i, b := range p.Buckets {
		counts[i] = b.Count
	}
	maxCount := scale.MaxOf(counts)
	bars := geometry.VerticalBars(counts, box)
	n := len(bars)

	f := geometry.Frame{Title: p.Title, Width: box.Width, Height: box.Height}
	for _, g := range predictionGrid {
		gy := box.Top + box.InnerH()*g
		f.Add(geometry.Line{X1: box.Left, Y1: gy, X2: box.Left + box.InnerW(), Y2: gy, Style: geometry.Stroked(GridColor, 1)})
	}
	for i, v := range scale.AtFractions(maxCount, predictionLabels) {
		gy := box.Top + box.InnerH()*predictionLabels[i]
		f.Add(label(box.Left-8, gy+4, scale.FormatValue(v), geometry.AnchorEnd, 10, "#9ca3af"))
	}

	hovered, ok := m.HoverIndex()
	selected := m.Selection()

	for i, bar := range bars {
		b := p.Buckets[i]
		isHovered := ok && hovered == i
		isSelected := selected != "" && selected == b.Label

		opacity := 1.0
		if !isSelected && ok && !isHovered {
			opacity = barDim
		}
		color := HistoricalColor
		if p.IsPeak(i) {
			color = PredictedColor
		}

		h := bar.H * clock.At(animation.Prediction, i, n)
		f.Add(geometry.Rect{
			X: bar.X, Y: box.Baseline() - h, W: bar.W, H: h, RX: 6,
			Style: geometry.Filled(color).WithOpacity(opacity).WithGlow(isHovered || isSelected),
		})

		if p.IsPeak(i) {
			marker := geometry.Stroked(White, 2).WithOpacity(clock.At(animation.PeakMarker, i, n))
			marker.Fill = PredictedColor
			f.Add(
				geometry.Circle{CX: bar.Center, CY: bar.Y - 12, R: 4, Style: marker},
				bold(geometry.Text{
					X: bar.Center, Y: bar.Y - 20, Body: "PEAK", Anchor: geometry.AnchorMiddle, Size: 8,
					Style: geometry.Filled("#15803d").WithOpacity(clock.At(animation.PeakLabel, i, n)),
				}),
			)
		}

		axisColor := "#4b5563"
		if isSelected {
			axisColor = "#1d4ed8"
		}
		f.Add(label(bar.Center, box.Baseline()+20, b.Label, geometry.AnchorMiddle, 11, axisColor))
		if isHovered || isSelected {
			f.Add(bold(label(bar.Center, bar.Y-4, scale.FormatValue(b.Count), geometry.AnchorMiddle, 11, TextColor)))
		}

		slot := box.InnerW() / float64(n)
		f.Regions = append(f.Regions, geometry.Region{
			Index: i, Label: b.Label,
			X: box.Left + float64(i)*slot, Y: box.Top, W: slot, H: box.InnerH(),
		})
	}

	if ok && hovered >= 0 && hovered < n {
		x := bars[hovered].X
		f.Add(
			geometry.Rect{X: x - 30, Y: box.Top - 15, W: 60, H: 25, RX: 4, Style: geometry.Filled("#000000").WithOpacity(0.8)},
			label(x, box.Top-3, legend.PredictionTooltip(p.Buckets[hovered].Count), geometry.AnchorMiddle, 10, White),
		)
	}

	f.Add(
		geometry.Line{X1: box.Left, Y1: box.Baseline(), X2: box.Left + box.InnerW(), Y2: box.Baseline(), Style: geometry.Stroked(AxisColor, 2)},
		geometry.Line{X1: box.Left, Y1: box.Top, X2: box.Left, Y2: box.Baseline(), Style: geometry.Stroked(AxisColor, 2)},
	)
	return f
}

// PredictionCaption describes the selected bar, or "" when none is. The
// selection may name the bar by its axis label or its full name.
func PredictionCaption(p PredictionProps, selected string) string {
	if selected == "" {
		return ""
	}
	for _, b := range p.Buckets {
		if b.Label == selected || b.Name == selected {
			name := b.Name
			if name == "" {
				name = b.Label
				if p.Kind == Hourly {
					name = strings.TrimSuffix(b.Label, "h") + ":00"
				}
			}
			return fmt.Sprintf("Selected: %s (%s donations)", name, scale.FormatValue(b.Count))
		}
	}
	return ""
}
