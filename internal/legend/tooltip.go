package legend

import (
	"fmt"
	"math"

	"github.com/kedarrpandya/foodbridge/internal/scale"
)

// SeriesValue is one series' sample at the crosshair index.
type SeriesValue struct {
	Name  string  `json:"name" yaml:"name"`
	Color string  `json:"color" yaml:"color"`
	Value float64 `json:"value" yaml:"value"`
}

// SeriesTooltip is the content of a crosshair tooltip.
type SeriesTooltip struct {
	Index  int           `json:"index" yaml:"index"`
	Label  string        `json:"label" yaml:"label"`
	Values []SeriesValue `json:"values" yaml:"values"`
}

// Lines renders the tooltip as a header followed by "name: value" rows.
func (t SeriesTooltip) Lines() []string {
	lines := make([]string, 0, len(t.Values)+1)
	lines = append(lines, t.Label)
	for _, v := range t.Values {
		lines = append(lines, fmt.Sprintf("%s: %s", v.Name, scale.FormatValue(v.Value)))
	}
	return lines
}

// CohortTooltip describes one heatmap cell.
func CohortTooltip(row, offset int, value float64) string {
	return fmt.Sprintf("Week %d, +%dw: %d%% retained", row+1, offset, int(math.Round(value*100)))
}

// PredictionTooltip describes one prediction bar.
func PredictionTooltip(count float64) string {
	return fmt.Sprintf("%s items", scale.FormatValue(count))
}

// CompareRow is the label drawn after a created/claimed pair of bars.
func CompareRow(created, claimed float64) string {
	return fmt.Sprintf("C: %s / Cl: %s", scale.FormatValue(created), scale.FormatValue(claimed))
}

// Delta describes the change between the last two samples of a KPI, as
// "no change" or "+d (p%) vs prev". The percentage is 0 when the previous
// sample is 0.
func Delta(cur, prev float64) string {
	diff := cur - prev
	if diff == 0 {
		return "no change"
	}
	pct := 0
	if prev != 0 {
		pct = int(math.Round(diff / math.Max(1, prev) * 100))
	}
	sign := "+"
	if diff < 0 {
		sign = ""
	}
	return fmt.Sprintf("%s%s (%d%%) vs prev", sign, scale.FormatValue(diff), pct)
}

// CategoryTooltip is the "label: value (pct%)" text of a category whose
// share is taken from total.
func CategoryTooltip(label string, value, total float64) string {
	return Entry{Label: label, Value: value, Percent: Percent(value, total)}.Tooltip()
}
