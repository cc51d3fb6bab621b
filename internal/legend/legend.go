// Package legend derives legend entries and tooltip text from the same
// (label, value, color) triples the geometry builders consume.
package legend

import (
	"fmt"
	"math"
	"sort"

	"github.com/kedarrpandya/foodbridge/internal/scale"
)

// DefaultTopN is how many categories a categorical chart draws.
const DefaultTopN = 7

// Pair is a labeled value.
type Pair struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Entry is one row of a legend.
type Entry struct {
	Label   string  `json:"label" yaml:"label"`
	Value   float64 `json:"value" yaml:"value"`
	Color   string  `json:"color" yaml:"color"`
	Percent int     `json:"percent" yaml:"percent"`
}

// Legend lists the drawn entries of a chart. Total is the sum of every
// input value, including the ones truncated away, and Rest is the part of
// it that belongs to the Omitted entries.
type Legend struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Total   float64 `json:"total" yaml:"total"`
	Omitted int     `json:"omitted,omitempty" yaml:"omitted,omitempty"`
	Rest    float64 `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// Pairs turns a category map into pairs sorted by descending value. Equal
// values are ordered by label so the result is deterministic.
func Pairs(m map[string]float64) []Pair {
	pairs := make([]Pair, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair{Label: k, Value: v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Value != pairs[j].Value {
			return pairs[i].Value > pairs[j].Value
		}
		return pairs[i].Label < pairs[j].Label
	})
	return pairs
}

// SortDescending orders pairs by descending value, keeping the input order
// of equal values.
func SortDescending(pairs []Pair) []Pair {
	out := append([]Pair(nil), pairs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// TopN returns at most n pairs. A non-positive n keeps everything.
func TopN(pairs []Pair, n int) []Pair {
	if n <= 0 || len(pairs) <= n {
		return pairs
	}
	return pairs[:n]
}

// Total sums the values of pairs.
func Total(pairs []Pair) float64 {
	total := 0.0
	for _, p := range pairs {
		total += scale.Clean(p.Value)
	}
	return total
}

// Values extracts the values of pairs.
func Values(pairs []Pair) []float64 {
	values := make([]float64, len(pairs))
	for i, p := range pairs {
		values[i] = p.Value
	}
	return values
}

// Color returns the palette color of the element at index i.
func Color(palette []string, i int) string {
	if len(palette) == 0 {
		return "#9ca3af"
	}
	return palette[i%len(palette)]
}

// Compose sorts pairs, keeps the top n and assigns palette colors in draw
// order. Percentages are shares of the full, pre-truncation total.
func Compose(pairs []Pair, palette []string, n int) Legend {
	return Ordered(SortDescending(pairs), palette, n)
}

// Ordered is Compose without the sort, for charts whose categories have a
// fixed order such as claimed before unclaimed.
func Ordered(pairs []Pair, palette []string, n int) Legend {
	total := Total(pairs)
	top := TopN(pairs, n)

	entries := make([]Entry, len(top))
	for i, p := range top {
		entries[i] = Entry{
			Label:   p.Label,
			Value:   p.Value,
			Color:   Color(palette, i),
			Percent: Percent(p.Value, total),
		}
	}
	return Legend{
		Entries: entries,
		Total:   total,
		Omitted: len(pairs) - len(top),
		Rest:    total - Total(top),
	}
}

// Percent returns value as a whole percentage of total. The total is
// floored at 1.
func Percent(value, total float64) int {
	return int(math.Round(scale.Clean(value) / scale.Floor(total) * 100))
}

// Find returns the entry for label.
func (l Legend) Find(label string) (Entry, bool) {
	for _, e := range l.Entries {
		if e.Label == label {
			return e, true
		}
	}
	return Entry{}, false
}

// Pairs returns the drawn entries as pairs.
func (l Legend) Pairs() []Pair {
	pairs := make([]Pair, len(l.Entries))
	for i, e := range l.Entries {
		pairs[i] = Pair{Label: e.Label, Value: e.Value}
	}
	return pairs
}

// Row is the "value (pct%)" text shown next to a legend entry.
func (e Entry) Row() string {
	return fmt.Sprintf("%s (%d%%)", scale.FormatValue(e.Value), e.Percent)
}

// Tooltip is the "label: value (pct%)" text of a category.
func (e Entry) Tooltip() string {
	return fmt.Sprintf("%s: %s (%d%%)", e.Label, scale.FormatValue(e.Value), e.Percent)
}
