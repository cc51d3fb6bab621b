package analytics

import "math"

// Normalize repairs degenerate payloads in place so that charts can rely on
// their shape: nil maps and slices become empty, parallel arrays are cut to
// their shortest common length and cohort fractions are clamped to [0, 1].
func (b *Bundle) Normalize() {
	if b == nil {
		return
	}
	b.Series.normalize()
	b.Forecast.normalize()

	if c := b.Categories; c != nil {
		if c.Created == nil {
			c.Created = map[string]float64{}
		}
		if c.Claimed == nil {
			c.Claimed = map[string]float64{}
		}
	}

	if r := b.Risk; r != nil && r.Items == nil {
		r.Items = []RiskItem{}
	}

	b.Cohorts.normalize()
}

func (t *TimeSeries) normalize() {
	if t == nil {
		return
	}
	n := t.Len()
	t.Labels = append([]string{}, t.Labels[:n]...)
	t.Created = cleanSeries(t.Created[:n])
	t.Claimed = cleanSeries(t.Claimed[:n])
}

func (c *Cohorts) normalize() {
	if c == nil {
		return
	}
	rows := min(len(c.Labels), len(c.Matrix))
	c.Labels = append([]string{}, c.Labels[:rows]...)
	c.Matrix = c.Matrix[:rows]
	for i, row := range c.Matrix {
		clean := make([]float64, len(row))
		for j, v := range row {
			clean[j] = clampFraction(v)
		}
		c.Matrix[i] = clean
	}
	if c.Offsets == nil {
		c.Offsets = []int{}
	}
}

func cleanSeries(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

func clampFraction(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}
