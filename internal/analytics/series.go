package analytics

import "math"

// UnclaimedSeries returns max(created-claimed, 0) per sample.
func UnclaimedSeries(t *TimeSeries) []float64 {
	n := t.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Max(t.Created[i]-t.Claimed[i], 0)
	}
	return out
}

// ClaimRateSeries returns the claim rate of each sample in whole percent.
// Samples with nothing created have a rate of 0.
func ClaimRateSeries(t *TimeSeries) []float64 {
	n := t.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if t.Created[i] > 0 {
			out[i] = math.Round(t.Claimed[i] / math.Max(1, t.Created[i]) * 100)
		}
	}
	return out
}

// PredictedHours returns the indices of patterns whose hour is one of the
// predicted peaks. Peaks without a matching pattern are skipped.
func PredictedHours(patterns []HourlyPattern, peaks []HourlyPattern) []int {
	var out []int
	for _, p := range peaks {
		for i, h := range patterns {
			if h.Hour == p.Hour {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// PredictedDays returns the indices of patterns whose day name is one of
// the predicted peaks.
func PredictedDays(patterns []DailyPattern, peaks []DailyPattern) []int {
	var out []int
	for _, p := range peaks {
		for i, d := range patterns {
			if d.Day == p.Day {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
