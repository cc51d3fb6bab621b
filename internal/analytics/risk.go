package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// SortKey is a column of the risk table.
type SortKey string

const (
	SortItem      SortKey = "item"
	SortCategory  SortKey = "category"
	SortQuantity  SortKey = "quantity"
	SortHoursLeft SortKey = "hours_left"
	SortRiskScore SortKey = "risk_score"
)

// SortKeys lists the risk table columns in display order.
var SortKeys = []SortKey{SortItem, SortCategory, SortQuantity, SortHoursLeft, SortRiskScore}

// ParseSortKey validates a column name.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Next returns the column after k, wrapping around.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortRiskScore
}

// Sort is the ordering of the risk table. The zero value sorts by
// ascending risk score; DefaultSort is descending.
type Sort struct {
	Key  SortKey
	Desc bool
}

// DefaultSort lists the riskiest items first.
var DefaultSort = Sort{Key: SortRiskScore, Desc: true}

// Toggle returns the ordering after a click on the header of key: clicking
// the ascending active column flips it to descending, and anything else
// sorts by key ascending.
func (s Sort) Toggle(key SortKey) Sort {
	if s.Key == key && !s.Desc {
		return Sort{Key: key, Desc: true}
	}
	return Sort{Key: key}
}

// Apply returns a sorted copy of items.
func (s Sort) Apply(items []RiskItem) []RiskItem {
	return SortRisk(items, s.Key, s.Desc)
}

// SortRisk returns a copy of items ordered by key. Missing quantities and
// hours sort as zero. Equal items keep their input order.
func SortRisk(items []RiskItem, key SortKey, desc bool) []RiskItem {
	out := append([]RiskItem(nil), items...)
	less := func(a, b RiskItem) int {
		switch key {
		case SortItem:
			return strings.Compare(a.Title, b.Title)
		case SortCategory:
			return strings.Compare(a.Category, b.Category)
		case SortQuantity:
			return compareFloat(deref(a.Quantity), deref(b.Quantity))
		case SortHoursLeft:
			return compareFloat(deref(a.HoursLeft), deref(b.HoursLeft))
		default:
			return compareFloat(a.RiskScore, b.RiskScore)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := less(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// RiskWidth returns the width of a risk bar in percent of its track.
func RiskWidth(score float64) int {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	return int(math.Min(100, math.Round(score*100)))
}

// FilterByCategory returns the items of the given category. An empty
// category matches everything.
func FilterByCategory(items []RiskItem, category string) []RiskItem {
	if category == "" {
		return items
	}
	var out []RiskItem
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// RiskCategories returns the distinct categories of items in first-seen order.
func RiskCategories(items []RiskItem) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// FormatOptional renders an optional number, or "-" when it is missing.
func FormatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
