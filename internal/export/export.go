// Package export writes the chart data tables of a payload bundle to an
// xlsx workbook.
package export

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/legend"
)

// ErrEmpty is returned when a bundle has no section to export.
var ErrEmpty = errors.New("export: bundle has no data")

// Table is one worksheet.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// Tables lists a table per section present in b, in dashboard order.
func Tables(b *analytics.Bundle) []Table {
	if b == nil {
		return nil
	}
	var tables []Table
	add := func(t Table, ok bool) {
		if ok {
			tables = append(tables, t)
		}
	}

	if s := b.Summary; s != nil {
		add(Table{
			Sheet:  "Summary",
			Header: []string{"Metric", "Value"},
			Rows: [][]any{
				{"Total items", s.TotalItems},
				{"Claimed", s.TotalClaimed},
				{"Unclaimed", s.TotalUnclaimed},
				{"Claim rate", s.ClaimRate},
				{"Donors", s.Donors},
				{"Recipients", s.Recipients},
				{"Expiring in 24h", s.ItemsExpiringNext24h},
			},
		}, true)
	}
	add(timeTable("Series", b.Series), b.Series != nil)
	add(timeTable("Forecast", b.Forecast), b.Forecast != nil)
	add(categoryTable(b.Categories), b.Categories != nil)
	add(riskTable(b.Risk), b.Risk != nil)
	add(cohortTable(b.Cohorts), b.Cohorts != nil)

	if p := b.Predictions; p != nil {
		hourly := Table{Sheet: "Hourly", Header: []string{"Hour", "Count", "Peak"}}
		peaks := analytics.PredictedHours(p.HourlyPatterns, p.Predictions.BestDonationHours)
		for i, h := range p.HourlyPatterns {
			hourly.Rows = append(hourly.Rows, []any{h.Hour, h.Count, slices.Contains(peaks, i)})
		}
		add(hourly, true)

		daily := Table{Sheet: "Daily", Header: []string{"Day", "Count", "Peak"}}
		peaks = analytics.PredictedDays(p.DailyPatterns, p.Predictions.BestDonationDays)
		for i, d := range p.DailyPatterns {
			daily.Rows = append(daily.Rows, []any{d.Day, d.Count, slices.Contains(peaks, i)})
		}
		add(daily, true)
	}

	if l := b.Locations; l != nil {
		add(locationTable("Donation locations", l.TopDonationLocations), true)
		add(locationTable("Claim locations", l.TopClaimLocations), true)
	}
	if c := b.Contributors; c != nil {
		add(contributorTable("Donors", "Donations", c.TopDonors, false), true)
		add(contributorTable("Recipients", "Claims", c.TopRecipients, true), true)
	}
	return tables
}

func timeTable(sheet string, t *analytics.TimeSeries) Table {
	table := Table{Sheet: sheet, Header: []string{"Date", "Created", "Claimed"}}
	for i := range t.Len() {
		table.Rows = append(table.Rows, []any{t.Labels[i], t.Created[i], t.Claimed[i]})
	}
	return table
}

func categoryTable(c *analytics.Categories) Table {
	table := Table{Sheet: "Categories", Header: []string{"Category", "Created", "Claimed", "Share %"}}
	pairs := legend.Pairs(c.Created)
	total := legend.Total(pairs)
	for _, p := range pairs {
		table.Rows = append(table.Rows, []any{p.Label, p.Value, c.Claimed[p.Label], legend.Percent(p.Value, total)})
	}
	for _, p := range legend.Pairs(c.Claimed) {
		if _, ok := c.Created[p.Label]; !ok {
			table.Rows = append(table.Rows, []any{p.Label, 0, p.Value, 0})
		}
	}
	return table
}

func riskTable(r *analytics.Risk) Table {
	table := Table{Sheet: "Risk", Header: []string{"ID", "Item", "Category", "Quantity", "Hours left", "Risk score"}}
	for _, it := range analytics.DefaultSort.Apply(r.Items) {
		table.Rows = append(table.Rows, []any{it.ID, it.Title, it.Category, optional(it.Quantity), optional(it.HoursLeft), it.RiskScore})
	}
	return table
}

func cohortTable(c *analytics.Cohorts) Table {
	table := Table{Sheet: "Cohorts", Header: []string{"Cohort"}}
	cols := 0
	for _, row := range c.Matrix {
		cols = max(cols, len(row))
	}
	for j := range cols {
		offset := j
		if j < len(c.Offsets) {
			offset = c.Offsets[j]
		}
		table.Header = append(table.Header, "+"+strconv.Itoa(offset)+"w")
	}
	for i, row := range c.Matrix {
		label := fmt.Sprintf("Week %d", i+1)
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		cells := []any{label}
		for _, v := range row {
			cells = append(cells, v)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func locationTable(sheet string, locs []analytics.Location) Table {
	table := Table{Sheet: sheet, Header: []string{"Rank", "Address", "Count", "Lat", "Lng"}}
	for i, l := range locs {
		table.Rows = append(table.Rows, []any{i + 1, l.Address, l.Count, l.Lat, l.Lng})
	}
	return table
}

func contributorTable(sheet, metric string, people []analytics.Contributor, claims bool) Table {
	table := Table{Sheet: sheet, Header: []string{"Rank", "Name", "Email", metric}}
	for i, p := range people {
		n := p.Donations
		if claims {
			n = p.Claims
		}
		table.Rows = append(table.Rows, []any{i + 1, p.Name, p.Email, n})
	}
	return table
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
