// Package analytics holds the precomputed payloads the charts consume.
//
// Field names follow the JSON the analytics backend emits. Nothing in this
// package computes statistics; it only decodes, repairs and orders them.
package analytics

// Summary is the headline KPI block.
type Summary struct {
	TotalItems           int     `json:"total_items" yaml:"total_items"`
	TotalClaimed         int     `json:"total_claimed" yaml:"total_claimed"`
	TotalUnclaimed       int     `json:"total_unclaimed" yaml:"total_unclaimed"`
	ClaimRate            float64 `json:"claim_rate" yaml:"claim_rate"`
	Donors               int     `json:"donors" yaml:"donors"`
	Recipients           int     `json:"recipients" yaml:"recipients"`
	ItemsExpiringNext24h int     `json:"items_expiring_next_24h" yaml:"items_expiring_next_24h"`
}

// TimeSeries holds daily created and claimed counts as parallel arrays. A
// forecast has the same shape.
type TimeSeries struct {
	Labels  []string  `json:"labels" yaml:"labels"`
	Created []float64 `json:"created" yaml:"created"`
	Claimed []float64 `json:"claimed" yaml:"claimed"`
}

// Len returns the number of samples every array has.
func (t *TimeSeries) Len() int {
	if t == nil {
		return 0
	}
	return min(len(t.Labels), len(t.Created), len(t.Claimed))
}

// Categories is the per-category breakdown of created and claimed items.
type Categories struct {
	Created map[string]float64 `json:"created" yaml:"created"`
	Claimed map[string]float64 `json:"claimed" yaml:"claimed"`
}

// RiskItem is a listed item with its precomputed expiry risk.
type RiskItem struct {
	ID        int      `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Category  string   `json:"category" yaml:"category"`
	OrgID     int      `json:"org_id" yaml:"org_id"`
	ExpiresAt *string  `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	HoursLeft *float64 `json:"hours_left,omitempty" yaml:"hours_left,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	RiskScore float64  `json:"risk_score" yaml:"risk_score"`
}

// Risk is the list of items most likely to expire unclaimed.
type Risk struct {
	Items []RiskItem `json:"items" yaml:"items"`
}

// Cohorts is a weekly donor retention matrix. Matrix[row][col] is the
// fraction of the row's cohort still active col weeks later.
type Cohorts struct {
	Labels  []string    `json:"labels" yaml:"labels"`
	Offsets []int       `json:"offsets" yaml:"offsets"`
	Matrix  [][]float64 `json:"matrix" yaml:"matrix"`
}

// Location is a ranked pickup or drop-off address.
type Location struct {
	Address string  `json:"address" yaml:"address"`
	Lat     float64 `json:"lat" yaml:"lat"`
	Lng     float64 `json:"lng" yaml:"lng"`
	Count   int     `json:"count" yaml:"count"`
}

// Locations holds the top donation and claim addresses.
type Locations struct {
	TopDonationLocations []Location `json:"top_donation_locations" yaml:"top_donation_locations"`
	TopClaimLocations    []Location `json:"top_claim_locations" yaml:"top_claim_locations"`
}

// Contributor is a ranked donor or recipient.
type Contributor struct {
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Donations int    `json:"donations,omitempty" yaml:"donations,omitempty"`
	Claims    int    `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// Contributors holds the top donors and recipients.
type Contributors struct {
	TopDonors     []Contributor `json:"top_donors" yaml:"top_donors"`
	TopRecipients []Contributor `json:"top_recipients" yaml:"top_recipients"`
}

// HourlyPattern is the activity count of one hour of the day.
type HourlyPattern struct {
	Hour  int     `json:"hour" yaml:"hour"`
	Count float64 `json:"count" yaml:"count"`
}

// DailyPattern is the activity count of one day of the week.
type DailyPattern struct {
	Day       string  `json:"day" yaml:"day"`
	DayNumber int     `json:"day_number,omitempty" yaml:"day_number,omitempty"`
	Count     float64 `json:"count" yaml:"count"`
}

// Outlook lists the predicted peaks.
type Outlook struct {
	BestDonationHours []HourlyPattern `json:"best_donation_hours" yaml:"best_donation_hours"`
	BestDonationDays  []DailyPattern  `json:"best_donation_days" yaml:"best_donation_days"`
	NextPeakTime      string          `json:"next_peak_time" yaml:"next_peak_time"`
}

// Predictions holds activity patterns and the peaks predicted from them.
type Predictions struct {
	HourlyPatterns []HourlyPattern `json:"hourly_patterns" yaml:"hourly_patterns"`
	DailyPatterns  []DailyPattern  `json:"daily_patterns" yaml:"daily_patterns"`
	Predictions    Outlook         `json:"predictions" yaml:"predictions"`
}

// Bundle is every payload of the dashboard. Sections the backend did not
// return are nil.
type Bundle struct {
	Summary      *Summary      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Series       *TimeSeries   `json:"series,omitempty" yaml:"series,omitempty"`
	Categories   *Categories   `json:"categories,omitempty" yaml:"categories,omitempty"`
	Forecast     *TimeSeries   `json:"forecast,omitempty" yaml:"forecast,omitempty"`
	Risk         *Risk         `json:"risk,omitempty" yaml:"risk,omitempty"`
	Cohorts      *Cohorts      `json:"cohorts,omitempty" yaml:"cohorts,omitempty"`
	Locations    *Locations    `json:"locations,omitempty" yaml:"locations,omitempty"`
	Contributors *Contributors `json:"contributors,omitempty" yaml:"contributors,omitempty"`
	Predictions  *Predictions  `json:"predictions,omitempty" yaml:"predictions,omitempty"`
}
