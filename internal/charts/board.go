package charts

import (
	"fmt"
	"time"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/legend"
)

// ChartID names a chart of the board.
type ChartID string

const (
	ChartKPIs              ChartID = "kpis"
	ChartHistory           ChartID = "history"
	ChartCategories        ChartID = "categories"
	ChartCompare           ChartID = "compare"
	ChartClaimedBar        ChartID = "claimed-bar"
	ChartClaims            ChartID = "claims"
	ChartForecast          ChartID = "forecast"
	ChartCohorts           ChartID = "cohorts"
	ChartHourly            ChartID = "hourly"
	ChartDaily             ChartID = "daily"
	ChartDonationLocations ChartID = "donation-locations"
	ChartClaimLocations    ChartID = "claim-locations"
	ChartDonors            ChartID = "donors"
	ChartRecipients        ChartID = "recipients"
)

// ChartIDs lists the charts of the board in layout order.
var ChartIDs = []ChartID{
	ChartKPIs,
	ChartHistory,
	ChartCategories,
	ChartCompare,
	ChartClaimedBar,
	ChartClaims,
	ChartForecast,
	ChartCohorts,
	ChartHourly,
	ChartDaily,
	ChartDonationLocations,
	ChartClaimLocations,
	ChartDonors,
	ChartRecipients,
}

// ParseChartID validates a chart name.
func ParseChartID(s string) (ChartID, error) {
	for _, id := range ChartIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("charts: unknown chart %q", s)
}

// linked reports whether a chart takes part in the shared category lock.
func linked(id ChartID) bool {
	return id == ChartCategories || id == ChartCompare
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithPalette sets the categorical palette.
func WithPalette(p []string) BoardOption {
	return func(b *Board) {
		if len(p) > 0 {
			b.palette = p
		}
	}
}

// WithTopN sets how many categories the categorical charts draw.
func WithTopN(n int) BoardOption {
	return func(b *Board) {
		if n > 0 {
			b.topN = n
		}
	}
}

// WithWidth sets the width of the time charts.
func WithWidth(w float64) BoardOption {
	return func(b *Board) {
		if w > 0 {
			b.width = w
		}
	}
}

// Board composes every chart of the dashboard over one payload bundle.
//
// The historical and forecast charts share one crosshair, and the
// categories donut and comparison chart share one category selection.
// Every other chart keeps its own interaction machine.
type Board struct {
	bundle *analytics.Bundle

	crosshair *interaction.Crosshair
	selection *interaction.Selection
	machines  map[ChartID]*interaction.Machine

	palette []string
	topN    int
	width   float64
}

// NewBoard returns a board over bundle. A nil bundle renders every chart in
// its empty state.
func NewBoard(bundle *analytics.Bundle, opts ...BoardOption) *Board {
	b := &Board{
		crosshair: interaction.NewCrosshair(),
		selection: &interaction.Selection{},
		machines:  make(map[ChartID]*interaction.Machine, len(ChartIDs)),
		palette:   CategoryPalette,
		topN:      legend.DefaultTopN,
		width:     areaWidth,
	}
	for _, opt := range opts {
		opt(b)
	}

	shared := interaction.External{Crosshair: b.crosshair}
	for _, id := range ChartIDs {
		var owner interaction.Ownership = interaction.Internal{}
		if id == ChartHistory || id == ChartForecast {
			owner = shared
		}
		b.machines[id] = interaction.NewMachine(owner)
	}

	b.SetBundle(bundle)
	return b
}

// SetBundle replaces the payloads. Interaction state is kept so a reload
// does not drop the user's lock; a crosshair past the new series is clamped
// when drawn.
func (b *Board) SetBundle(bundle *analytics.Bundle) {
	if bundle == nil {
		bundle = &analytics.Bundle{}
	}
	bundle.Normalize()
	b.bundle = bundle
}

// Bundle returns the current payloads.
func (b *Board) Bundle() *analytics.Bundle { return b.bundle }

// Crosshair returns the crosshair shared by the time charts.
func (b *Board) Crosshair() *interaction.Crosshair { return b.crosshair }

// Selection returns the category selection shared by the linked charts.
func (b *Board) Selection() *interaction.Selection { return b.selection }

// Machine returns the interaction machine of a chart.
func (b *Board) Machine(id ChartID) *interaction.Machine { return b.machines[id] }

// HistoryProps returns the props of the daily created vs claimed chart.
func (b *Board) HistoryProps() AreaProps {
	return b.timeProps("Daily Items vs Claims", b.bundle.Series, []string{"Created", "Claimed"}, HistoryCreated, HistoryClaimed)
}

// ForecastProps returns the props of the forecast chart.
func (b *Board) ForecastProps() AreaProps {
	return b.timeProps("7-day Forecast", b.bundle.Forecast, []string{"Created (pred)", "Claimed (pred)"}, ForecastCreated, ForecastClaimed)
}

func (b *Board) timeProps(title string, t *analytics.TimeSeries, names []string, created, claimed string) AreaProps {
	p := AreaProps{Title: title, Width: b.width}
	if t == nil {
		return p
	}
	p.Labels = t.Labels
	p.Series = []Series{
		{Name: names[0], Color: created, Data: t.Created},
		{Name: names[1], Color: claimed, Data: t.Claimed},
	}
	return p
}

func (b *Board) categories() *analytics.Categories {
	if b.bundle.Categories == nil {
		return &analytics.Categories{}
	}
	return b.bundle.Categories
}

// CategoryProps returns the props of the created categories donut.
func (b *Board) CategoryProps() DonutProps {
	return DonutProps{
		Title:   "Category Breakdown (Created)",
		Pairs:   legend.Pairs(b.categories().Created),
		Palette: b.palette,
		TopN:    b.topN,
	}
}

// CompareProps returns the props of the created vs claimed comparison.
func (b *Board) CompareProps() CompareProps {
	c := b.categories()
	return CompareProps{Title: "Category Breakdown (Claimed)", Created: c.Created, Claimed: c.Claimed}
}

// ClaimedBarProps returns the props of the claimed categories bar chart.
func (b *Board) ClaimedBarProps() BarProps {
	return BarProps{
		Title: "Top Claimed Categories",
		Pairs: legend.Pairs(b.categories().Claimed),
		Color: HistoryClaimed,
		TopN:  b.topN,
	}
}

// ClaimProps returns the props of the claimed vs unclaimed donut.
func (b *Board) ClaimProps() DonutProps {
	var claimed, unclaimed float64
	if s := b.bundle.Summary; s != nil {
		claimed, unclaimed = float64(s.TotalClaimed), float64(s.TotalUnclaimed)
	}
	return ClaimProps(claimed, unclaimed)
}

// HeatmapProps returns the props of the cohort heatmap.
func (b *Board) HeatmapProps() HeatmapProps {
	p := HeatmapProps{Title: "Donor Cohort Retention (weekly)"}
	if c := b.bundle.Cohorts; c != nil {
		p.Labels, p.Offsets, p.Matrix = c.Labels, c.Offsets, c.Matrix
	}
	return p
}

// KPIs returns the headline metrics.
func (b *Board) KPIs() []KPI {
	return KPIs(b.bundle.Summary, b.bundle.Series)
}

// Ranks returns the rows of a leaderboard chart.
func (b *Board) Ranks(id ChartID) []Rank {
	return b.leaderboard(id).Ranks
}

func (b *Board) leaderboard(id ChartID) LeaderboardProps {
	var locs analytics.Locations
	if b.bundle.Locations != nil {
		locs = *b.bundle.Locations
	}
	var people analytics.Contributors
	if b.bundle.Contributors != nil {
		people = *b.bundle.Contributors
	}

	switch id {
	case ChartDonationLocations:
		return LocationBoard("Top Donation Locations", locs.TopDonationLocations, DonationColor)
	case ChartClaimLocations:
		return LocationBoard("Top Claim Locations", locs.TopClaimLocations, ClaimColor)
	case ChartDonors:
		return ContributorBoard("Top Donors", people.TopDonors, false)
	default:
		return ContributorBoard("Top Recipients", people.TopRecipients, true)
	}
}

// Frame draws one chart at the given animation clock.
func (b *Board) Frame(id ChartID, clock animation.Clock) (geometry.Frame, error) {
	m := b.machines[id]
	switch id {
	case ChartKPIs:
		return KPICards(b.KPIs(), clock), nil
	case ChartHistory:
		return AreaLine(b.HistoryProps(), m, clock), nil
	case ChartForecast:
		return AreaLine(b.ForecastProps(), m, clock), nil
	case ChartCategories:
		return InteractiveDonut(b.CategoryProps(), m, b.selection, clock), nil
	case ChartCompare:
		return Compare(b.CompareProps(), m, b.selection, clock), nil
	case ChartClaimedBar:
		return CategoryBar(b.ClaimedBarProps(), m, clock), nil
	case ChartClaims:
		return Donut(b.ClaimProps(), m, clock), nil
	case ChartCohorts:
		return Heatmap(b.HeatmapProps(), m, clock), nil
	case ChartHourly:
		return Prediction(HourlyPrediction(b.bundle.Predictions), m, clock), nil
	case ChartDaily:
		return Prediction(DailyPrediction(b.bundle.Predictions), m, clock), nil
	case ChartDonationLocations, ChartClaimLocations, ChartDonors, ChartRecipients:
		return Leaderboard(b.leaderboard(id), m, clock), nil
	}
	return geometry.Frame{}, fmt.Errorf("charts: unknown chart %q", id)
}

// Duration returns how long the entrance animation of a chart runs.
func (b *Board) Duration(id ChartID) time.Duration {
	switch id {
	case ChartHistory:
		return areaDuration(b.HistoryProps())
	case ChartForecast:
		return areaDuration(b.ForecastProps())
	case ChartCohorts:
		p := b.HeatmapProps()
		return animation.Heatmap.Total(len(p.Matrix) * p.Columns())
	case ChartHourly:
		return animation.PeakLabel.Total(len(HourlyPrediction(b.bundle.Predictions).Buckets))
	case ChartDaily:
		return animation.PeakLabel.Total(len(DailyPrediction(b.bundle.Predictions).Buckets))
	case ChartCategories:
		return animation.InteractiveDonut.Total(len(b.CategoryProps().Slices()))
	case ChartCompare:
		return animation.CompareClaimed.Total(len(b.CompareProps().Rows()))
	case ChartClaims:
		return animation.Donut.Total(2)
	case ChartKPIs:
		return animation.Sparkline.Total(1)
	}
	return animation.Bar.Total(max(b.topN, 10))
}

// TotalDuration returns when the last entrance animation of the board ends.
func (b *Board) TotalDuration() time.Duration {
	var d time.Duration
	for _, id := range ChartIDs {
		d = max(d, b.Duration(id))
	}
	return d
}

func areaDuration(p AreaProps) time.Duration {
	series := max(len(p.Series), 1)
	return max(
		animation.AreaSeries.Total(series),
		animation.AreaPoints.Total(p.Samples())+time.Duration(series-1)*100*time.Millisecond,
	)
}

// Pointer moves the pointer to (x, y) over chart id, updating hover state.
// It reports whether the visible state changed.
func (b *Board) Pointer(id ChartID, x, y float64) bool {
	m := b.machines[id]
	if m == nil {
		return false
	}
	before := b.snapshot(id)

	f, _ := b.Frame(id, animation.Settled)
	region, ok := f.Hit(x, y)
	m.Move(region.IndexAt(x), region.Label, ok)
	if linked(id) {
		if ok && region.Label != OtherLabel {
			b.selection.SetActive(region.Label)
		} else {
			b.selection.SetActive("")
		}
	}
	return !before.equal(b.snapshot(id))
}

// Leave moves the pointer off chart id.
func (b *Board) Leave(id ChartID) bool {
	m := b.machines[id]
	if m == nil {
		return false
	}
	before := b.snapshot(id)
	m.Move(0, "", false)
	if linked(id) {
		b.selection.SetActive("")
	}
	return !before.equal(b.snapshot(id))
}

// Click clicks at (x, y) over chart id. Linked charts toggle the shared
// category lock; prediction charts toggle their sticky bar selection. It
// returns the label clicked, or "" when nothing was hit.
func (b *Board) Click(id ChartID, x, y float64) string {
	f, _ := b.Frame(id, animation.Settled)
	region, ok := f.Hit(x, y)
	if !ok {
		return ""
	}
	b.Toggle(id, region.Label)
	return region.Label
}

// Toggle toggles the selection of label in chart id.
func (b *Board) Toggle(id ChartID, label string) {
	switch {
	case linked(id):
		if label != OtherLabel {
			b.selection.Toggle(label)
		}
	case id == ChartHourly || id == ChartDaily:
		b.machines[id].Click(label)
	}
}

// Step moves the shared crosshair by delta samples, starting from the first
// sample when it is hidden.
func (b *Board) Step(delta int) {
	n := max(b.HistoryProps().Indexable(), b.ForecastProps().Indexable())
	if n == 0 {
		return
	}
	i, ok := b.crosshair.Index()
	if !ok {
		b.crosshair.Set(0)
		return
	}
	b.crosshair.Set(max(0, min(n-1, i+delta)))
}

type boardState struct {
	state  interaction.State
	active string
	locked string
}

func (s boardState) equal(o boardState) bool {
	return s.state.Equal(o.state) && s.active == o.active && s.locked == o.locked
}

func (b *Board) snapshot(id ChartID) boardState {
	return boardState{
		state:  b.machines[id].State(),
		active: b.selection.Effective(),
		locked: b.selection.Locked(),
	}
}
