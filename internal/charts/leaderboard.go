package charts

import (
	"fmt"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/scale"
)

// Leaderboard colors.
const (
	DonationColor = "#3b82f6"
	ClaimColor    = "#10b981"
)

// Empty leaderboard messages.
const (
	NoLocations    = "No location data available"
	NoContributors = "No contributor data available"
)

// rankColors tint the badges of the top three ranks.
var rankColors = []string{"#f59e0b", "#9ca3af", "#ea580c"}

const (
	boardWidth = 420
	boardRowH  = 56
)

// Rank is one row of a leaderboard.
type Rank struct {
	Name   string  `json:"name" yaml:"name"`
	Detail string  `json:"detail,omitempty" yaml:"detail,omitempty"`
	Count  float64 `json:"count" yaml:"count"`
}

// LeaderboardProps configures a ranked list of horizontal bars.
type LeaderboardProps struct {
	Title string
	Ranks []Rank
	Color string
	// Empty is the message shown when there are no ranks.
	Empty string
}

// LocationBoard ranks donation or claim addresses.
func LocationBoard(title string, locations []analytics.Location, color string) LeaderboardProps {
	p := LeaderboardProps{Title: title, Color: color, Empty: NoLocations}
	for _, l := range locations {
		p.Ranks = append(p.Ranks, Rank{
			Name:   l.Address,
			Detail: fmt.Sprintf("%.4f, %.4f", l.Lat, l.Lng),
			Count:  float64(l.Count),
		})
	}
	return p
}

// ContributorBoard ranks donors by donations or recipients by claims.
func ContributorBoard(title string, contributors []analytics.Contributor, claims bool) LeaderboardProps {
	p := LeaderboardProps{Title: title, Color: DonationColor, Empty: NoContributors}
	if claims {
		p.Color = ClaimColor
	}
	for _, c := range contributors {
		count := c.Donations
		if claims {
			count = c.Claims
		}
		p.Ranks = append(p.Ranks, Rank{Name: c.Name, Detail: c.Email, Count: float64(count)})
	}
	return p
}

// Leaderboard draws ranks in their given order, each with a badge, its name
// and a bar proportional to count/max. The top three ranks are
// highlighted.
func Leaderboard(p LeaderboardProps, m *interaction.Machine, clock animation.Clock) geometry.Frame {
	if len(p.Ranks) == 0 {
		msg := p.Empty
		if msg == "" {
			msg = NoData
		}
		return emptyFrame(p.Title, boardWidth, 80, msg)
	}

	counts := make([]float64, len(p.Ranks))
	for i, r := range p.Ranks {
		counts[i] = r.Count
	}
	track := boardWidth - 120.0
	x := scale.NewLinear(scale.MaxOf(counts), track)
	hovered, ok := m.HoverIndex()
	n := len(p.Ranks)

	f := geometry.Frame{Title: p.Title, Width: boardWidth, Height: float64(n) * boardRowH}
	for i, r := range p.Ranks {
		y := float64(i) * boardRowH
		bg := "#f9fafb"
		badge := "#9ca3af"
		if i < len(rankColors) {
			bg = "#eff6ff"
			badge = rankColors[i]
		}
		if ok && hovered == i {
			bg = "#f3f4f6"
		}

		f.Add(
			geometry.Rect{X: 0, Y: y + 2, W: boardWidth, H: boardRowH - 4, RX: 10, Style: geometry.Filled(bg)},
			geometry.Rect{X: 10, Y: y + 12, W: 32, H: 32, RX: 8, Style: geometry.Filled(badge)},
			bold(label(26, y+32, fmt.Sprint(i+1), geometry.AnchorMiddle, 13, White)),
			bold(label(54, y+20, r.Name, geometry.AnchorStart, 12, "#111827")),
			geometry.Rect{X: 54, Y: y + 34, W: track, H: 8, RX: 4, Style: geometry.Filled("#e5e7eb")},
			geometry.Rect{
				X: 54, Y: y + 34, H: 8, RX: 4,
				W:     x.Map(r.Count) * clock.At(animation.Bar, i, n),
				Style: geometry.Filled(p.Color),
			},
			bold(label(boardWidth-12, y+42, scale.FormatValue(r.Count), geometry.AnchorEnd, 12, "#374151")),
		)
		if r.Detail != "" {
			f.Add(label(54+track, y+20, r.Detail, geometry.AnchorEnd, 10, LabelColor))
		}
		f.Regions = append(f.Regions, geometry.Region{
			Index: i, Label: r.Name,
			X: 0, Y: y, W: boardWidth, H: boardRowH,
		})
	}
	return f
}
