package dashboard

import (
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/render"
)

// Pages lists the charts shown side by side, in focus order. The linked
// charts of each pair share a page so their coordination is visible.
var Pages = [][2]charts.ChartID{
	{charts.ChartHistory, charts.ChartForecast},
	{charts.ChartCategories, charts.ChartCompare},
	{charts.ChartClaims, charts.ChartClaimedBar},
	{charts.ChartKPIs, charts.ChartCohorts},
	{charts.ChartHourly, charts.ChartDaily},
	{charts.ChartDonationLocations, charts.ChartClaimLocations},
	{charts.ChartDonors, charts.ChartRecipients},
}

// focusOrder returns the charts in the order tab visits them.
func focusOrder() []charts.ChartID {
	out := make([]charts.ChartID, 0, 2*len(Pages))
	for _, p := range Pages {
		out = append(out, p[0], p[1])
	}
	return out
}

// Layout is the screen geometry of the visible page.
type Layout struct {
	Top    int
	Widths [2]int
	Height int
}

func computeLayout(width, height int) Layout {
	left := max(width/2, MinPanelWidth)
	return Layout{
		Top:    HeaderHeight,
		Widths: [2]int{left, max(width-left, MinPanelWidth)},
		Height: max(height-HeaderHeight-StatusBarHeight-ItemsHeight, MinPanelHeight),
	}
}

// Inner returns the drawable size of a panel, inside its border.
func (l Layout) Inner(slot int) (cols, rows int) {
	return max(l.Widths[slot]-2, 1), max(l.Height-2, 1)
}

func (l Layout) offset(slot int) int {
	if slot == 0 {
		return 0
	}
	return l.Widths[0]
}

// panelAt returns the panel slot and the cell inside it under the screen
// position (x, y). Borders are not part of any panel.
func (l Layout) panelAt(x, y int) (slot, col, row int, ok bool) {
	if y < l.Top || y >= l.Top+l.Height || x < 0 || x >= l.Widths[0]+l.Widths[1] {
		return 0, 0, 0, false
	}
	if x >= l.Widths[0] {
		slot = 1
	}
	cols, rows := l.Inner(slot)
	col = x - l.offset(slot) - 1
	row = y - l.Top - 1
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return 0, 0, 0, false
	}
	return slot, col, row, true
}

func (l Layout) terminal(slot int) render.Terminal {
	cols, rows := l.Inner(slot)
	return render.Terminal{Cols: cols, Rows: rows}
}

// target is a chart position under the pointer.
type target struct {
	id   charts.ChartID
	x, y float64
}

// chartAt maps a screen position to a position in the frame of the chart
// drawn there.
func (m *Model) chartAt(x, y int) (target, bool) {
	l := computeLayout(m.width, m.height)
	slot, col, row, ok := l.panelAt(x, y)
	if !ok {
		return target{}, false
	}
	id := Pages[m.page()][slot]
	f, err := m.board.Frame(id, animation.Settled)
	if err != nil {
		return target{}, false
	}
	fx, fy := l.terminal(slot).Point(f, col, row)
	return target{id: id, x: fx, y: fy}, true
}

// cellOf maps a position in the frame of chart id to the screen cell it is
// drawn in, when the chart is on the visible page.
func (m *Model) cellOf(id charts.ChartID, x, y float64) (int, int, bool) {
	l := computeLayout(m.width, m.height)
	for slot, visible := range Pages[m.page()] {
		if visible != id {
			continue
		}
		f, err := m.board.Frame(id, animation.Settled)
		if err != nil {
			return 0, 0, false
		}
		col, row := l.terminal(slot).Cell(f, x, y)
		return l.offset(slot) + 1 + col, l.Top + 1 + row, true
	}
	return 0, 0, false
}
