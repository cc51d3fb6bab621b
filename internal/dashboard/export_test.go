package dashboard

import "github.com/kedarrpandya/foodbridge/internal/charts"

// ScreenCell returns the screen cell the frame position (x, y) of chart id
// is drawn in.
func (m *Model) ScreenCell(id charts.ChartID, x, y float64) (int, int, bool) {
	return m.cellOf(id, x, y)
}
