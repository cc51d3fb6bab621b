package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/charts"
)

const riskBarWidth = 10

// View renders the visible page, the item list and the status bar.
//
// Implements tea.Model.View.
func (m *Model) View() string {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderPanels(),
		m.renderItems(),
		m.renderStatusBar(),
	)
}

func (m *Model) renderHeader() string {
	text := fmt.Sprintf(" fbcharts · %s · page %d/%d", m.Focused(), m.page()+1, len(Pages))
	if locked := m.board.Selection().Locked(); locked != "" {
		text += " · locked: " + locked
	}
	return headerStyle.MaxWidth(m.width).Render(text)
}

func (m *Model) renderPanels() string {
	l := computeLayout(m.width, m.height)
	clock := m.sequence.Clock(m.now())

	var views [2]string
	for slot, id := range Pages[m.page()] {
		cols, rows := l.Inner(slot)
		body := m.panelBody(id, slot, l, clock)

		style := panelStyle
		if id == m.Focused() {
			style = focusedPanelStyle
		}
		views[slot] = style.Width(cols).Height(rows).MaxHeight(l.Height).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views[0], views[1])
}

func (m *Model) panelBody(id charts.ChartID, slot int, l Layout, clock animation.Clock) string {
	f, err := m.board.Frame(id, clock)
	if err != nil {
		m.logger.CaptureError(err, "chart", string(id))
		return err.Error()
	}
	started := m.now()
	view := l.terminal(slot).View(f)
	m.metrics.ObserveRender(string(id), "term", m.now().Sub(started))
	return view
}

// refreshItems rebuilds the item list after the lock, sort or payload
// changed.
func (m *Model) refreshItems() {
	items := m.Items()
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, itemLine(it))
	}
	if len(lines) == 0 {
		lines = append(lines, mutedStyle.Render("  No items"))
	}
	m.items.SetContent(strings.Join(lines, "\n"))
	m.items.GotoTop()
}

func itemLine(it analytics.RiskItem) string {
	width := analytics.RiskWidth(it.RiskScore) * riskBarWidth / 100
	style := riskLow
	switch {
	case it.RiskScore >= 0.7:
		style = riskHigh
	case it.RiskScore >= 0.4:
		style = riskMid
	}
	bar := style.Render(strings.Repeat("█", width)) + mutedStyle.Render(strings.Repeat("░", riskBarWidth-width))
	return fmt.Sprintf("  %-24.24s %-14.14s %6s %6s  %s %.2f",
		it.Title, it.Category,
		analytics.FormatOptional(it.Quantity), analytics.FormatOptional(it.HoursLeft),
		bar, it.RiskScore)
}

func (m *Model) renderItems() string {
	order := "asc"
	if m.sort.Desc {
		order = "desc"
	}
	title := fmt.Sprintf("  %-24s %-14s %6s %6s  risk        sorted by %s %s",
		"Item", "Category", "Qty", "Hours", m.sort.Key, order)
	if locked := m.board.Selection().Locked(); locked != "" {
		title += " · " + locked
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.MaxWidth(m.width).Render(title),
		m.items.View(),
	)
}

func (m *Model) renderStatusBar() string {
	var parts []string
	for _, t := range m.store.Toasts() {
		style, ok := toastStyles[string(t.Type)]
		if !ok {
			style = toastStyles["info"]
		}
		parts = append(parts, style.Render(t.Message))
	}
	text := strings.Join(parts, "  ")
	if text == "" {
		text = "tab focus · ←/→ crosshair · click lock · c clear · s sort · r reverse · q quit"
	}
	return statusBarStyle.Width(m.width).MaxWidth(m.width).Render(" " + text)
}
