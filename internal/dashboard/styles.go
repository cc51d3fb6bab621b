package dashboard

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	HeaderHeight    = 1
	StatusBarHeight = 1
	ItemsHeight     = 7
	MinPanelHeight  = 6
	MinPanelWidth   = 12
)

const brandColor = lipgloss.Color("#16a34a")

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(brandColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#d1d5db"))

	focusedPanelStyle = panelStyle.BorderForeground(brandColor)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#374151")).
			Background(lipgloss.Color("#f3f4f6"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))

	toastStyles = map[string]lipgloss.Style{
		"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")),
		"success": lipgloss.NewStyle().Foreground(brandColor),
		"error":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626")),
	}

	riskHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	riskMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	riskLow  = lipgloss.NewStyle().Foreground(brandColor)
)
