package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the editor chrome uses.
const (
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorPink     lipgloss.Color = "#f5c2e7"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	headerStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	paneStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1)
	paneTitleStyle  = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	labelStyle      = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle      = lipgloss.NewStyle().Foreground(colorText)
	cursorStyle     = lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus)
	dimStyle        = lipgloss.NewStyle().Foreground(colorOverlay0)
	statusStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	errorStyle      = lipgloss.NewStyle().Foreground(colorError)
	warnStyle       = lipgloss.NewStyle().Foreground(colorWarning)
	goodStyle       = lipgloss.NewStyle().Foreground(colorSuccess)
	modalStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocus).Padding(1, 2)
	modalTitleStyle = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
)

// scoreStyle colors a 0-100 score; inverted for penalties.
func scoreStyle(v float64, inverted bool) lipgloss.Style {
	if inverted {
		v = 100 - v
	}
	switch {
	case v >= 70:
		return goodStyle
	case v >= 40:
		return warnStyle
	default:
		return errorStyle
	}
}
