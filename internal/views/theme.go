package views

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the author pages use.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
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
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorText)
	recordTitle   = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	disabledStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	tooltipStyle  = lipgloss.NewStyle().Foreground(colorWarning).Italic(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	citeStyle     = lipgloss.NewStyle().Foreground(colorPeach)
	infoStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	drawerStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	wrapperStyle  = lipgloss.NewStyle().MarginBottom(1)
)
