package widgets

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, shared with core's chrome.
var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext  lipgloss.Color = "#a6adc8"
	colorOverlay  lipgloss.Color = "#6c7086"
	colorSurface0 lipgloss.Color = "#313244"
	colorSurface1 lipgloss.Color = "#45475a"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorBase     lipgloss.Color = "#1e1e2e"
)
