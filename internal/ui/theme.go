package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for the editor
var (
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#00CED1", Dark: "#00FFFF"}
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#00A000", Dark: "#00FF00"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD700"}
	ColorOrange = lipgloss.AdaptiveColor{Light: "#FF6B00", Dark: "#FF8C00"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF0000"}

	ColorGray = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"}
	ColorDim  = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#555555"}
)
