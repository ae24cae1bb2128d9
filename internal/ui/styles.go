package ui

import "github.com/charmbracelet/lipgloss"

// Base text styles
var (
	StyleBold = lipgloss.NewStyle().Bold(true)
	StyleDim  = lipgloss.NewStyle().Foreground(ColorDim)
)

// Colored text styles
var (
	StyleCyan  = lipgloss.NewStyle().Foreground(ColorCyan)
	StyleGreen = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleRed   = lipgloss.NewStyle().Foreground(ColorRed)
)

// Semantic styles
var (
	StyleHeader  = StyleBold.Copy().Foreground(ColorYellow)
	StyleSuccess = StyleBold.Copy().Foreground(ColorGreen)
	StyleError   = StyleBold.Copy().Foreground(ColorOrange)
	StyleLabel   = StyleBold.Copy().Foreground(ColorCyan)
	StyleLineNo  = StyleDim.Copy().Width(4).Align(lipgloss.Right)
)

// Box styles
var (
	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorOrange).
			Padding(0, 1)

	OutputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Padding(0, 1)
)
