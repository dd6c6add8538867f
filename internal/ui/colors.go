package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for probe state
const (
	ColorSuccess lipgloss.Color = "2" // Green: reply received
	ColorError   lipgloss.Color = "1" // Red: loss
	ColorWarning lipgloss.Color = "3" // Yellow: refused (port closed, host up)
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)
