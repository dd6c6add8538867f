package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pingboard/internal/ui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorInfo)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorMuted)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorPrimary)

	hostStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	addrStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	okStyle = lipgloss.NewStyle().
		Foreground(ui.ColorSuccess)

	lossStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)

	warnStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	footerStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)
)
