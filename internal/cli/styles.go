package cli

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7C3AED")
	ok      = lipgloss.Color("#10B981")
	warning = lipgloss.Color("#F59E0B")
	danger  = lipgloss.Color("#EF4444")
	muted   = lipgloss.Color("#6B7280")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary)
	labelStyle    = lipgloss.NewStyle().Foreground(muted).Width(12)
	packedStyle   = lipgloss.NewStyle().Bold(true).Foreground(ok)
	fallbackStyle = lipgloss.NewStyle().Bold(true).Foreground(warning)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(danger)
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)
