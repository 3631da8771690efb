package tui

import "charm.land/lipgloss/v2"

var (
	primary = lipgloss.Color("#33A8FF")
	muted   = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#10B981")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(muted).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(success)

	searchStyle = lipgloss.NewStyle().
			Foreground(primary)

	columnStyle = lipgloss.NewStyle().
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(1, 0, 0, 0)

	frameStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
