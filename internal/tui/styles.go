package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary = lipgloss.Color("#003366")
	ColorOld     = lipgloss.Color("#4A90D9")
	ColorNew     = lipgloss.Color("#2E8B57")
	ColorDanger  = lipgloss.Color("#D9534F")
	ColorMuted   = lipgloss.Color("#888888")
	ColorBorder  = lipgloss.Color("#555555")

	// Base styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	LabelStyle        = lipgloss.NewStyle().Width(30)
	FocusedLabelStyle = LabelStyle.Bold(true).Foreground(ColorNew)
	InvalidStyle      = lipgloss.NewStyle().Foreground(ColorDanger)
	SectionStyle      = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(38)

	OldPanelStyle = PanelStyle.BorderForeground(ColorOld)
	NewPanelStyle = PanelStyle.BorderForeground(ColorNew)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted).Width(16)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Right).Width(18)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	StatusStyle      = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
)
