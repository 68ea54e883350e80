package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	input    lipgloss.Style
	button   lipgloss.Style
	row      lipgloss.Style
	selected lipgloss.Style
	remove   lipgloss.Style
	empty    lipgloss.Style
	notice   lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	accent := lipgloss.Color("#6a5acd")
	purple := lipgloss.Color("#6f22b2")

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Italic(true).Foreground(accent),
		input:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#8b03cf")).Padding(0, 1),
		button:   lipgloss.NewStyle().Foreground(purple).Bold(true),
		row:      lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		remove:   lipgloss.NewStyle().Foreground(purple),
		empty:    lipgloss.NewStyle().Faint(true).MarginTop(1),
		notice:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(purple).Padding(0, 2),
		help:     lipgloss.NewStyle().Faint(true),
	}
}
