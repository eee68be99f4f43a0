package views

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	item    lipgloss.Style
	reward  lipgloss.Style
	detail  lipgloss.Style
	rank    lipgloss.Style
	empty   lipgloss.Style
	failure lipgloss.Style
	section lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		item:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		reward:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		rank:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		empty:   lipgloss.NewStyle().Faint(true),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}
