package grid

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	track       lipgloss.Style
	slotTime    lipgloss.Style
	cell        lipgloss.Style
	emptyCell   lipgloss.Style
	pinned      lipgloss.Style
	commonEvent lipgloss.Style
	section     lipgloss.Style
	empty       lipgloss.Style
	id          lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		track:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		slotTime:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		cell:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		emptyCell:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		pinned:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		commonEvent: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("159")),
		section:     lipgloss.NewStyle().MarginTop(1),
		empty:       lipgloss.NewStyle().Faint(true),
		id:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
