package transportbar

import "github.com/charmbracelet/lipgloss"

var (
	barStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	progressFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	progressEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	rateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	rateActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)
