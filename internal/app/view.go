// internal/app/view.go
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/ui/transportbar"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("reel"))
	b.WriteString("\n\n")

	switch {
	case m.PickerOpen:
		b.WriteString(hintStyle.Render("Pick a file to open"))
		b.WriteString("\n\n")
		b.WriteString(m.Picker.View())

	case m.Session.Source() == nil:
		b.WriteString(hintStyle.Render("No media loaded."))
		b.WriteString("\n\n")
		b.WriteString(m.renderHelp())

	default:
		bar := transportbar.Render(
			transportbar.NewState(m.Session.Snapshot(), m.Session.Rates()),
			max(m.Width, 40),
		)
		b.WriteString(bar)
		b.WriteString("\n\n")
		b.WriteString(m.renderHelp())
	}

	for _, n := range m.Notifications {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(n.Message))
	}

	return b.String()
}

// renderHelp draws one line per binding. Rate bindings show the configured
// rate for their slot instead of the static slot name; slots with no
// configured rate are unbound and get no line.
func (m Model) renderHelp() string {
	rates := m.Session.Rates()
	var lines []string
	for _, binding := range keymap.All {
		desc := binding.Description
		if slot, ok := rateSlot(binding.Action); ok {
			if slot >= len(rates) {
				continue
			}
			desc = "Playback rate " + transportbar.FormatRate(rates[slot])
		}
		lines = append(lines, hintStyle.Render(
			strings.Join(binding.Keys, "/")+"  "+desc,
		))
	}
	return strings.Join(lines, "\n")
}

func rateSlot(a keymap.Action) (int, bool) {
	switch a {
	case keymap.ActionRate1:
		return 0, true
	case keymap.ActionRate2:
		return 1, true
	case keymap.ActionRate3:
		return 2, true
	}
	return 0, false
}
