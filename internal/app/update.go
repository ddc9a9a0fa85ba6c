// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Picker.Height = max(msg.Height-4, 5)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case EngineEventMsg:
		return m.handleEngineEvent(msg.Event)

	case EngineClosedMsg:
		return m, tea.Quit

	case NotificationClearMsg:
		m.clearNotification(msg.ID)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	// Remaining messages belong to the file picker (directory reads etc.)
	if m.PickerOpen {
		var cmd tea.Cmd
		m.Picker, cmd = m.Picker.Update(msg)
		return m, cmd
	}

	return m, nil
}
