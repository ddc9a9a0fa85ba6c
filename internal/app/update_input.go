// internal/app/update_input.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/input"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.PickerOpen {
		return m.handlePickerKey(msg)
	}

	// Terminal keys only produce down edges; release edges come from the
	// video window through the engine.
	ev := input.KeyEvent{Key: msg.String(), Edge: input.EdgeDown}
	return m.applyCommand(m.Dispatcher.Dispatch(ev))
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "escape" {
		m.closePicker()
		return m, nil
	}

	var cmd tea.Cmd
	m.Picker, cmd = m.Picker.Update(msg)

	if didSelect, path := m.Picker.DidSelectFile(msg); didSelect {
		m.closePicker()
		if err := m.Session.OpenFile(path); err != nil {
			return m, tea.Batch(cmd, m.notify(errmsg.FormatWith(errmsg.OpOpenFile, path, err)))
		}
		// A hold gesture spanning the source change is void; its release
		// edge must not pause the new media.
		m.Dispatcher.Reset()
		return m, cmd
	}

	return m, cmd
}

func (m *Model) openPicker() tea.Cmd {
	m.PickerOpen = true
	m.Dispatcher.SetFocus(input.FocusText)
	return m.Picker.Init()
}

func (m *Model) closePicker() {
	m.PickerOpen = false
	m.Dispatcher.SetFocus(input.FocusPlayer)
}

// applyCommand executes one dispatched command against the session and the
// fullscreen coordinator.
func (m Model) applyCommand(cmd input.Command) (tea.Model, tea.Cmd) {
	switch cmd.Kind {
	case input.CmdNone:
		return m, nil

	case input.CmdTogglePlay:
		if err := m.Session.Toggle(); err != nil {
			return m, m.notify(errmsg.Format(errmsg.OpPlay, err))
		}
		return m, nil

	case input.CmdSkip:
		if err := m.Session.Skip(cmd.Skip); err != nil {
			return m, m.notify(errmsg.Format(errmsg.OpSeek, err))
		}
		return m, nil

	case input.CmdSetRate:
		if err := m.Session.SetRate(cmd.Rate); err != nil {
			return m, m.notify(errmsg.Format(errmsg.OpSetRate, err))
		}
		return m, nil

	case input.CmdHoldStart:
		// Fullscreen first, then playback; the two are independent and a
		// failed fullscreen request must not block the play request.
		m.Coordinator.RequestEnter()
		if err := m.Session.Play(); err != nil {
			return m, m.notify(errmsg.Format(errmsg.OpPlay, err))
		}
		return m, nil

	case input.CmdHoldEnd:
		m.Coordinator.RequestExit()
		if err := m.Session.Pause(); err != nil {
			return m, m.notify(errmsg.Format(errmsg.OpPause, err))
		}
		return m, nil

	case input.CmdOpenFile:
		return m, m.openPicker()

	case input.CmdCloseFile:
		if err := m.Session.CloseFile(); err != nil {
			return m, m.notify(errmsg.Format(errmsg.OpCloseFile, err))
		}
		m.Dispatcher.Reset()
		return m, nil

	case input.CmdQuit:
		return m, tea.Quit
	}
	return m, nil
}
