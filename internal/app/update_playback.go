// internal/app/update_playback.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/engine"
	"github.com/llehouerou/reel/internal/ui/overlay"
)

// overlayWidth is the character width of the on-video status line.
const overlayWidth = 48

// handleEngineEvent routes one engine event and re-arms the watcher.
func (m Model) handleEngineEvent(e engine.Event) (tea.Model, tea.Cmd) {
	rearm := WatchEngineEvents(m.engineSub)

	switch e := e.(type) {
	case engine.TimeUpdate:
		m.Session.HandleTimeUpdate(e.Gen, e.Position)

	case engine.DurationKnown:
		m.Session.HandleDurationKnown(e.Gen, e.Duration)

	case engine.PauseChange:
		m.Session.HandlePauseChange(e.Gen, e.Paused)

	case engine.RateChange:
		m.Session.HandleRateChange(e.Gen, e.Rate)

	case engine.Ended:
		m.Session.HandleEnded(e.Gen)

	case engine.FullscreenChange:
		m.Coordinator.HandleChange(e.On)
		if !e.On {
			_ = m.Engine.ClearOverlay()
		}

	case engine.Key:
		// Key edges forwarded from the video window feed the same
		// dispatcher as terminal keys.
		model, cmd := m.applyCommand(m.Dispatcher.Dispatch(e.Event))
		return model, tea.Batch(cmd, rearm)

	case engine.RequestError:
		m.Session.HandleRequestError(e.Op, e.Err)
		return m, tea.Batch(m.notify(e.Error()), rearm)
	}

	return m, rearm
}

// handleTick refreshes the on-video overlay while fullscreen.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.Session.Fullscreen() && m.Session.Source() != nil {
		snap := m.Session.Snapshot()
		text := overlay.Text(snap.Position, snap.Duration, snap.Playing, overlayWidth)
		_ = m.Engine.ShowOverlay(text)
	}
	return m, TickCmd()
}
