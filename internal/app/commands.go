// internal/app/commands.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/engine"
)

// tickInterval drives transport bar and overlay refreshes.
const tickInterval = 250 * time.Millisecond

// TickCmd returns a command that sends TickMsg after the tick interval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchEngineEvents returns a command that waits for the next engine event.
// Events are delivered one at a time so the session sees them in arrival
// order; the command is re-armed after each message.
func WatchEngineEvents(sub *engine.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e, ok := <-sub.Events:
			if !ok {
				return EngineClosedMsg{}
			}
			return EngineEventMsg{Event: e}
		case <-sub.Done:
			return EngineClosedMsg{}
		}
	}
}
