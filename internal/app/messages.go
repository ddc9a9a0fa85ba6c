// Package app contains the root bubbletea model for the control surface.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/engine"
)

// Message category interfaces for type-based routing in Update().

// PlaybackMessage is implemented by messages related to the playback engine.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// InputMessage is implemented by messages related to user input handling.
type InputMessage interface {
	tea.Msg
	inputMessage()
}

// TickMsg is sent periodically to refresh the transport bar and overlay.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// EngineEventMsg wraps one engine event from the subscription.
type EngineEventMsg struct {
	Event engine.Event
}

func (EngineEventMsg) playbackMessage() {}

// EngineClosedMsg is sent when the engine subscription ends, which means the
// video process exited.
type EngineClosedMsg struct{}

func (EngineClosedMsg) playbackMessage() {}

// Notification represents a temporary notification message.
type Notification struct {
	ID      int64
	Message string
}

// NotificationClearMsg is sent to clear a specific notification after a delay.
type NotificationClearMsg struct {
	ID int64
}

func (NotificationClearMsg) inputMessage() {}

// NotificationDuration is how long notifications are displayed.
const NotificationDuration = 3 * time.Second

// NotificationClearCmd returns a command that clears the notification after a delay.
func NotificationClearCmd(id int64) tea.Cmd {
	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		return NotificationClearMsg{ID: id}
	})
}
