package session

import "github.com/llehouerou/reel/internal/media"

// StateChange is emitted when any session state field changes.
type StateChange struct {
	State State
}

// SourceChange is emitted when the loaded source is replaced or closed.
// Current is nil after a close.
type SourceChange struct {
	Previous *media.Handle
	Current  *media.Handle
}

// ErrorEvent is emitted when a request fails.
type ErrorEvent struct {
	Operation string // e.g. "play", "seek"
	Err       error
}
