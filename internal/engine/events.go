// Package engine wraps the native playback engine (mpv over its JSON IPC
// socket). Commands are fire-and-forget requests; their effects arrive later
// as property-change events, never as synchronous return values.
package engine

import (
	"fmt"
	"time"

	"github.com/llehouerou/reel/internal/input"
)

// Event is implemented by all engine notifications. Events are delivered on
// a single subscription channel in arrival order.
type Event interface {
	engineEvent()
}

// TimeUpdate reports the engine playback clock.
type TimeUpdate struct {
	Gen      int
	Position time.Duration
}

func (TimeUpdate) engineEvent() {}

// DurationKnown is emitted once the loaded media's duration is available.
type DurationKnown struct {
	Gen      int
	Duration time.Duration
}

func (DurationKnown) engineEvent() {}

// PauseChange reports the engine's actual paused condition. This is the
// confirmation for play/pause requests: the session's playing flag moves
// only in response to it.
type PauseChange struct {
	Gen    int
	Paused bool
}

func (PauseChange) engineEvent() {}

// RateChange confirms the engine's actual playback rate.
type RateChange struct {
	Gen  int
	Rate float64
}

func (RateChange) engineEvent() {}

// Ended is emitted when playback reaches the end of the media.
type Ended struct {
	Gen int
}

func (Ended) engineEvent() {}

// FullscreenChange reports the window's actual fullscreen state. It fires
// for every transition, including ones the user triggered inside the window
// rather than through this process.
type FullscreenChange struct {
	On bool
}

func (FullscreenChange) engineEvent() {}

// Key forwards a raw key edge from the video window.
type Key struct {
	Event input.KeyEvent
}

func (Key) engineEvent() {}

// RequestError reports a command the engine rejected, matched back to the
// request that caused it via the IPC request id.
type RequestError struct {
	Op  string
	Err error
}

func (RequestError) engineEvent() {}

func (e RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e RequestError) Unwrap() error { return e.Err }
