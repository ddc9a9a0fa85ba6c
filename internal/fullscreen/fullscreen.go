// Package fullscreen coordinates fullscreen requests between the hold
// gesture and the window platform.
package fullscreen

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Platform can request fullscreen transitions on the rendering window.
// Requests are advisory: the window reports what actually happened through
// change notifications, which may never arrive or may arrive unprompted.
type Platform interface {
	RequestEnter() error
	RequestExit() error
}

// StateSink receives confirmed fullscreen transitions.
type StateSink interface {
	Fullscreen() bool
	HandleFullscreenChange(on bool)
}

// Coordinator issues fullscreen requests and routes window notifications to
// the session. Request failures are logged but never fail the surrounding
// gesture: the window state is advisory and the gesture's playback side must
// proceed regardless.
type Coordinator struct {
	mu       sync.Mutex
	platform Platform
	sink     StateSink
	// pendingEnter is set between a requested enter and the window's answer,
	// so a release arriving before the window responds still requests the
	// matching exit.
	pendingEnter bool
}

// NewCoordinator creates a coordinator over the given platform and sink.
func NewCoordinator(platform Platform, sink StateSink) *Coordinator {
	return &Coordinator{platform: platform, sink: sink}
}

// RequestEnter asks the window to enter fullscreen.
func (c *Coordinator) RequestEnter() {
	c.mu.Lock()
	c.pendingEnter = true
	c.mu.Unlock()

	if err := c.platform.RequestEnter(); err != nil {
		log.Warn().Err(err).Msg("fullscreen enter request failed")
	}
}

// RequestExit asks the window to leave fullscreen. Skipped when the window is
// not fullscreen and no enter is in flight, so an unrelated key release never
// produces a spurious exit request.
func (c *Coordinator) RequestExit() {
	c.mu.Lock()
	wanted := c.pendingEnter || c.sink.Fullscreen()
	c.pendingEnter = false
	c.mu.Unlock()
	if !wanted {
		return
	}

	if err := c.platform.RequestExit(); err != nil {
		log.Warn().Err(err).Msg("fullscreen exit request failed")
	}
}

// HandleChange records the window's reported fullscreen state, whether it was
// requested or user/platform initiated.
func (c *Coordinator) HandleChange(on bool) {
	c.mu.Lock()
	if on {
		c.pendingEnter = false
	}
	c.mu.Unlock()
	c.sink.HandleFullscreenChange(on)
}
