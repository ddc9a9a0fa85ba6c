package engine

import "time"

// Interface defines the engine contract for dependency injection and testing.
//
// All methods are requests: a nil return means the request was handed to the
// engine, not that it took effect. Confirmations and failures arrive as
// events on the subscription.
type Interface interface {
	// Load replaces the current media with the file at path and leaves it
	// paused at the start. Bumps the generation: events from the previous
	// media carry the old generation and must be discarded by the consumer.
	Load(path string) error
	// Unload stops playback and drops the current media. Bumps the generation.
	Unload() error

	Play() error
	Pause() error
	SeekTo(pos time.Duration) error
	SetRate(rate float64) error

	// RequestFullscreen asks the window to enter or leave fullscreen. The
	// actual state arrives as a FullscreenChange event; the request may be
	// rejected by the platform.
	RequestFullscreen(on bool) error

	// ShowOverlay displays text on the video surface; ClearOverlay removes it.
	ShowOverlay(text string) error
	ClearOverlay() error

	// Generation identifies the current media load. Events are tagged with
	// the generation current when they were observed.
	Generation() int

	Subscribe() *Subscription
	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Mpv)(nil)
	_ Interface = (*Mock)(nil)
)
