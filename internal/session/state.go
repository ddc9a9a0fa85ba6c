// Package session owns the authoritative playback state and coordinates
// commands between the control surface, the engine and the media manager.
package session

import (
	"time"

	"github.com/llehouerou/reel/internal/media"
)

// State is a snapshot of the playback session.
//
// Playing mirrors the engine's actual paused condition and moves only on
// engine confirmation. Fullscreen mirrors the window's actual state and is
// written only in response to fullscreen notifications.
type State struct {
	Source     *media.Handle
	Playing    bool
	Rate       float64
	Position   time.Duration
	Duration   time.Duration // 0 until the engine reports it
	Fullscreen bool
}

// HasSource returns true if media is loaded.
func (s State) HasSource() bool {
	return s.Source != nil
}

// clampPosition bounds pos to [0, dur], or [0, ∞) while the duration is
// still unknown.
func clampPosition(pos, dur time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if dur > 0 && pos > dur {
		return dur
	}
	return pos
}
