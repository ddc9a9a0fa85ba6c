// Package input turns raw keyboard edges into playback commands.
//
// Key events arrive from two sources with different capabilities: the video
// window reports full down/up edges with an OS key-repeat flag, while the
// terminal only reports presses (down edges). Both feed the same Dispatcher
// so the mapping and guards live in one place.
package input

// Edge identifies which half of a key stroke an event reports.
type Edge int

const (
	EdgeDown Edge = iota
	EdgeUp
)

// String returns the edge name for debugging.
func (e Edge) String() string {
	switch e {
	case EdgeDown:
		return "down"
	case EdgeUp:
		return "up"
	default:
		return "unknown"
	}
}

// Origin identifies which input source captured a key edge.
type Origin int

const (
	// OriginTerminal events come from the terminal, which only ever
	// reports presses and can never deliver a release edge.
	OriginTerminal Origin = iota
	// OriginWindow events come from the video window, which reports full
	// down/up edges.
	OriginWindow
)

// KeyEvent is a raw keyboard edge from an input source.
type KeyEvent struct {
	Key    string
	Edge   Edge
	Repeat bool // OS key-repeat, only meaningful on down edges
	Origin Origin
}

// Focus describes what currently owns keyboard input.
type Focus int

const (
	// FocusPlayer routes key events to playback commands.
	FocusPlayer Focus = iota
	// FocusText means a text-input-like control owns input; every key event
	// is ignored by the dispatcher, including the hold key.
	FocusText
)
