package input

import (
	"time"

	"github.com/llehouerou/reel/internal/keymap"
)

// Dispatcher maps key edges to playback commands.
//
// The only persistent state is whether the hold key is currently down, used
// to suppress duplicate hold-enter commands from OS key-repeat.
type Dispatcher struct {
	resolver *keymap.Resolver

	smallStep time.Duration
	bigStep   time.Duration
	rates     []float64

	focus    Focus
	holdDown bool
}

// NewDispatcher creates a dispatcher with the given resolver and skip steps.
// rates maps the rate actions slot by slot; missing slots are unbound.
func NewDispatcher(r *keymap.Resolver, smallStep, bigStep time.Duration, rates []float64) *Dispatcher {
	return &Dispatcher{
		resolver:  r,
		smallStep: smallStep,
		bigStep:   bigStep,
		rates:     rates,
	}
}

// SetFocus records the current input focus. While focus is on a
// text-input-like control, Dispatch ignores every event.
func (d *Dispatcher) SetFocus(f Focus) {
	d.focus = f
}

// HoldActive reports whether the hold key is currently down.
func (d *Dispatcher) HoldActive() bool {
	return d.holdDown
}

// Reset clears the hold state, e.g. when the source is replaced while the
// key is held.
func (d *Dispatcher) Reset() {
	d.holdDown = false
}

// Dispatch maps one key edge to a command. The focus guard takes priority
// over all mappings, including the hold key.
func (d *Dispatcher) Dispatch(ev KeyEvent) Command {
	if d.focus == FocusText {
		return None
	}

	action := d.resolver.Resolve(ev.Key)
	if action == "" {
		return None
	}

	if action == keymap.ActionHoldPreview {
		return d.dispatchHold(ev)
	}

	// Every other binding acts on the down edge only.
	if ev.Edge != EdgeDown {
		return None
	}

	switch action {
	case keymap.ActionPlayPause:
		return Command{Kind: CmdTogglePlay}
	case keymap.ActionSkipBackSmall:
		return Command{Kind: CmdSkip, Skip: -d.smallStep}
	case keymap.ActionSkipFwdSmall:
		return Command{Kind: CmdSkip, Skip: d.smallStep}
	case keymap.ActionSkipBackBig:
		return Command{Kind: CmdSkip, Skip: -d.bigStep}
	case keymap.ActionSkipFwdBig:
		return Command{Kind: CmdSkip, Skip: d.bigStep}
	case keymap.ActionRate1:
		return d.rateCommand(0)
	case keymap.ActionRate2:
		return d.rateCommand(1)
	case keymap.ActionRate3:
		return d.rateCommand(2)
	case keymap.ActionOpenFile:
		return Command{Kind: CmdOpenFile}
	case keymap.ActionCloseFile:
		return Command{Kind: CmdCloseFile}
	case keymap.ActionQuit:
		return Command{Kind: CmdQuit}
	}
	return None
}

// dispatchHold handles the hold-to-preview gesture. Only the first down edge
// starts the gesture; repeats while held are ignored so fullscreen entry is
// idempotent. An up edge without a preceding down is ignored. Terminal-origin
// edges never start the gesture: the terminal cannot deliver the release that
// would end it, which would strand playback in the held state.
func (d *Dispatcher) dispatchHold(ev KeyEvent) Command {
	switch ev.Edge {
	case EdgeDown:
		if ev.Origin != OriginWindow || d.holdDown || ev.Repeat {
			return None
		}
		d.holdDown = true
		return Command{Kind: CmdHoldStart}
	case EdgeUp:
		if !d.holdDown {
			return None
		}
		d.holdDown = false
		return Command{Kind: CmdHoldEnd}
	}
	return None
}

func (d *Dispatcher) rateCommand(slot int) Command {
	if slot >= len(d.rates) {
		return None
	}
	return Command{Kind: CmdSetRate, Rate: d.rates[slot]}
}
