package input

import "time"

// CommandKind identifies a dispatched playback command.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdTogglePlay
	CmdSkip
	CmdSetRate
	CmdHoldStart // enter preview fullscreen, then play
	CmdHoldEnd   // exit preview fullscreen, then pause
	CmdOpenFile
	CmdCloseFile
	CmdQuit
)

// Command is the result of dispatching one key event.
type Command struct {
	Kind CommandKind
	Skip time.Duration // signed skip delta, set for CmdSkip
	Rate float64       // set for CmdSetRate
}

// None is the zero command for ignored events.
var None = Command{Kind: CmdNone}
