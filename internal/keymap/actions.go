// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit      Action = "quit"
	ActionOpenFile  Action = "open_file"
	ActionCloseFile Action = "close_file"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionSkipBackSmall Action = "skip_back_small"
	ActionSkipFwdSmall  Action = "skip_fwd_small"
	ActionSkipBackBig   Action = "skip_back_big"
	ActionSkipFwdBig    Action = "skip_fwd_big"

	// Rate selection (one action per slot in the configured rate set)
	ActionRate1 Action = "rate_1"
	ActionRate2 Action = "rate_2"
	ActionRate3 Action = "rate_3"

	// Hold-to-preview: the down and up edges of this key form one gesture.
	ActionHoldPreview Action = "hold_preview"
)
