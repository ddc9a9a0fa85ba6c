// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Media operations
	OpOpenFile  Op = "open file"
	OpCloseFile Op = "close file"

	// Playback operations
	OpPlay    Op = "start playback"
	OpPause   Op = "pause playback"
	OpSeek    Op = "seek"
	OpSetRate Op = "change playback rate"

	// Fullscreen operations
	OpFullscreenEnter Op = "enter fullscreen"
	OpFullscreenExit  Op = "exit fullscreen"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
