package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// scriptMessageName is the script-message header the input script uses to
// forward key edges over IPC.
const scriptMessageName = "reel-key-edge"

// defaultForwardKeys are the window keys forwarded by default, in keymap
// notation. Matches the default bindings in internal/keymap.
var defaultForwardKeys = []string{
	" ", "left", "right", "shift+left", "shift+right",
	"f", "1", "2", "3", "o", "x", "q",
}

// mpvKeyNames translates keymap notation to mpv key names where they differ.
var mpvKeyNames = map[string]string{
	" ":           "SPACE",
	"space":       "SPACE",
	"left":        "LEFT",
	"right":       "RIGHT",
	"up":          "UP",
	"down":        "DOWN",
	"shift+left":  "Shift+LEFT",
	"shift+right": "Shift+RIGHT",
	"enter":       "ENTER",
	"esc":         "ESC",
	"backspace":   "BS",
}

// writeInputScript generates the lua script injected into mpv that forwards
// key down/up/repeat edges as script messages. Forced bindings consume the
// key, so the window's default behavior for bound keys is suppressed.
func writeInputScript(keys []string) (string, error) {
	if len(keys) == 0 {
		keys = defaultForwardKeys
	}

	var b strings.Builder
	b.WriteString("-- generated by reel; forwards key edges to the controlling client\n")
	b.WriteString("local function forward(key)\n")
	b.WriteString("  return function(e)\n")
	b.WriteString(fmt.Sprintf("    mp.commandv(\"script-message\", %q, key, e.event)\n", scriptMessageName))
	b.WriteString("  end\n")
	b.WriteString("end\n")
	seen := make(map[string]bool)
	for i, key := range keys {
		name := mpvKeyName(key)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		b.WriteString(fmt.Sprintf(
			"mp.add_forced_key_binding(%q, \"reel-key-%d\", forward(%q), {complex=true, repeatable=true})\n",
			name, i, key))
	}

	path := filepath.Join(os.TempDir(), "reel-input.lua")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// mpvKeyName maps a keymap key to its mpv name, or "" if it cannot be bound
// in the window (e.g. terminal-only chords like ctrl+c).
func mpvKeyName(key string) string {
	if name, ok := mpvKeyNames[key]; ok {
		return name
	}
	if strings.HasPrefix(key, "ctrl+") {
		return ""
	}
	if len(key) == 1 {
		return key
	}
	return ""
}
