package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "preview"
}

// All contains all key bindings for resolution and help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionOpenFile, []string{"o"}, "Open video file", "global"},
	{ActionCloseFile, []string{"x"}, "Close current file", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "playback"},
	{ActionSkipBackSmall, []string{"left"}, "Skip -1s", "playback"},
	{ActionSkipFwdSmall, []string{"right"}, "Skip +1s", "playback"},
	{ActionSkipBackBig, []string{"shift+left"}, "Skip -10s", "playback"},
	{ActionSkipFwdBig, []string{"shift+right"}, "Skip +10s", "playback"},
	// Rate labels come from the configured rate set at render time; the
	// descriptions here are the slot names only.
	{ActionRate1, []string{"1"}, "Playback rate preset 1", "playback"},
	{ActionRate2, []string{"2"}, "Playback rate preset 2", "playback"},
	{ActionRate3, []string{"3"}, "Playback rate preset 3", "playback"},

	// Hold-to-preview
	{ActionHoldPreview, []string{"f"}, "Hold for fullscreen preview", "preview"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
