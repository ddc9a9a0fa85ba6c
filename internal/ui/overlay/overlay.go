// Package overlay builds the on-video status line shown while the window is
// fullscreen. The text is rendered by the video window itself, so it is plain
// text without terminal styling.
package overlay

import (
	"strings"
	"time"

	"github.com/llehouerou/reel/internal/ui/transportbar"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// Text renders the fullscreen status line.
// Format: ▶  01:23  ▓▓▓▓▓░░░░░  04:56
func Text(position, duration time.Duration, playing bool, width int) string {
	status := "▶"
	if !playing {
		status = "⏸"
	}

	posStr := transportbar.FormatTimestamp(position)
	durStr := transportbar.FormatTimestamp(duration)

	// Space left for the bar itself
	fixedWidth := len(status) + 2 + len(posStr) + 2 + 2 + len(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for a bar, just show times
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)

	return status + "  " + posStr + "  " + bar + "  " + durStr
}
