// Package transportbar renders the single-line playback transport for the
// terminal surface.
package transportbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/reel/internal/session"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// State holds everything needed to render the transport bar.
type State struct {
	HasSource bool
	Playing   bool
	Title     string
	Size      uint64
	Position  time.Duration
	Duration  time.Duration
	Rate      float64
	Rates     []float64
}

// NewState constructs a render state from a session snapshot.
func NewState(s session.State, rates []float64) State {
	st := State{
		HasSource: s.HasSource(),
		Playing:   s.Playing,
		Position:  s.Position,
		Duration:  s.Duration,
		Rate:      s.Rate,
		Rates:     rates,
	}
	if s.HasSource() {
		st.Title = s.Source.Name()
		st.Size = uint64(s.Source.Size())
	}
	return st
}

// Render returns the transport bar string for the given width.
// Returns empty string when no media is loaded.
func Render(s State, width int) string {
	if !s.HasSource {
		return ""
	}

	// Calculate available width (subtract border and padding)
	innerWidth := max(width-6, 0)

	status := playSymbol
	if !s.Playing {
		status = pauseSymbol
	}

	title := s.Title
	if title == "" {
		title = "Unknown Media"
	}
	if s.Size > 0 {
		title = fmt.Sprintf("%s (%s)", title, humanize.Bytes(s.Size))
	}

	timeStr := fmt.Sprintf("%s / %s", FormatTimestamp(s.Position), FormatTimestamp(s.Duration))
	rateCells := renderRates(s.Rates, s.Rate)

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	statusWidth := lipgloss.Width(status + "  ")
	timeWidth := lipgloss.Width(timeStr)
	ratesWidth := lipgloss.Width(rateCells)

	// Reserve minimum space for the progress bar
	minBarWidth := 10

	availableForTitle := innerWidth - statusWidth - timeWidth - ratesWidth - sepWidth*3 - minBarWidth
	title = truncate(title, max(availableForTitle, 10))
	titleWidth := lipgloss.Width(title)

	barWidth := max(innerWidth-titleWidth-statusWidth-timeWidth-ratesWidth-sepWidth*3, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	bar := progressFilledStyle.Render(strings.Repeat("━", filled)) +
		progressEmptyStyle.Render(strings.Repeat("─", barWidth-filled))

	// Title (1.2 MB)   ▶ ━━━───   00:23 / 12:58   0.5 0.75 [1.0]
	var content strings.Builder
	content.WriteString(titleStyle.Render(title))
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(bar)
	content.WriteString(separator)
	content.WriteString(timeStyle.Render(timeStr))
	content.WriteString(separator)
	content.WriteString(rateCells)

	return barStyle.Padding(0, 2).Width(width - 2).Render(content.String())
}

// renderRates draws one cell per selectable rate, highlighting the active one.
func renderRates(rates []float64, active float64) string {
	cells := make([]string, 0, len(rates))
	for _, r := range rates {
		label := FormatRate(r)
		if r == active {
			cells = append(cells, rateActiveStyle.Render("["+label+"]"))
		} else {
			cells = append(cells, rateStyle.Render(label))
		}
	}
	return strings.Join(cells, " ")
}

// FormatRate renders a playback rate as a compact label, e.g. "0.75x".
func FormatRate(r float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", r), "0"), ".") + "x"
}

// truncate shortens a string to fit maxWidth, handling wide characters.
func truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "…")
}

// FormatTimestamp renders a duration as mm:ss with unbounded minutes.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
