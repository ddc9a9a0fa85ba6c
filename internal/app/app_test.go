package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/engine"
	"github.com/llehouerou/reel/internal/fullscreen"
	"github.com/llehouerou/reel/internal/input"
	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/session"
)

func newTestModel(t *testing.T, files ...string) (Model, *engine.Mock) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("data"), 0o644))
	}
	eng := engine.NewMock()
	sess := session.New(eng, media.NewManager(fs), nil)
	coord := fullscreen.NewCoordinator(fullscreen.NewEngineAdapter(eng), sess)
	disp := input.NewDispatcher(
		keymap.NewResolver(keymap.All),
		time.Second, 10*time.Second,
		sess.Rates(),
	)
	return New(Params{
		Session:     sess,
		Engine:      eng,
		Coordinator: coord,
		Dispatcher:  disp,
	}), eng
}

func keyMsg(key string) tea.KeyMsg {
	if key == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestUpdate_SpaceTogglesPlayback(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))

	_, _ = m.Update(keyMsg(" "))

	assert.Equal(t, 1, eng.PlayCalls())
}

func TestUpdate_SkipKeys(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))
	m.Session.HandleDurationKnown(m.Session.Generation(), 2*time.Minute)
	m.Session.HandleTimeUpdate(m.Session.Generation(), 30*time.Second)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})

	require.Len(t, eng.SeekCalls(), 2)
	assert.Equal(t, 31*time.Second, eng.SeekCalls()[0])
	assert.Equal(t, 41*time.Second, eng.SeekCalls()[1])
}

func TestUpdate_RateKeys(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))

	_, _ = m.Update(keyMsg("2"))

	require.Len(t, eng.RateCalls(), 1)
	assert.Equal(t, 0.75, eng.RateCalls()[0])
}

func TestUpdate_QuitKey(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEngineKey_HoldGesture(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))

	// Press edge from the video window: fullscreen request then play.
	next, _ := m.handleEngineEvent(engine.Key{Event: input.KeyEvent{Key: "f", Edge: input.EdgeDown, Origin: input.OriginWindow}})
	m = next.(Model)

	require.Equal(t, []bool{true}, eng.FullscreenCalls())
	assert.Equal(t, 1, eng.PlayCalls())

	// Repeat edges while held change nothing.
	next, _ = m.handleEngineEvent(engine.Key{Event: input.KeyEvent{Key: "f", Edge: input.EdgeDown, Repeat: true, Origin: input.OriginWindow}})
	m = next.(Model)
	assert.Len(t, eng.FullscreenCalls(), 1)

	// Release edge: exit request then pause.
	next, _ = m.handleEngineEvent(engine.Key{Event: input.KeyEvent{Key: "f", Edge: input.EdgeUp, Origin: input.OriginWindow}})
	_ = next.(Model)

	require.Equal(t, []bool{true, false}, eng.FullscreenCalls())
	assert.Equal(t, 1, eng.PauseCalls())
}

func TestTerminalHoldKey_DoesNotStartGesture(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))

	// The terminal cannot deliver the release edge that ends the gesture,
	// so its f press must be inert.
	_, _ = m.Update(keyMsg("f"))

	assert.Empty(t, eng.FullscreenCalls())
	assert.Zero(t, eng.PlayCalls())
	assert.False(t, m.Dispatcher.HoldActive())
}

func TestCloseFile_ClearsHoldGesture(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))

	next, _ := m.handleEngineEvent(engine.Key{Event: input.KeyEvent{Key: "f", Edge: input.EdgeDown, Origin: input.OriginWindow}})
	m = next.(Model)
	require.True(t, m.Dispatcher.HoldActive())

	next, _ = m.applyCommand(input.Command{Kind: input.CmdCloseFile})
	m = next.(Model)
	assert.False(t, m.Dispatcher.HoldActive())

	// The release edge of the voided gesture must not exit fullscreen or
	// pause whatever loads next.
	pauses := eng.PauseCalls()
	next, _ = m.handleEngineEvent(engine.Key{Event: input.KeyEvent{Key: "f", Edge: input.EdgeUp, Origin: input.OriginWindow}})
	_ = next.(Model)

	assert.Equal(t, []bool{true}, eng.FullscreenCalls())
	assert.Equal(t, pauses, eng.PauseCalls())
}

func TestEngineEvent_RoutesToSession(t *testing.T) {
	m, _ := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))
	gen := m.Session.Generation()

	_, _ = m.handleEngineEvent(engine.DurationKnown{Gen: gen, Duration: time.Minute})
	_, _ = m.handleEngineEvent(engine.TimeUpdate{Gen: gen, Position: 10 * time.Second})
	_, _ = m.handleEngineEvent(engine.PauseChange{Gen: gen, Paused: false})

	snap := m.Session.Snapshot()
	assert.Equal(t, time.Minute, snap.Duration)
	assert.Equal(t, 10*time.Second, snap.Position)
	assert.True(t, snap.Playing)
}

func TestEngineEvent_FullscreenChange(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))

	_, _ = m.handleEngineEvent(engine.FullscreenChange{On: true})
	assert.True(t, m.Session.Fullscreen())

	// Exit clears the on-video overlay.
	_, _ = m.handleEngineEvent(engine.FullscreenChange{On: false})
	assert.False(t, m.Session.Fullscreen())
	assert.Equal(t, 1, eng.OverlayClears())
}

func TestTick_ShowsOverlayWhileFullscreen(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))

	_, _ = m.handleTick()
	assert.Empty(t, eng.OverlayTexts(), "no overlay while windowed")

	m.Session.HandleFullscreenChange(true)
	_, _ = m.handleTick()
	require.Len(t, eng.OverlayTexts(), 1)
	assert.Contains(t, eng.OverlayTexts()[0], "00:00")
}

func TestPickerFocus_SuppressesPlaybackKeys(t *testing.T) {
	m, eng := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))

	next, _ := m.applyCommand(input.Command{Kind: input.CmdOpenFile})
	m = next.(Model)
	require.True(t, m.PickerOpen)

	// Space while the picker is focused must not reach the session.
	next, _ = m.Update(keyMsg(" "))
	m = next.(Model)
	assert.Zero(t, eng.PlayCalls())

	// Escape restores player focus.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(Model)
	require.False(t, m.PickerOpen)

	_, _ = m.Update(keyMsg(" "))
	assert.Equal(t, 1, eng.PlayCalls())
}

func TestView_NoMedia(t *testing.T) {
	m, _ := newTestModel(t)
	m.Width = 100

	out := m.View()
	assert.Contains(t, out, "No media loaded")
	assert.Contains(t, out, "Open video file")
}

func TestView_WithMedia(t *testing.T) {
	m, _ := newTestModel(t, "/v/a.mp4")
	require.NoError(t, m.Session.OpenFile("/v/a.mp4"))
	m.Width = 140

	out := m.View()
	assert.Contains(t, out, "a.mp4")
	assert.True(t, strings.Contains(out, "▶") || strings.Contains(out, "⏸"))
}

func TestView_RateLabelsFollowConfiguredRates(t *testing.T) {
	eng := engine.NewMock()
	sess := session.New(eng, media.NewManager(afero.NewMemMapFs()), []float64{0.5, 1.5, 2.0})
	m := New(Params{
		Session:     sess,
		Engine:      eng,
		Coordinator: fullscreen.NewCoordinator(fullscreen.NewEngineAdapter(eng), sess),
		Dispatcher: input.NewDispatcher(
			keymap.NewResolver(keymap.All),
			time.Second, 10*time.Second,
			sess.Rates(),
		),
	})
	m.Width = 100

	out := m.View()
	assert.Contains(t, out, "Playback rate 1.5x")
	assert.Contains(t, out, "Playback rate 2x")
	assert.NotContains(t, out, "0.75x")
}

func TestNotificationLifecycle(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.notify("something went wrong")
	require.NotNil(t, cmd)
	require.Len(t, m.Notifications, 1)

	next, _ := m.Update(NotificationClearMsg{ID: m.Notifications[0].ID})
	m = next.(Model)
	assert.Empty(t, m.Notifications)
}
