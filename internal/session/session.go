package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/reel/internal/engine"
	"github.com/llehouerou/reel/internal/media"
)

// DefaultRates is the playback rate set used when none is configured.
var DefaultRates = []float64{0.5, 0.75, 1.0}

// Session is the single owner of mutable playback state.
//
// Commands are requests to the engine; the state they affect moves only when
// the engine confirms through an event handler. Handlers are fed from the
// application's dispatch loop in arrival order; events whose generation
// predates the current source are discarded so a replaced source can never
// resurrect its state.
type Session struct {
	mu sync.RWMutex

	engine engine.Interface
	media  *media.Manager
	rates  []float64

	state State
	gen   int
	// pending is the last requested seek target, used as the base for skip
	// arithmetic until the engine reports a position again.
	pending *time.Duration

	subsMu sync.RWMutex
	subs   []*Subscription
	closed bool
}

// New creates a session over the given engine and media manager.
func New(eng engine.Interface, mgr *media.Manager, rates []float64) *Session {
	if len(rates) == 0 {
		rates = DefaultRates
	}
	rate := rates[len(rates)-1]
	if slices.Contains(rates, 1.0) {
		rate = 1.0
	}
	return &Session{
		engine: eng,
		media:  mgr,
		rates:  slices.Clone(rates),
		state:  State{Rate: rate},
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Playing returns whether the engine has confirmed playback.
func (s *Session) Playing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Playing
}

// Position returns the last engine-reported position.
func (s *Session) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Position
}

// Duration returns the media duration, 0 while unknown.
func (s *Session) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Duration
}

// Fullscreen returns the last observed window fullscreen state.
func (s *Session) Fullscreen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Fullscreen
}

// CurrentRate returns the engine-confirmed playback rate.
func (s *Session) CurrentRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Rate
}

// Rates returns the configured rate set.
func (s *Session) Rates() []float64 {
	return slices.Clone(s.rates)
}

// Source returns the current media handle, nil if none.
func (s *Session) Source() *media.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Source
}

// Toggle requests play or pause depending on the confirmed state. No-op
// without a source.
func (s *Session) Toggle() error {
	s.mu.RLock()
	hasSource := s.state.HasSource()
	playing := s.state.Playing
	s.mu.RUnlock()
	if !hasSource {
		return nil
	}
	if playing {
		return s.engine.Pause()
	}
	return s.engine.Play()
}

// Play requests playback. No-op without a source.
func (s *Session) Play() error {
	if !s.Snapshot().HasSource() {
		return nil
	}
	return s.engine.Play()
}

// Pause requests a pause. No-op without a source.
func (s *Session) Pause() error {
	if !s.Snapshot().HasSource() {
		return nil
	}
	return s.engine.Pause()
}

// SeekTo requests an absolute seek, clamped to [0, duration].
func (s *Session) SeekTo(pos time.Duration) error {
	s.mu.Lock()
	if !s.state.HasSource() {
		s.mu.Unlock()
		return nil
	}
	target := clampPosition(pos, s.state.Duration)
	s.pending = &target
	s.mu.Unlock()

	if err := s.engine.SeekTo(target); err != nil {
		s.mu.Lock()
		s.pending = nil
		s.mu.Unlock()
		return err
	}
	return nil
}

// Skip requests a relative seek. The base is the last requested seek target
// when one is still awaiting an engine report, otherwise the last reported
// position, so rapid skips accumulate instead of re-seeking from a stale
// clock.
func (s *Session) Skip(delta time.Duration) error {
	s.mu.RLock()
	base := s.state.Position
	if s.pending != nil {
		base = *s.pending
	}
	s.mu.RUnlock()
	return s.SeekTo(base + delta)
}

// SetRate requests a playback rate from the configured set.
func (s *Session) SetRate(rate float64) error {
	if !slices.Contains(s.rates, rate) {
		return fmt.Errorf("unsupported rate %v", rate)
	}
	return s.engine.SetRate(rate)
}

// OpenFile loads the file at path, replacing any current source. The swap is
// atomic: the old handle is released and state reset under one critical
// section, so no observer ever sees a released handle or stale positions.
func (s *Session) OpenFile(path string) error {
	h, err := s.media.Open(path)
	if err != nil {
		return err
	}
	if err := s.engine.Load(path); err != nil {
		s.media.Release(h)
		return err
	}

	s.mu.Lock()
	old := s.state.Source
	s.state.Source = s.media.Replace(old, h)
	s.state.Playing = false
	s.state.Position = 0
	s.state.Duration = 0
	s.pending = nil
	s.gen = s.engine.Generation()
	snap := s.state
	s.mu.Unlock()

	s.publishSource(SourceChange{Previous: old, Current: h})
	s.publishState(snap)
	return nil
}

// CloseFile unloads the engine and releases the current source, returning to
// the no-media state.
func (s *Session) CloseFile() error {
	if !s.Snapshot().HasSource() {
		return nil
	}
	if err := s.engine.Unload(); err != nil {
		return err
	}

	s.mu.Lock()
	old := s.state.Source
	s.media.Release(old)
	s.state.Source = nil
	s.state.Playing = false
	s.state.Position = 0
	s.state.Duration = 0
	s.pending = nil
	s.gen = s.engine.Generation()
	snap := s.state
	s.mu.Unlock()

	s.publishSource(SourceChange{Previous: old, Current: nil})
	s.publishState(snap)
	return nil
}

// Subscribe creates a new event subscription.
func (s *Session) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close releases the current source and shuts down subscriptions.
func (s *Session) Close() error {
	s.mu.Lock()
	s.media.Release(s.state.Source)
	s.state.Source = nil
	s.mu.Unlock()

	s.subsMu.Lock()
	if s.closed {
		s.subsMu.Unlock()
		return nil
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()
	return nil
}

// --- Engine event handlers ---
//
// Called from the application's dispatch loop, one event at a time, in
// arrival order.

// HandleTimeUpdate records an engine-reported position. Clears the pending
// seek target: the engine is the source of truth again.
func (s *Session) HandleTimeUpdate(gen int, pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || !s.state.HasSource() {
		return
	}
	s.state.Position = clampPosition(pos, s.state.Duration)
	s.pending = nil
}

// HandleDurationKnown records the media duration and re-clamps the position.
func (s *Session) HandleDurationKnown(gen int, d time.Duration) {
	s.mu.Lock()
	if gen != s.gen || !s.state.HasSource() {
		s.mu.Unlock()
		return
	}
	s.state.Duration = d
	s.state.Position = clampPosition(s.state.Position, d)
	snap := s.state
	s.mu.Unlock()
	s.publishState(snap)
}

// HandlePauseChange applies the engine's confirmation of its actual paused
// condition. This is the only path on which Playing becomes true.
func (s *Session) HandlePauseChange(gen int, paused bool) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	playing := !paused && s.state.HasSource()
	if playing == s.state.Playing {
		s.mu.Unlock()
		return
	}
	s.state.Playing = playing
	snap := s.state
	s.mu.Unlock()
	s.publishState(snap)
}

// HandleRateChange applies the engine's confirmed playback rate.
func (s *Session) HandleRateChange(gen int, rate float64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.state.Rate = rate
	snap := s.state
	s.mu.Unlock()
	s.publishState(snap)
}

// HandleEnded forces playing=false when the media finishes.
func (s *Session) HandleEnded(gen int) {
	s.mu.Lock()
	if gen != s.gen || !s.state.HasSource() {
		s.mu.Unlock()
		return
	}
	s.state.Playing = false
	if s.state.Duration > 0 {
		s.state.Position = s.state.Duration
	}
	snap := s.state
	s.mu.Unlock()
	s.publishState(snap)
}

// HandleFullscreenChange records the window's actual fullscreen state. The
// sole writer of the fullscreen field; it never touches playback state, so a
// platform-initiated exit does not pause.
func (s *Session) HandleFullscreenChange(on bool) {
	s.mu.Lock()
	if s.state.Fullscreen == on {
		s.mu.Unlock()
		return
	}
	s.state.Fullscreen = on
	snap := s.state
	s.mu.Unlock()
	s.publishState(snap)
}

// HandleRequestError surfaces a rejected engine request. No rollback is
// needed: state only moves on confirmations, so a failed request simply
// never takes effect.
func (s *Session) HandleRequestError(op string, err error) {
	s.publishError(ErrorEvent{Operation: op, Err: err})
}

// Generation returns the session's accepted event generation.
func (s *Session) Generation() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

func (s *Session) publishState(snap State) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(StateChange{State: snap})
	}
}

func (s *Session) publishSource(e SourceChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendSource(e)
	}
}

func (s *Session) publishError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
