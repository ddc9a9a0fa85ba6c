package engine

import (
	"sync"
	"time"

	"github.com/llehouerou/reel/internal/input"
)

// Mock is a test double for the engine.
type Mock struct {
	mu  sync.Mutex
	gen int

	loadCalls    []string
	unloadCalls  int
	playCalls    int
	pauseCalls   int
	seekCalls    []time.Duration
	rateCalls    []float64
	fsCalls      []bool
	overlayTexts []string
	overlayClear int

	loadErr error
	playErr error
	seekErr error
	fsErr   error

	subs   []*Subscription
	closed bool
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return m.loadErr
	}
	m.gen++
	m.loadCalls = append(m.loadCalls, path)
	return nil
}

func (m *Mock) Unload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.unloadCalls++
	return nil
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playErr != nil {
		return m.playErr
	}
	m.playCalls++
	return nil
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	return nil
}

func (m *Mock) SeekTo(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seekErr != nil {
		return m.seekErr
	}
	m.seekCalls = append(m.seekCalls, pos)
	return nil
}

func (m *Mock) SetRate(rate float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateCalls = append(m.rateCalls, rate)
	return nil
}

func (m *Mock) RequestFullscreen(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fsErr != nil {
		return m.fsErr
	}
	m.fsCalls = append(m.fsCalls, on)
	return nil
}

func (m *Mock) ShowOverlay(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlayTexts = append(m.overlayTexts, text)
	return nil
}

func (m *Mock) ClearOverlay() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlayClear++
	return nil
}

func (m *Mock) Generation() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

func (m *Mock) Subscribe() *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := newSubscription()
	m.subs = append(m.subs, sub)
	return sub
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, sub := range m.subs {
		sub.close()
	}
	m.subs = nil
	return nil
}

func (m *Mock) publish(e Event) {
	m.mu.Lock()
	subs := make([]*Subscription, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()
	for _, sub := range subs {
		sub.send(e)
	}
}

// Test helpers

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetSeekError(err error) { m.seekErr = err }

func (m *Mock) SetFullscreenError(err error) { m.fsErr = err }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) UnloadCalls() int { return m.unloadCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) RateCalls() []float64 { return m.rateCalls }

func (m *Mock) FullscreenCalls() []bool { return m.fsCalls }

func (m *Mock) OverlayTexts() []string { return m.overlayTexts }

func (m *Mock) OverlayClears() int { return m.overlayClear }

// SimulateTime publishes a TimeUpdate for the current generation.
func (m *Mock) SimulateTime(pos time.Duration) {
	m.publish(TimeUpdate{Gen: m.Generation(), Position: pos})
}

// SimulateStaleTime publishes a TimeUpdate for an older generation.
func (m *Mock) SimulateStaleTime(gen int, pos time.Duration) {
	m.publish(TimeUpdate{Gen: gen, Position: pos})
}

// SimulateDuration publishes a DurationKnown for the current generation.
func (m *Mock) SimulateDuration(d time.Duration) {
	m.publish(DurationKnown{Gen: m.Generation(), Duration: d})
}

// SimulatePause publishes a PauseChange confirmation.
func (m *Mock) SimulatePause(paused bool) {
	m.publish(PauseChange{Gen: m.Generation(), Paused: paused})
}

// SimulateRate publishes a RateChange confirmation.
func (m *Mock) SimulateRate(rate float64) {
	m.publish(RateChange{Gen: m.Generation(), Rate: rate})
}

// SimulateEnded publishes an Ended event.
func (m *Mock) SimulateEnded() {
	m.publish(Ended{Gen: m.Generation()})
}

// SimulateFullscreen publishes a FullscreenChange notification.
func (m *Mock) SimulateFullscreen(on bool) {
	m.publish(FullscreenChange{On: on})
}

// SimulateKey publishes a forwarded window key edge.
func (m *Mock) SimulateKey(ev input.KeyEvent) {
	m.publish(Key{Event: ev})
}

// SimulateError publishes a RequestError.
func (m *Mock) SimulateError(op string, err error) {
	m.publish(RequestError{Op: op, Err: err})
}
