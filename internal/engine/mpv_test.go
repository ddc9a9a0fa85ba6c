package engine

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/llehouerou/reel/internal/input"
)

func testEngine() *Mpv {
	return &Mpv{
		enc:     json.NewEncoder(io.Discard),
		pending: make(map[int64]pendingRequest),
	}
}

func recvEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case e := <-sub.Events:
		return e
	default:
		t.Fatal("no event delivered")
		return nil
	}
}

func noEvent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case e := <-sub.Events:
		t.Fatalf("unexpected event %#v", e)
	default:
	}
}

func TestHandleProperty_TimePos(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	m.handleMessage(&message{
		Event: "property-change",
		Name:  "time-pos",
		Data:  json.RawMessage(`12.5`),
	})

	e, ok := recvEvent(t, sub).(TimeUpdate)
	if !ok {
		t.Fatal("expected TimeUpdate")
	}
	if e.Position != 12500*time.Millisecond {
		t.Errorf("Position = %v, want 12.5s", e.Position)
	}
}

func TestHandleProperty_TimePosNull(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	// mpv reports null for time-pos while idle.
	m.handleMessage(&message{
		Event: "property-change",
		Name:  "time-pos",
		Data:  json.RawMessage(`null`),
	})

	noEvent(t, sub)
}

func TestHandleProperty_Duration(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	m.handleMessage(&message{
		Event: "property-change",
		Name:  "duration",
		Data:  json.RawMessage(`120`),
	})

	e, ok := recvEvent(t, sub).(DurationKnown)
	if !ok {
		t.Fatal("expected DurationKnown")
	}
	if e.Duration != 2*time.Minute {
		t.Errorf("Duration = %v, want 2m", e.Duration)
	}
}

func TestHandleProperty_PauseAndFullscreen(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	m.handleMessage(&message{Event: "property-change", Name: "pause", Data: json.RawMessage(`false`)})
	m.handleMessage(&message{Event: "property-change", Name: "fullscreen", Data: json.RawMessage(`true`)})

	if e, ok := recvEvent(t, sub).(PauseChange); !ok || e.Paused {
		t.Errorf("expected PauseChange{Paused: false}, got %#v", e)
	}
	if e, ok := recvEvent(t, sub).(FullscreenChange); !ok || !e.On {
		t.Errorf("expected FullscreenChange{On: true}, got %#v", e)
	}
}

func TestHandleProperty_EOFOnlyWhenReached(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	m.handleMessage(&message{Event: "property-change", Name: "eof-reached", Data: json.RawMessage(`false`)})
	noEvent(t, sub)

	m.handleMessage(&message{Event: "property-change", Name: "eof-reached", Data: json.RawMessage(`true`)})
	if _, ok := recvEvent(t, sub).(Ended); !ok {
		t.Error("expected Ended event")
	}
}

func TestHandleReply_ErrorMatchedToRequest(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()
	m.pending[7] = pendingRequest{op: "seek"}

	m.handleMessage(&message{RequestID: 7, Error: "property unavailable"})

	e, ok := recvEvent(t, sub).(RequestError)
	if !ok {
		t.Fatal("expected RequestError")
	}
	if e.Op != "seek" {
		t.Errorf("Op = %q, want seek", e.Op)
	}
	if len(m.pending) != 0 {
		t.Error("pending request should be cleared")
	}
}

func TestHandleReply_SuccessSilent(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()
	m.pending[3] = pendingRequest{op: "play"}

	m.handleMessage(&message{RequestID: 3, Error: "success"})

	noEvent(t, sub)
	if len(m.pending) != 0 {
		t.Error("pending request should be cleared on success too")
	}
}

func TestLoad_EventsBeforeConfirmKeepOldGeneration(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	if err := m.Load("/v/new.mp4"); err != nil {
		t.Fatal(err)
	}
	newGen := m.Generation()

	// A time-pos update mpv emitted for the replaced media, still queued on
	// the socket when Load was issued, must not carry the new generation.
	m.handleMessage(&message{Event: "property-change", Name: "time-pos", Data: json.RawMessage(`50`)})
	e, ok := recvEvent(t, sub).(TimeUpdate)
	if !ok {
		t.Fatal("expected TimeUpdate")
	}
	if e.Gen == newGen {
		t.Errorf("pre-confirm event tagged with new generation %d", e.Gen)
	}

	// Load issues pause then loadfile; the loadfile success reply promotes
	// the generation, and events from here on are about the new media.
	m.handleMessage(&message{RequestID: 1, Error: "success"})
	m.handleMessage(&message{RequestID: 2, Error: "success"})

	m.handleMessage(&message{Event: "property-change", Name: "time-pos", Data: json.RawMessage(`0`)})
	e, ok = recvEvent(t, sub).(TimeUpdate)
	if !ok {
		t.Fatal("expected TimeUpdate")
	}
	if e.Gen != newGen {
		t.Errorf("post-confirm event Gen = %d, want %d", e.Gen, newGen)
	}
}

func TestLoad_FailedLoadDoesNotPromoteGeneration(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	if err := m.Load("/v/new.mp4"); err != nil {
		t.Fatal(err)
	}
	newGen := m.Generation()

	m.handleMessage(&message{RequestID: 1, Error: "success"})
	m.handleMessage(&message{RequestID: 2, Error: "error loading file"})

	if _, ok := recvEvent(t, sub).(RequestError); !ok {
		t.Fatal("expected RequestError for the failed load")
	}

	m.handleMessage(&message{Event: "property-change", Name: "time-pos", Data: json.RawMessage(`50`)})
	e, ok := recvEvent(t, sub).(TimeUpdate)
	if !ok {
		t.Fatal("expected TimeUpdate")
	}
	if e.Gen == newGen {
		t.Error("failed load must not promote the event generation")
	}
}

func TestHandleClientMessage_KeyEdges(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	m.handleMessage(&message{Event: "client-message", Args: []string{scriptMessageName, "f", "down"}})
	m.handleMessage(&message{Event: "client-message", Args: []string{scriptMessageName, "f", "repeat"}})
	m.handleMessage(&message{Event: "client-message", Args: []string{scriptMessageName, "f", "up"}})

	want := []input.KeyEvent{
		{Key: "f", Edge: input.EdgeDown, Origin: input.OriginWindow},
		{Key: "f", Edge: input.EdgeDown, Repeat: true, Origin: input.OriginWindow},
		{Key: "f", Edge: input.EdgeUp, Origin: input.OriginWindow},
	}
	for i, w := range want {
		e, ok := recvEvent(t, sub).(Key)
		if !ok {
			t.Fatalf("event %d: expected Key", i)
		}
		if e.Event != w {
			t.Errorf("event %d = %+v, want %+v", i, e.Event, w)
		}
	}
}

func TestHandleClientMessage_IgnoresOtherMessages(t *testing.T) {
	m := testEngine()
	sub := m.Subscribe()

	m.handleMessage(&message{Event: "client-message", Args: []string{"other", "f", "down"}})

	noEvent(t, sub)
}

func TestNormalizeKeyName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"SPACE", " "},
		{"LEFT", "left"},
		{"Shift+LEFT", "shift+left"},
		{"f", "f"},
	}
	for _, tt := range tests {
		if got := normalizeKeyName(tt.in); got != tt.want {
			t.Errorf("normalizeKeyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRequestEncoding(t *testing.T) {
	data, err := json.Marshal(request{Command: []any{"seek", 12.5, "absolute"}, RequestID: 4})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"command":["seek",12.5,"absolute"],"request_id":4}`
	if string(data) != want {
		t.Errorf("encoded request = %s, want %s", data, want)
	}
}

func TestSubscription_OrderPreserved(t *testing.T) {
	sub := newSubscription()

	sub.send(PauseChange{Gen: 1, Paused: false})
	sub.send(TimeUpdate{Gen: 1, Position: time.Second})
	sub.send(Ended{Gen: 1})

	if _, ok := (<-sub.Events).(PauseChange); !ok {
		t.Error("first event should be PauseChange")
	}
	if _, ok := (<-sub.Events).(TimeUpdate); !ok {
		t.Error("second event should be TimeUpdate")
	}
	if _, ok := (<-sub.Events).(Ended); !ok {
		t.Error("third event should be Ended")
	}
}

func TestSubscription_ShedsTimeUpdatesWhenFull(t *testing.T) {
	sub := newSubscription()

	for i := 0; i < eventBufferSize+10; i++ {
		sub.send(TimeUpdate{Gen: 1, Position: time.Duration(i) * time.Second})
	}

	// Buffer holds at most eventBufferSize; the rest were shed, not blocked.
	count := 0
	for {
		select {
		case <-sub.Events:
			count++
			continue
		default:
		}
		break
	}
	if count != eventBufferSize {
		t.Errorf("delivered %d time updates, want %d", count, eventBufferSize)
	}
}

func TestMpvKeyName(t *testing.T) {
	tests := []struct{ in, want string }{
		{" ", "SPACE"},
		{"shift+left", "Shift+LEFT"},
		{"f", "f"},
		{"ctrl+c", ""},
	}
	for _, tt := range tests {
		if got := mpvKeyName(tt.in); got != tt.want {
			t.Errorf("mpvKeyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
