package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/reel/internal/input"
)

// Observed property ids. mpv echoes these in property-change events.
const (
	propTimePos = iota + 1
	propDuration
	propPause
	propSpeed
	propEOF
	propFullscreen
)

const (
	dialAttempts     = 25
	dialRetryDelay   = 200 * time.Millisecond
	overlayDuration  = 1500 // ms, refreshed on every tick while fullscreen
	errClosedMessage = "engine closed"
)

// Options configures the mpv engine.
type Options struct {
	BinaryPath string // mpv executable, defaults to "mpv"
	SocketPath string // IPC socket path
	Title      string // window title
	// ForwardKeys lists key names (in our keymap notation) whose down/up
	// edges the video window forwards to us. Defaults to the standard map.
	ForwardKeys []string
}

// Mpv drives an mpv process over its JSON IPC socket.
type Mpv struct {
	opts       Options
	cmd        *exec.Cmd
	conn       net.Conn
	enc        *json.Encoder
	scriptPath string

	mu      sync.Mutex
	nextID  int64
	pending map[int64]pendingRequest
	// gen is the generation handed out to the session on Load. eventGen
	// tags outgoing property events and trails gen until mpv confirms the
	// load, so events mpv emitted for the replaced media keep the old tag.
	gen      int
	eventGen int
	closed   bool

	subsMu sync.RWMutex
	subs   []*Subscription
}

// pendingRequest matches a command reply back to its origin. gen, when
// non-zero, is the generation to promote once mpv acknowledges the request.
type pendingRequest struct {
	op  string
	gen int
}

// request is one IPC command line.
type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// message is one IPC line from mpv: either a command reply (RequestID set)
// or an asynchronous event.
type message struct {
	Event     string          `json:"event"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	RequestID int64           `json:"request_id"`
	Args      []string        `json:"args"`
}

// Start launches mpv idle with a forced window, connects to its IPC socket
// and begins observing playback properties.
func Start(opts Options) (*Mpv, error) {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "mpv"
	}
	if opts.SocketPath == "" {
		opts.SocketPath = filepath.Join(os.TempDir(), "reel-mpv.sock")
	}

	scriptPath, err := writeInputScript(opts.ForwardKeys)
	if err != nil {
		return nil, fmt.Errorf("write input script: %w", err)
	}

	// Stale socket from a previous run would break the dial below.
	if _, err := os.Stat(opts.SocketPath); err == nil {
		os.Remove(opts.SocketPath)
	}

	args := []string{
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--pause",
		"--no-terminal",
		"--input-ipc-server=" + opts.SocketPath,
		"--script=" + scriptPath,
	}
	if opts.Title != "" {
		args = append(args, "--title="+opts.Title)
	}

	cmd := exec.Command(opts.BinaryPath, args...)
	if err := cmd.Start(); err != nil {
		os.Remove(scriptPath)
		return nil, fmt.Errorf("start %s: %w", opts.BinaryPath, err)
	}

	conn, err := dialSocket(opts.SocketPath)
	if err != nil {
		_ = cmd.Process.Kill()
		os.Remove(scriptPath)
		return nil, fmt.Errorf("connect to mpv: %w", err)
	}

	m := &Mpv{
		opts:       opts,
		cmd:        cmd,
		conn:       conn,
		enc:        json.NewEncoder(conn),
		scriptPath: scriptPath,
		pending:    make(map[int64]pendingRequest),
	}

	observed := []struct {
		id   int
		name string
	}{
		{propTimePos, "time-pos"},
		{propDuration, "duration"},
		{propPause, "pause"},
		{propSpeed, "speed"},
		{propEOF, "eof-reached"},
		{propFullscreen, "fullscreen"},
	}
	for _, p := range observed {
		if err := m.command("observe "+p.name, "observe_property", p.id, p.name); err != nil {
			m.Close()
			return nil, err
		}
	}

	go m.readLoop()
	go m.waitProcess()

	log.Debug().Str("socket", opts.SocketPath).Msg("mpv engine started")
	return m, nil
}

// dialSocket connects to the IPC socket, retrying while mpv starts up.
func dialSocket(path string) (net.Conn, error) {
	var conn net.Conn
	var err error
	for i := 0; i < dialAttempts; i++ {
		conn, err = net.Dial("unix", path)
		if err == nil {
			return conn, nil
		}
		time.Sleep(dialRetryDelay)
	}
	return nil, err
}

// command sends one fire-and-forget request. A nil return means the request
// was written; rejection arrives later as a RequestError event matched via
// the request id.
func (m *Mpv) command(op string, args ...any) error {
	return m.commandGen(op, 0, args...)
}

// commandGen is command with a generation to promote on the success reply.
func (m *Mpv) commandGen(op string, targetGen int, args ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return RequestError{Op: op, Err: errors.New(errClosedMessage)}
	}
	m.nextID++
	id := m.nextID
	m.pending[id] = pendingRequest{op: op, gen: targetGen}
	if err := m.enc.Encode(request{Command: args, RequestID: id}); err != nil {
		delete(m.pending, id)
		return RequestError{Op: op, Err: err}
	}
	return nil
}

// Load replaces the current media, paused at the start. The new generation
// takes effect for event tagging only once mpv acknowledges the loadfile,
// so events still in flight for the replaced media carry the old one.
func (m *Mpv) Load(path string) error {
	m.mu.Lock()
	m.gen++
	target := m.gen
	m.mu.Unlock()
	if err := m.command("pause", "set_property", "pause", true); err != nil {
		return err
	}
	return m.commandGen("load file", target, "loadfile", path, "replace")
}

// Unload stops playback and drops the current media.
func (m *Mpv) Unload() error {
	m.mu.Lock()
	m.gen++
	target := m.gen
	m.mu.Unlock()
	return m.commandGen("unload", target, "stop")
}

func (m *Mpv) Play() error {
	return m.command("play", "set_property", "pause", false)
}

func (m *Mpv) Pause() error {
	return m.command("pause", "set_property", "pause", true)
}

func (m *Mpv) SeekTo(pos time.Duration) error {
	return m.command("seek", "seek", pos.Seconds(), "absolute")
}

func (m *Mpv) SetRate(rate float64) error {
	return m.command("set rate", "set_property", "speed", rate)
}

func (m *Mpv) RequestFullscreen(on bool) error {
	return m.command("fullscreen", "set_property", "fullscreen", on)
}

func (m *Mpv) ShowOverlay(text string) error {
	return m.command("overlay", "show-text", text, overlayDuration)
}

func (m *Mpv) ClearOverlay() error {
	return m.command("overlay", "show-text", "", 0)
}

// Generation returns the current media load generation.
func (m *Mpv) Generation() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// Subscribe creates a new event subscription.
func (m *Mpv) Subscribe() *Subscription {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	sub := newSubscription()
	m.subs = append(m.subs, sub)
	return sub
}

// Close shuts down the engine and the mpv process.
func (m *Mpv) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	if m.conn != nil {
		m.conn.Close()
	}
	if m.cmd != nil && m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
	if m.scriptPath != "" {
		os.Remove(m.scriptPath)
	}
	os.Remove(m.opts.SocketPath)

	m.closeSubs()
	return nil
}

func (m *Mpv) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mpv) closeSubs() {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for _, sub := range m.subs {
		sub.close()
	}
	m.subs = nil
}

// publish delivers an event to all subscribers in arrival order.
func (m *Mpv) publish(e Event) {
	m.subsMu.RLock()
	defer m.subsMu.RUnlock()
	for _, sub := range m.subs {
		sub.send(e)
	}
}

// waitProcess reaps the mpv process and tears the engine down if it exits
// underneath us.
func (m *Mpv) waitProcess() {
	err := m.cmd.Wait()
	if !m.isClosed() {
		log.Warn().Err(err).Msg("mpv exited unexpectedly")
		m.closeSubs()
	}
}

// readLoop decodes IPC lines until the connection drops.
func (m *Mpv) readLoop() {
	dec := json.NewDecoder(m.conn)
	for {
		var msg message
		if err := dec.Decode(&msg); err != nil {
			if !m.isClosed() {
				log.Warn().Err(err).Msg("mpv connection lost")
				m.closeSubs()
			}
			return
		}
		m.handleMessage(&msg)
	}
}

func (m *Mpv) handleMessage(msg *message) {
	if msg.Event == "" {
		m.handleReply(msg)
		return
	}

	switch msg.Event {
	case "property-change":
		m.handleProperty(msg)
	case "client-message":
		m.handleClientMessage(msg)
	}
}

// handleReply matches a command reply back to its pending request. Failed
// requests surface as RequestError events. A successful load or unload
// promotes its generation: from here on mpv's events are about the new media.
func (m *Mpv) handleReply(msg *message) {
	success := msg.Error == "" || msg.Error == "success"
	m.mu.Lock()
	req, ok := m.pending[msg.RequestID]
	delete(m.pending, msg.RequestID)
	if ok && success && req.gen > m.eventGen {
		m.eventGen = req.gen
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	if !success {
		m.publish(RequestError{Op: req.op, Err: errors.New(msg.Error)})
	}
}

func (m *Mpv) eventGeneration() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventGen
}

func (m *Mpv) handleProperty(msg *message) {
	gen := m.eventGeneration()
	switch msg.Name {
	case "time-pos":
		if pos, ok := decodeFloat(msg.Data); ok {
			m.publish(TimeUpdate{Gen: gen, Position: secondsToDuration(pos)})
		}
	case "duration":
		if d, ok := decodeFloat(msg.Data); ok && d > 0 {
			m.publish(DurationKnown{Gen: gen, Duration: secondsToDuration(d)})
		}
	case "pause":
		if paused, ok := decodeBool(msg.Data); ok {
			m.publish(PauseChange{Gen: gen, Paused: paused})
		}
	case "speed":
		if rate, ok := decodeFloat(msg.Data); ok {
			m.publish(RateChange{Gen: gen, Rate: rate})
		}
	case "eof-reached":
		if eof, ok := decodeBool(msg.Data); ok && eof {
			m.publish(Ended{Gen: gen})
		}
	case "fullscreen":
		if on, ok := decodeBool(msg.Data); ok {
			m.publish(FullscreenChange{On: on})
		}
	}
}

// handleClientMessage forwards key edges reported by the input script.
func (m *Mpv) handleClientMessage(msg *message) {
	if len(msg.Args) != 3 || msg.Args[0] != scriptMessageName {
		return
	}
	key := normalizeKeyName(msg.Args[1])
	switch msg.Args[2] {
	case "down", "press":
		m.publish(Key{Event: input.KeyEvent{Key: key, Edge: input.EdgeDown, Origin: input.OriginWindow}})
	case "repeat":
		m.publish(Key{Event: input.KeyEvent{Key: key, Edge: input.EdgeDown, Repeat: true, Origin: input.OriginWindow}})
	case "up":
		m.publish(Key{Event: input.KeyEvent{Key: key, Edge: input.EdgeUp, Origin: input.OriginWindow}})
	}
}

func decodeFloat(data json.RawMessage) (float64, bool) {
	var v float64
	if len(data) == 0 || json.Unmarshal(data, &v) != nil {
		return 0, false
	}
	return v, true
}

func decodeBool(data json.RawMessage) (bool, bool) {
	var v bool
	if len(data) == 0 || json.Unmarshal(data, &v) != nil {
		return false, false
	}
	return v, true
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// normalizeKeyName converts mpv key notation to keymap notation.
func normalizeKeyName(key string) string {
	k := strings.ToLower(key)
	if k == "space" {
		return " "
	}
	return k
}
