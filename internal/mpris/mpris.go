//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/reel/internal/session"
)

// Adapter connects the playback session to MPRIS over D-Bus.
type Adapter struct {
	session *session.Session
	server  *server.Server
	done    chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(sess *session.Session) (*Adapter, error) {
	a := &Adapter{
		session: sess,
		done:    make(chan struct{}),
	}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{session: sess}

	a.server = server.NewServer("reel", rootAdapter, playerAdapter)

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Reel", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4", "video/webm", "video/x-matroska"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	session *session.Session
}

func (p *playerAdapter) Next() error {
	return nil // Single-media surface, no queue
}

func (p *playerAdapter) Previous() error {
	return nil
}

func (p *playerAdapter) Pause() error {
	return p.session.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.session.Toggle()
}

func (p *playerAdapter) Stop() error {
	return p.session.CloseFile()
}

func (p *playerAdapter) Play() error {
	return p.session.Play()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.session.Skip(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.session.SeekTo(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap := p.session.Snapshot()
	switch {
	case !snap.HasSource():
		return types.PlaybackStatusStopped, nil
	case snap.Playing:
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusPaused, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.session.CurrentRate(), nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	// Rejected rates are simply ignored at this surface.
	_ = p.session.SetRate(rate)
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.session.Snapshot()
	if !snap.HasSource() {
		return types.Metadata{}, nil
	}

	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.Source.Path())),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   snap.Source.Name(),
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume control not exposed
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.session.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	rates := p.session.Rates()
	if len(rates) == 0 {
		return 1.0, nil
	}
	return rates[0], nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	rates := p.session.Rates()
	if len(rates) == 0 {
		return 1.0, nil
	}
	return rates[len(rates)-1], nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.session.Source() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
