// Package media owns the lifecycle of locally opened playable resources.
//
// At most one handle is live per session source. A handle must be released
// before it becomes unreachable; Release is idempotent so teardown paths can
// overlap safely.
package media

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// ResourceError reports a file that could not be opened as a playable source.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Handle is an opaque reference to a playable media source.
type Handle struct {
	id   uint64
	path string
	size int64
}

// Path returns the local file path backing the handle.
func (h *Handle) Path() string { return h.path }

// Size returns the file size in bytes at open time.
func (h *Handle) Size() int64 { return h.size }

// Name returns the base name of the backing file.
func (h *Handle) Name() string { return filepath.Base(h.path) }

// Manager allocates and releases playable resource handles.
type Manager struct {
	fs afero.Fs

	mu   sync.Mutex
	live map[uint64]struct{}
	next uint64
}

// NewManager creates a manager backed by the given filesystem.
func NewManager(fs afero.Fs) *Manager {
	return &Manager{
		fs:   fs,
		live: make(map[uint64]struct{}),
	}
}

// Open allocates a new handle for a local file. It fails with ResourceError
// when the file does not exist or is not a regular file; validating the
// container format is the engine's job.
func (m *Manager) Open(path string) (*Handle, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ResourceError{Path: path, Err: fmt.Errorf("not a regular file")}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := &Handle{id: m.next, path: path, size: info.Size()}
	m.live[h.id] = struct{}{}
	return h, nil
}

// Release frees a handle. Releasing nil or an already-released handle is a
// no-op.
func (m *Manager) Release(h *Handle) {
	if h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, h.id)
}

// Replace releases old and leaves next installed as the live source. The
// caller swaps its own reference under the same critical section so no state
// ever points at a released handle.
func (m *Manager) Replace(old, next *Handle) *Handle {
	m.Release(old)
	return next
}

// Live returns the number of live handles. Probe for leak tests.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}
