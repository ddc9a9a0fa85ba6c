package media

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func newTestManager(t *testing.T, files ...string) *Manager {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewManager(fs)
}

func TestManager_Open(t *testing.T) {
	m := newTestManager(t, "/videos/clip.mp4")

	h, err := m.Open("/videos/clip.mp4")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if h.Path() != "/videos/clip.mp4" {
		t.Errorf("Path() = %q, want /videos/clip.mp4", h.Path())
	}
	if h.Name() != "clip.mp4" {
		t.Errorf("Name() = %q, want clip.mp4", h.Name())
	}
	if h.Size() != 4 {
		t.Errorf("Size() = %d, want 4", h.Size())
	}
	if m.Live() != 1 {
		t.Errorf("Live() = %d, want 1", m.Live())
	}
}

func TestManager_Open_Missing(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Open("/videos/missing.mp4")
	if err == nil {
		t.Fatal("Open() should fail for missing file")
	}

	var resErr *ResourceError
	if !errors.As(err, &resErr) {
		t.Fatalf("Open() error = %T, want *ResourceError", err)
	}
	if resErr.Path != "/videos/missing.mp4" {
		t.Errorf("Path = %q, want /videos/missing.mp4", resErr.Path)
	}
	if m.Live() != 0 {
		t.Errorf("Live() = %d, want 0 after failed open", m.Live())
	}
}

func TestManager_Open_Directory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/videos", 0o755); err != nil {
		t.Fatal(err)
	}
	m := NewManager(fs)

	_, err := m.Open("/videos")
	var resErr *ResourceError
	if !errors.As(err, &resErr) {
		t.Fatalf("Open() on directory error = %v, want *ResourceError", err)
	}
}

func TestManager_OpenThenRelease_NoLeak(t *testing.T) {
	m := newTestManager(t, "/a.mp4")

	h, err := m.Open("/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	m.Release(h)

	if m.Live() != 0 {
		t.Errorf("Live() = %d, want 0 after release", m.Live())
	}
}

func TestManager_Release_Idempotent(t *testing.T) {
	m := newTestManager(t, "/a.mp4")

	h, _ := m.Open("/a.mp4")
	m.Release(h)
	m.Release(h) // must be a no-op
	m.Release(nil)

	if m.Live() != 0 {
		t.Errorf("Live() = %d, want 0", m.Live())
	}
}

func TestManager_Replace(t *testing.T) {
	m := newTestManager(t, "/a.mp4", "/b.webm")

	a, _ := m.Open("/a.mp4")
	b, _ := m.Open("/b.webm")

	got := m.Replace(a, b)

	if got != b {
		t.Error("Replace() should return the new handle")
	}
	if m.Live() != 1 {
		t.Errorf("Live() = %d, want 1 after replace", m.Live())
	}
}

func TestManager_Replace_NoOld(t *testing.T) {
	m := newTestManager(t, "/a.mp4")

	a, _ := m.Open("/a.mp4")
	got := m.Replace(nil, a)

	if got != a {
		t.Error("Replace(nil, a) should return a")
	}
	if m.Live() != 1 {
		t.Errorf("Live() = %d, want 1", m.Live())
	}
}
