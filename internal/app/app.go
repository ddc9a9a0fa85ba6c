// internal/app/app.go
package app

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/engine"
	"github.com/llehouerou/reel/internal/fullscreen"
	"github.com/llehouerou/reel/internal/input"
	"github.com/llehouerou/reel/internal/session"
)

// videoExtensions are the file types offered by the picker.
var videoExtensions = []string{".mp4", ".mkv", ".webm", ".avi", ".mov", ".m4v"}

// Model is the root application model containing all state.
type Model struct {
	Session     *session.Session
	Engine      engine.Interface
	Coordinator *fullscreen.Coordinator
	Dispatcher  *input.Dispatcher

	Picker     filepicker.Model
	PickerOpen bool

	Notifications   []Notification
	notificationSeq int64

	engineSub *engine.Subscription

	Width  int
	Height int
}

// Params bundles the collaborators the model drives.
type Params struct {
	Session     *session.Session
	Engine      engine.Interface
	Coordinator *fullscreen.Coordinator
	Dispatcher  *input.Dispatcher
	StartDir    string
}

// New creates the root model.
func New(p Params) Model {
	fp := filepicker.New()
	fp.AllowedTypes = videoExtensions
	fp.ShowHidden = false
	if p.StartDir != "" {
		fp.CurrentDirectory = p.StartDir
	} else if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	return Model{
		Session:     p.Session,
		Engine:      p.Engine,
		Coordinator: p.Coordinator,
		Dispatcher:  p.Dispatcher,
		Picker:      fp,
		engineSub:   p.Engine.Subscribe(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(WatchEngineEvents(m.engineSub), TickCmd())
}

// notify appends a transient notification and returns its clear command.
func (m *Model) notify(message string) tea.Cmd {
	m.notificationSeq++
	id := m.notificationSeq
	m.Notifications = append(m.Notifications, Notification{ID: id, Message: message})
	return NotificationClearCmd(id)
}

func (m *Model) clearNotification(id int64) {
	for i, n := range m.Notifications {
		if n.ID == id {
			m.Notifications = append(m.Notifications[:i], m.Notifications[i+1:]...)
			return
		}
	}
}
