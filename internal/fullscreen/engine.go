package fullscreen

// fullscreenRequester is the slice of the engine the adapter needs.
type fullscreenRequester interface {
	RequestFullscreen(on bool) error
}

// EngineAdapter exposes an engine's fullscreen control as a Platform.
type EngineAdapter struct {
	engine fullscreenRequester
}

var _ Platform = (*EngineAdapter)(nil)

// NewEngineAdapter wraps the engine's fullscreen request channel.
func NewEngineAdapter(engine fullscreenRequester) *EngineAdapter {
	return &EngineAdapter{engine: engine}
}

func (a *EngineAdapter) RequestEnter() error {
	return a.engine.RequestFullscreen(true)
}

func (a *EngineAdapter) RequestExit() error {
	return a.engine.RequestFullscreen(false)
}
