package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/llehouerou/reel/internal/app"
	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/engine"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/fullscreen"
	"github.com/llehouerou/reel/internal/input"
	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/mpris"
	"github.com/llehouerou/reel/internal/session"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.Logger = zerolog.New(logFile).With().Timestamp().Logger()

	eng, err := engine.Start(engine.Options{
		BinaryPath: cfg.Mpv.Binary,
		SocketPath: cfg.Mpv.SocketPath,
		Title:      cfg.Mpv.Title,
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	mgr := media.NewManager(afero.NewOsFs())
	sess := session.New(eng, mgr, cfg.Playback.Rates)
	defer sess.Close()

	coord := fullscreen.NewCoordinator(fullscreen.NewEngineAdapter(eng), sess)
	disp := input.NewDispatcher(
		keymap.NewResolver(keymap.All),
		cfg.Playback.SmallStep(),
		cfg.Playback.BigStep(),
		sess.Rates(),
	)

	if mprisAdapter, err := mpris.New(sess); err == nil {
		defer mprisAdapter.Close()
	} else {
		log.Warn().Err(err).Msg("mpris adapter unavailable")
	}

	model := app.New(app.Params{
		Session:     sess,
		Engine:      eng,
		Coordinator: coord,
		Dispatcher:  disp,
		StartDir:    cfg.StartDir,
	})

	// Optional initial file from the command line.
	if len(os.Args) > 1 {
		if err := sess.OpenFile(os.Args[1]); err != nil {
			log.Error().Err(err).Str("path", os.Args[1]).Msg("could not open initial file")
			fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpOpenFile, os.Args[1], err))
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}
