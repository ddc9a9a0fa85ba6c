package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Mpv settings
	Mpv MpvConfig `koanf:"mpv"`

	// Playback settings
	Playback PlaybackConfig `koanf:"playback"`

	StartDir string `koanf:"start_dir"` // initial directory for the file picker (default: cwd)
	LogFile  string `koanf:"log_file"`  // override for the log file path
}

// MpvConfig holds settings for the spawned mpv process.
type MpvConfig struct {
	Binary     string `koanf:"binary"`      // mpv binary path or name (default: "mpv")
	SocketPath string `koanf:"socket_path"` // IPC socket path (default: under the temp dir)
	Title      string `koanf:"title"`       // window title
}

// PlaybackConfig holds seek step and rate settings.
type PlaybackConfig struct {
	SkipSmall float64   `koanf:"skip_small"` // small skip step in seconds (default: 1)
	SkipBig   float64   `koanf:"skip_big"`   // big skip step in seconds (default: 10)
	Rates     []float64 `koanf:"rates"`      // selectable playback rates (default: 0.5, 0.75, 1.0)
}

// SmallStep returns the small skip step as a duration.
func (p PlaybackConfig) SmallStep() time.Duration {
	return secondsToDuration(p.SkipSmall, time.Second)
}

// BigStep returns the big skip step as a duration.
func (p PlaybackConfig) BigStep() time.Duration {
	return secondsToDuration(p.SkipBig, 10*time.Second)
}

func secondsToDuration(s float64, fallback time.Duration) time.Duration {
	if s <= 0 {
		return fallback
	}
	return time.Duration(s * float64(time.Second))
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Mpv: MpvConfig{
			Binary:     "mpv",
			SocketPath: filepath.Join(os.TempDir(), "reel-mpv.sock"),
			Title:      "reel",
		},
		Playback: PlaybackConfig{
			SkipSmall: 1,
			SkipBig:   10,
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.StartDir != "" {
		cfg.StartDir = expandPath(cfg.StartDir)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{
		// 1. $XDG_CONFIG_HOME/reel/config.toml
		filepath.Join(xdg.ConfigHome, "reel", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// LogPath returns the log file path, defaulting to the XDG state dir.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(xdg.StateHome, "reel", "reel.log")
}
