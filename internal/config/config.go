// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/dropdown/internal/wm"
)

// Default configuration values.
const (
	DefaultMarker       = "dropdown"
	DefaultWidth        = 0.30
	DefaultHeight       = 0.40
	DefaultOffsetY      = 35
	DefaultTerminal     = "kitty"
	DefaultAppIDFlag    = "--class"
	DefaultTitleFlag    = "--title"
	DefaultCwdFlag      = "--directory"
	DefaultExecFlag     = "--"
	DefaultNotifyExpiry = 5 * time.Second
)

// Config represents the dropdown configuration.
type Config struct {
	Marker   MarkerConfig   `toml:"marker"`
	Geometry GeometryConfig `toml:"geometry"`
	Terminal TerminalConfig `toml:"terminal"`
	IPC      IPCConfig      `toml:"ipc"`
	Notify   NotifyConfig   `toml:"notify"`
}

// MarkerConfig identifies the overlay window.
type MarkerConfig struct {
	Kind  string `toml:"kind"`  // app_id, title
	Value string `toml:"value"` // Marker string, must be unique among windows
}

// GeometryConfig holds overlay placement defaults.
type GeometryConfig struct {
	Width   float64 `toml:"width"`    // Fraction of output width
	Height  float64 `toml:"height"`   // Fraction of output height
	OffsetY int     `toml:"offset_y"` // Nudge below the cursor, in pixels
	Focus   bool    `toml:"focus"`
}

// TerminalConfig describes how the terminal emulator is launched.
type TerminalConfig struct {
	Command   string `toml:"command"`
	AppIDFlag string `toml:"app_id_flag"`
	TitleFlag string `toml:"title_flag"`
	CwdFlag   string `toml:"cwd_flag"`  // Empty = don't pass a working directory
	ExecFlag  string `toml:"exec_flag"` // Empty = program follows the options directly
}

// IPCConfig holds window-manager connection settings.
type IPCConfig struct {
	Socket       string   `toml:"socket"`        // Auto-detected if empty
	WatchTimeout Duration `toml:"watch_timeout"` // 0 = watch until focus leaves
}

// NotifyConfig controls desktop notifications.
type NotifyConfig struct {
	OnError bool     `toml:"on_error"`
	Expiry  Duration `toml:"expiry"`
}

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "5s", "1m", "1h30m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		*d = 0
		return nil
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m', '1h30m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Marker: MarkerConfig{
			Kind:  string(wm.MarkerAppID),
			Value: DefaultMarker,
		},
		Geometry: GeometryConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			OffsetY: DefaultOffsetY,
			Focus:   true,
		},
		Terminal: TerminalConfig{
			Command:   DefaultTerminal,
			AppIDFlag: DefaultAppIDFlag,
			TitleFlag: DefaultTitleFlag,
			CwdFlag:   DefaultCwdFlag,
			ExecFlag:  DefaultExecFlag,
		},
		IPC: IPCConfig{
			Socket: "", // Auto-detect
		},
		Notify: NotifyConfig{
			OnError: false,
			Expiry:  Duration(DefaultNotifyExpiry),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dropdown", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if _, err := wm.ParseMarkerKind(c.Marker.Kind); err != nil {
		return err
	}
	if c.Marker.Value == "" {
		return errors.New("marker.value must not be empty")
	}
	if c.Geometry.Width < 0 || c.Geometry.Height < 0 {
		return errors.New("geometry.width and geometry.height must not be negative")
	}
	if c.Terminal.Command == "" {
		return errors.New("terminal.command must not be empty")
	}
	if c.IPC.WatchTimeout < 0 {
		return errors.New("ipc.watch_timeout must not be negative")
	}
	return nil
}

// OverlayMarker returns the configured overlay marker.
func (c *Config) OverlayMarker() wm.Marker {
	kind, err := wm.ParseMarkerKind(c.Marker.Kind)
	if err != nil {
		kind = wm.MarkerAppID
	}
	return wm.Marker{Kind: kind, Value: c.Marker.Value}
}
