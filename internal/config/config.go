package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRefreshInterval = 5 * time.Second
	MinRefreshInterval     = time.Second
	DefaultLogLevel        = "info"
	DefaultPaletteBackend  = "auto"
)

// LoggingConfig configures the window action log.
type LoggingConfig struct {
	// Enabled turns action logging on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: <user config dir>/frameless/actions.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
	// PreviewLength caps logged window titles (default: 50)
	PreviewLength int `yaml:"preview_length,omitempty"`
}

// Config is the effective frameless configuration.
type Config struct {
	// AutoBorderlessApps lists process names (without extension) whose
	// windows are made borderless as soon as they appear.
	AutoBorderlessApps []string `yaml:"auto_borderless_apps"`
	// ResizeToScreen makes newly borderless windows fill a display.
	ResizeToScreen bool `yaml:"resize_to_screen"`
	// Display is the index, in sorted display order, of the display to
	// fill. Out-of-range indexes fall back to the primary screen.
	Display         int           `yaml:"display"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	LogLevel        string        `yaml:"log_level"`
	RunOnStartup    bool          `yaml:"run_on_startup"`
	StartupAdmin    bool          `yaml:"startup_admin"`
	// ToggleHotkey toggles the focused window from the daemon, e.g.
	// "Mod4-Shift-b". Empty disables it. X11 only.
	ToggleHotkey string `yaml:"toggle_hotkey,omitempty"`
	// PaletteHotkey opens the window palette from the daemon. X11 only.
	PaletteHotkey string `yaml:"palette_hotkey,omitempty"`
	// PaletteBackend is the launcher used by "frameless pick": auto,
	// rofi, fuzzel, wofi or dmenu.
	PaletteBackend string        `yaml:"palette_backend,omitempty"`
	Logging        LoggingConfig `yaml:"logging,omitempty"`

	// path is where the config was loaded from; Save writes back there.
	path string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		AutoBorderlessApps: []string{},
		ResizeToScreen:     true,
		Display:            0,
		RefreshInterval:    DefaultRefreshInterval,
		LogLevel:           DefaultLogLevel,
		PaletteBackend:     DefaultPaletteBackend,
	}
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.AutoBorderlessApps = slices.Clone(c.AutoBorderlessApps)
	return &out
}

// IsAutoBorderless reports whether process is in the always-borderless list.
// Matching is exact.
func (c *Config) IsAutoBorderless(process string) bool {
	return slices.Contains(c.AutoBorderlessApps, process)
}

// AddAutoBorderless appends process to the always-borderless list. It
// reports false when the name is empty or already listed.
func (c *Config) AddAutoBorderless(process string) bool {
	if strings.TrimSpace(process) == "" || c.IsAutoBorderless(process) {
		return false
	}
	c.AutoBorderlessApps = append(c.AutoBorderlessApps, process)
	return true
}

// RemoveAutoBorderless removes every occurrence of process. It reports
// whether anything was removed.
func (c *Config) RemoveAutoBorderless(process string) bool {
	before := len(c.AutoBorderlessApps)
	c.AutoBorderlessApps = slices.DeleteFunc(c.AutoBorderlessApps, func(app string) bool {
		return app == process
	})
	return len(c.AutoBorderlessApps) != before
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		dir, err := DataDir()
		if err != nil {
			// Last resort fallback - use current directory
			dir = "."
		}
		cfg.File = filepath.Join(dir, "actions.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.PreviewLength == 0 {
		cfg.PreviewLength = 50
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// Save writes the configuration back to the file it was loaded from, or
// to the default location.
//
// Note: this marshals the effective config and will not preserve comments
// from the original YAML.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	return c.SaveTo(path)
}

// SaveTo validates and writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	c.path = path
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	for i, app := range c.AutoBorderlessApps {
		if strings.TrimSpace(app) == "" {
			return &ValidationError{Path: "auto_borderless_apps", Err: fmt.Errorf("entry %d is empty", i)}
		}
	}
	if c.Display < 0 {
		return &ValidationError{Path: "display", Err: fmt.Errorf("display must be >= 0")}
	}
	if c.RefreshInterval < MinRefreshInterval {
		return &ValidationError{Path: "refresh_interval", Err: fmt.Errorf("refresh_interval must be at least %s", MinRefreshInterval)}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.StartupAdmin && !c.RunOnStartup {
		return &ValidationError{Path: "startup_admin", Err: fmt.Errorf("startup_admin requires run_on_startup")}
	}
	switch c.PaletteBackend {
	case "", "auto", "rofi", "fuzzel", "wofi", "dmenu":
	default:
		return &ValidationError{Path: "palette_backend", Err: fmt.Errorf("palette_backend must be one of: auto, rofi, fuzzel, wofi, dmenu")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("logging.level must be one of: debug, info, warn, error")}
	}
	return nil
}
