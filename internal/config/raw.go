package config

import "time"

// RawConfig mirrors the YAML file. Pointer fields distinguish "unset"
// from zero values so defaults survive partial files.
type RawConfig struct {
	AutoBorderlessApps []string          `yaml:"auto_borderless_apps"`
	ResizeToScreen     *bool             `yaml:"resize_to_screen"`
	Display            *int              `yaml:"display"`
	RefreshInterval    *time.Duration    `yaml:"refresh_interval"`
	LogLevel           *string           `yaml:"log_level"`
	RunOnStartup       *bool             `yaml:"run_on_startup"`
	StartupAdmin       *bool             `yaml:"startup_admin"`
	ToggleHotkey       *string           `yaml:"toggle_hotkey"`
	PaletteHotkey      *string           `yaml:"palette_hotkey"`
	PaletteBackend     *string           `yaml:"palette_backend"`
	Logging            *RawLoggingConfig `yaml:"logging"`
}

// RawLoggingConfig mirrors the logging section.
type RawLoggingConfig struct {
	Enabled       *bool   `yaml:"enabled"`
	Level         *string `yaml:"level"`
	File          *string `yaml:"file"`
	MaxSizeMB     *int    `yaml:"max_size_mb"`
	MaxFiles      *int    `yaml:"max_files"`
	PreviewLength *int    `yaml:"preview_length"`
}
