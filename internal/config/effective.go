package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError points at the offending config key and, when known,
// the file position it was read from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig overlays raw onto the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.AutoBorderlessApps != nil {
		cfg.AutoBorderlessApps = dedupe(raw.AutoBorderlessApps)
	}
	if raw.ResizeToScreen != nil {
		cfg.ResizeToScreen = *raw.ResizeToScreen
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.RefreshInterval != nil {
		cfg.RefreshInterval = *raw.RefreshInterval
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.RunOnStartup != nil {
		cfg.RunOnStartup = *raw.RunOnStartup
	}
	if raw.StartupAdmin != nil {
		cfg.StartupAdmin = *raw.StartupAdmin
	}
	if raw.ToggleHotkey != nil {
		cfg.ToggleHotkey = strings.TrimSpace(*raw.ToggleHotkey)
	}
	if raw.PaletteHotkey != nil {
		cfg.PaletteHotkey = strings.TrimSpace(*raw.PaletteHotkey)
	}
	if raw.PaletteBackend != nil {
		cfg.PaletteBackend = strings.ToLower(strings.TrimSpace(*raw.PaletteBackend))
	}

	if l := raw.Logging; l != nil {
		if l.Enabled != nil {
			cfg.Logging.Enabled = *l.Enabled
		}
		if l.Level != nil {
			cfg.Logging.Level = *l.Level
		}
		if l.File != nil {
			cfg.Logging.File = *l.File
		}
		if l.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *l.MaxSizeMB
		}
		if l.MaxFiles != nil {
			cfg.Logging.MaxFiles = *l.MaxFiles
		}
		if l.PreviewLength != nil {
			cfg.Logging.PreviewLength = *l.PreviewLength
		}
	}

	return cfg
}

// dedupe drops repeated entries, keeping first-seen order.
func dedupe(apps []string) []string {
	out := make([]string, 0, len(apps))
	for _, app := range apps {
		if !slices.Contains(out, app) {
			out = append(out, app)
		}
	}
	return out
}
