package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	auto_borderless_apps
//	resize_to_screen
//	display
//	refresh_interval
//	log_level
//	run_on_startup
//	startup_admin
//	toggle_hotkey
//	palette_hotkey
//	palette_backend
//	logging.enabled
//	logging.level
//	logging.file
//	logging.max_size_mb
//	logging.max_files
//	logging.preview_length
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if parts[0] == "logging" {
		return lookupLogging(cfg, parts)
	}
	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch parts[0] {
	case "auto_borderless_apps":
		return cfg.AutoBorderlessApps, nil
	case "resize_to_screen":
		return cfg.ResizeToScreen, nil
	case "display":
		return cfg.Display, nil
	case "refresh_interval":
		return cfg.RefreshInterval.String(), nil
	case "log_level":
		return cfg.LogLevel, nil
	case "run_on_startup":
		return cfg.RunOnStartup, nil
	case "startup_admin":
		return cfg.StartupAdmin, nil
	case "toggle_hotkey":
		return cfg.ToggleHotkey, nil
	case "palette_hotkey":
		return cfg.PaletteHotkey, nil
	case "palette_backend":
		return cfg.PaletteBackend, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

// lookupLogging reports the effective logging values, defaults applied.
func lookupLogging(cfg *Config, parts []string) (any, error) {
	logging := cfg.GetLoggingConfig()
	if len(parts) == 1 {
		return logging, nil
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("unknown path: %s", strings.Join(parts, "."))
	}
	switch parts[1] {
	case "enabled":
		return logging.Enabled, nil
	case "level":
		return logging.Level, nil
	case "file":
		return logging.File, nil
	case "max_size_mb":
		return logging.MaxSizeMB, nil
	case "max_files":
		return logging.MaxFiles, nil
	case "preview_length":
		return logging.PreviewLength, nil
	default:
		return nil, fmt.Errorf("unknown logging field %q", parts[1])
	}
}
