// Package winlist discovers the top-level windows a user can act on and
// keeps a snapshot of them refreshed off the control goroutine.
package winlist

import (
	"image"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/1broseidon/frameless/internal/platform"
)

// UnknownProcess is reported when a window's owning process cannot be resolved.
const UnknownProcess = "Unknown"

// WindowInfo is a point-in-time view of one top-level window.
type WindowInfo struct {
	ID          platform.WindowID `json:"id"`
	Title       string            `json:"title"`
	ProcessName string            `json:"process"`
	Borderless  bool              `json:"borderless"`
	// Icon is a 16x16 RGBA image, nil when the window has no icon.
	Icon *image.RGBA `json:"-"`
}

// Source is the subset of platform.Backend used for enumeration.
type Source interface {
	TopLevelWindows() ([]platform.WindowID, error)
	IsVisible(id platform.WindowID) bool
	WindowTitle(id platform.WindowID) (string, error)
	WindowPID(id platform.WindowID) (uint32, error)
	IsShellWindow(id platform.WindowID) bool
	WindowStyle(id platform.WindowID) (platform.Style, error)
	WindowIcon(id platform.WindowID) (*image.RGBA, error)
	Processes() (map[uint32]string, error)
}

// Options identify the host application so its own windows are skipped.
type Options struct {
	// SelfName is the host application name. Windows titled exactly this
	// and processes with this name (any case) are excluded.
	SelfName string
	// SelfPID excludes every window owned by the host process.
	SelfPID uint32
	Logger  *slog.Logger
}

// Enumerator produces WindowInfo lists from a Source.
type Enumerator struct {
	src  Source
	opts Options
}

// NewEnumerator returns an Enumerator over src.
func NewEnumerator(src Source, opts Options) *Enumerator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Enumerator{src: src, opts: opts}
}

// Enumerate lists the visible, titled, user-facing top-level windows sorted
// by title. Failures for a single window skip that window or field; a
// failure to list windows at all yields an empty list.
func (e *Enumerator) Enumerate() []WindowInfo {
	ids, err := e.src.TopLevelWindows()
	if err != nil {
		e.opts.Logger.Warn("window enumeration failed", "error", err)
		return []WindowInfo{}
	}

	procs, err := e.src.Processes()
	if err != nil {
		e.opts.Logger.Debug("process snapshot failed", "error", err)
		procs = nil
	}

	windows := make([]WindowInfo, 0, len(ids))
	for _, id := range ids {
		info, ok := e.inspect(id, procs)
		if !ok {
			continue
		}
		windows = append(windows, info)
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Title < windows[j].Title
	})
	return windows
}

func (e *Enumerator) inspect(id platform.WindowID, procs map[uint32]string) (WindowInfo, bool) {
	if !e.src.IsVisible(id) {
		return WindowInfo{}, false
	}

	title, err := e.src.WindowTitle(id)
	if err != nil {
		return WindowInfo{}, false
	}
	if strings.TrimSpace(title) == "" {
		return WindowInfo{}, false
	}
	if e.opts.SelfName != "" && title == e.opts.SelfName {
		return WindowInfo{}, false
	}
	if e.src.IsShellWindow(id) {
		return WindowInfo{}, false
	}

	process := UnknownProcess
	pid, err := e.src.WindowPID(id)
	if err == nil {
		if e.opts.SelfPID != 0 && pid == e.opts.SelfPID {
			return WindowInfo{}, false
		}
		if name, ok := procs[pid]; ok && name != "" {
			process = ProcessName(name)
		}
	}
	if e.opts.SelfName != "" && strings.EqualFold(process, e.opts.SelfName) {
		return WindowInfo{}, false
	}

	style, err := e.src.WindowStyle(id)
	if err != nil {
		e.opts.Logger.Debug("skipping window: style unreadable", "window", id, "error", err)
		return WindowInfo{}, false
	}

	icon, err := e.src.WindowIcon(id)
	if err != nil {
		icon = nil
	}

	return WindowInfo{
		ID:          id,
		Title:       title,
		ProcessName: process,
		Borderless:  !style.Decorated(),
		Icon:        icon,
	}, true
}

var executableExts = map[string]bool{
	".exe": true,
	".com": true,
	".scr": true,
	".bat": true,
	".cmd": true,
}

// ProcessName turns an executable file name into the name used for
// display and policy matching: "notepad.exe" becomes "notepad".
func ProcessName(exe string) string {
	base := filepath.Base(strings.ReplaceAll(exe, `\`, "/"))
	ext := filepath.Ext(base)
	if executableExts[strings.ToLower(ext)] {
		return strings.TrimSuffix(base, ext)
	}
	return base
}
