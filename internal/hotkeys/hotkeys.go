// Package hotkeys binds global key sequences to daemon actions.
package hotkeys

import (
	"log/slog"
	"os/exec"
	"sort"

	"github.com/1broseidon/frameless/internal/border"
	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/platform"
)

// Binding pairs a key sequence such as "Mod4-Shift-b" with its action.
type Binding struct {
	Name   string
	Keys   string
	Action func()
}

// Bindings returns the configured bindings; unset keys are skipped.
func Bindings(cfg *config.Config, toggle, palette func()) []Binding {
	var out []Binding
	if cfg.ToggleHotkey != "" && toggle != nil {
		out = append(out, Binding{Name: "toggle", Keys: cfg.ToggleHotkey, Action: toggle})
	}
	if cfg.PaletteHotkey != "" && palette != nil {
		out = append(out, Binding{Name: "palette", Keys: cfg.PaletteHotkey, Action: palette})
	}
	return out
}

// FocusSource reports the focused top-level window.
type FocusSource interface {
	ActiveWindow() (platform.WindowID, error)
}

// Toggler flips a window's decorations.
type Toggler interface {
	Toggle(id platform.WindowID) (border.Result, error)
}

// ToggleFocused returns an action that toggles whichever window has focus.
func ToggleFocused(focus FocusSource, t Toggler, logger *slog.Logger) func() {
	return func() {
		id, err := focus.ActiveWindow()
		if err != nil {
			logger.Warn("hotkey: no focused window", "error", err)
			return
		}
		if _, err := t.Toggle(id); err != nil {
			logger.Warn("hotkey: toggle failed", "window", id, "error", err)
		}
	}
}

// LaunchPalette returns an action that starts "exe pick" without waiting
// for the user to choose.
func LaunchPalette(exe string, logger *slog.Logger) func() {
	return func() {
		cmd := exec.Command(exe, "pick")
		if err := cmd.Start(); err != nil {
			logger.Warn("hotkey: failed to launch palette", "error", err)
			return
		}
		go func() {
			if err := cmd.Wait(); err != nil {
				logger.Debug("palette exited", "error", err)
			}
		}()
	}
}

// ignoreMasks lists every combination of the lock modifiers so a binding
// fires regardless of CapsLock, NumLock or ScrollLock state.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	out := make([]uint16, 0, len(unique))
	for mask := range unique {
		out = append(out, mask)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
