package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ClientWindows returns the managed top-level windows in stacking order.
func (c *Connection) ClientWindows() ([]xproto.Window, error) {
	return ewmh.ClientListGet(c.XUtil)
}

// MoveResizeWindow moves and resizes a window to the specified geometry
// and raises it above its siblings.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Maximized windows ignore move/resize requests on most WMs.
	_ = c.unmaximizeWindow(windowID)

	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(x, y, width, height)
	}

	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
	return nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" || t == "_NET_WM_WINDOW_TYPE_DIALOG" {
			return true
		}
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// IsDesktopWindow reports whether the window is the desktop or a panel.
func (c *Connection) IsDesktopWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" || t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// IsHidden reports whether the window is minimised. Unmapped windows
// without any EWMH state are treated as hidden too.
func (c *Connection) IsHidden(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err == nil {
		for _, state := range states {
			if state == "_NET_WM_STATE_HIDDEN" {
				return true
			}
		}
		if len(states) > 0 {
			return false
		}
	}

	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState != xproto.MapStateViewable
}

// WindowTitle returns the UTF-8 title, falling back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// WindowPID returns _NET_WM_PID.
func (c *Connection) WindowPID(windowID xproto.Window) (uint32, error) {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0, err
	}
	return uint32(pid), nil
}

// Decorations is the subset of Motif decoration hints the window manager
// honours for frames.
type Decorations struct {
	Border  bool
	Title   bool
	ResizeH bool
}

// GetDecorations reads _MOTIF_WM_HINTS. Windows without decoration hints
// are fully decorated.
func (c *Connection) GetDecorations(windowID xproto.Window) (Decorations, error) {
	hints, err := motif.WmHintsGet(c.XUtil, windowID)
	if err != nil || hints.Flags&motif.HintDecorations == 0 {
		return Decorations{Border: true, Title: true, ResizeH: true}, nil
	}
	return decorationsFromHints(hints), nil
}

// SetDecorations writes _MOTIF_WM_HINTS, preserving function hints.
func (c *Connection) SetDecorations(windowID xproto.Window, d Decorations) error {
	hints, err := motif.WmHintsGet(c.XUtil, windowID)
	if err != nil {
		hints = &motif.Hints{}
	}
	applyDecorations(hints, d)
	return motif.WmHintsSet(c.XUtil, windowID, hints)
}

func decorationsFromHints(hints *motif.Hints) Decorations {
	if hints.Decoration&motif.DecorationAll != 0 {
		return Decorations{Border: true, Title: true, ResizeH: true}
	}
	return Decorations{
		Border:  hints.Decoration&motif.DecorationBorder != 0,
		Title:   hints.Decoration&motif.DecorationTitle != 0,
		ResizeH: hints.Decoration&motif.DecorationResizeH != 0,
	}
}

func applyDecorations(hints *motif.Hints, d Decorations) {
	hints.Flags |= motif.HintDecorations
	switch {
	case d.Border && d.Title && d.ResizeH:
		hints.Decoration = motif.DecorationAll
		return
	case !d.Border && !d.Title && !d.ResizeH:
		hints.Decoration = motif.DecorationNone
		return
	}

	hints.Decoration = 0
	if d.Border {
		hints.Decoration |= motif.DecorationBorder
	}
	if d.Title {
		hints.Decoration |= motif.DecorationTitle | motif.DecorationMenu |
			motif.DecorationMinimize | motif.DecorationMaximize
	}
	if d.ResizeH {
		hints.Decoration |= motif.DecorationResizeH
	}
}
