package platform

import (
	"errors"
	"image"
)

// ErrUnsupported is returned by backends and helpers that have no
// implementation on the running platform.
var ErrUnsupported = errors.New("not supported on this platform")

// WindowID is an opaque top-level window handle. It stays stable for the
// lifetime of the window and may be reused by the OS afterwards.
type WindowID uint64

// Style is a window style bitmask using the Win32 GWL_STYLE bit layout.
// Non-Windows backends translate their native decoration hints to and
// from these bits.
type Style uint32

const (
	StyleBorder     Style = 0x00800000
	StyleDlgFrame   Style = 0x00400000
	StyleCaption    Style = 0x00C00000 // StyleBorder | StyleDlgFrame
	StyleThickFrame Style = 0x00040000

	// DecorationMask is every bit that makes a window count as decorated.
	DecorationMask = StyleBorder | StyleDlgFrame | StyleCaption | StyleThickFrame

	// RestoredDecorations is the canonical decorated style applied when
	// leaving borderless mode.
	RestoredDecorations = StyleCaption | StyleThickFrame
)

// Decorated reports whether any decoration bit is set.
func (s Style) Decorated() bool {
	return s&DecorationMask != 0
}

// Rect describes a rectangular region in virtual-desktop coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Monitor is a raw monitor record as reported by the OS, in discovery order.
type Monitor struct {
	Bounds  Rect
	Primary bool
}

// Backend abstracts the window-system primitives needed to list windows
// and change their decorations.
type Backend interface {
	// TopLevelWindows returns every top-level window in OS order.
	TopLevelWindows() ([]WindowID, error)
	IsVisible(id WindowID) bool
	WindowTitle(id WindowID) (string, error)
	WindowPID(id WindowID) (uint32, error)
	// IsShellWindow reports whether the window is the desktop shell.
	IsShellWindow(id WindowID) bool

	WindowStyle(id WindowID) (Style, error)
	SetWindowStyle(id WindowID, style Style) error
	// SetWindowBounds moves and resizes the window, raises it without
	// activating it, and makes the OS recompute the frame.
	SetWindowBounds(id WindowID, bounds Rect) error
	// NotifyFrameChanged makes the OS recompute the frame without moving,
	// resizing or restacking the window.
	NotifyFrameChanged(id WindowID) error

	// WindowIcon returns a 16x16 RGBA rendering of the window's small
	// icon, or nil when the window has none.
	WindowIcon(id WindowID) (*image.RGBA, error)

	// Processes returns the executable name of every running process
	// keyed by process id.
	Processes() (map[uint32]string, error)

	Monitors() ([]Monitor, error)
	// ScreenSize returns the full pixel size of the primary screen.
	ScreenSize() (width, height int, err error)

	Close() error
}

// IconSize is the edge length of icons returned by Backend.WindowIcon.
const IconSize = 16
