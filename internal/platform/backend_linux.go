//go:build linux

package platform

import (
	"fmt"
	"image"

	"github.com/1broseidon/frameless/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
// Decorations are driven through _MOTIF_WM_HINTS and mapped onto Style bits.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// New returns the backend for the running platform.
func New() (Backend, error) {
	return NewLinuxBackendFromDisplay()
}

func (b *LinuxBackend) TopLevelWindows() ([]WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ClientWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to read client list: %w", err)
	}

	ids := make([]WindowID, 0, len(clients))
	for _, w := range clients {
		ids = append(ids, WindowID(w))
	}
	return ids, nil
}

func (b *LinuxBackend) IsVisible(id WindowID) bool {
	conn, err := b.connection()
	if err != nil {
		return false
	}
	w := xproto.Window(id)
	return conn.IsNormalWindow(w) && !conn.IsHidden(w) && conn.OnCurrentDesktop(w)
}

func (b *LinuxBackend) WindowTitle(id WindowID) (string, error) {
	conn, err := b.connection()
	if err != nil {
		return "", err
	}
	return conn.WindowTitle(xproto.Window(id)), nil
}

func (b *LinuxBackend) WindowPID(id WindowID) (uint32, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	return conn.WindowPID(xproto.Window(id))
}

func (b *LinuxBackend) IsShellWindow(id WindowID) bool {
	conn, err := b.connection()
	if err != nil {
		return false
	}
	return conn.IsDesktopWindow(xproto.Window(id))
}

func (b *LinuxBackend) WindowStyle(id WindowID) (Style, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	d, err := conn.GetDecorations(xproto.Window(id))
	if err != nil {
		return 0, err
	}
	return styleFromDecorations(d), nil
}

func (b *LinuxBackend) SetWindowStyle(id WindowID, style Style) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetDecorations(xproto.Window(id), decorationsFromStyle(style))
}

func (b *LinuxBackend) SetWindowBounds(id WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(id), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

// NotifyFrameChanged is a no-op: window managers re-frame as soon as
// _MOTIF_WM_HINTS changes.
func (b *LinuxBackend) NotifyFrameChanged(id WindowID) error {
	_, err := b.connection()
	return err
}

func (b *LinuxBackend) WindowIcon(id WindowID) (*image.RGBA, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	return conn.WindowIcon(xproto.Window(id), IconSize)
}

func (b *LinuxBackend) Processes() (map[uint32]string, error) {
	return procProcesses("/proc")
}

func (b *LinuxBackend) Monitors() ([]Monitor, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	out := make([]Monitor, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, Monitor{
			Bounds:  Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
			Primary: m.Primary,
		})
	}
	return out, nil
}

func (b *LinuxBackend) ScreenSize() (int, int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, 0, err
	}
	return conn.PrimarySize()
}

// Conn exposes the X11 connection for X-specific features such as global
// hotkeys. It is nil after Close.
func (b *LinuxBackend) Conn() *x11.Connection {
	return b.conn
}

// ActiveWindow returns the focused top-level window.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	w, err := conn.ActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(w), nil
}

// Close closes the underlying X11 connection.
func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func styleFromDecorations(d x11.Decorations) Style {
	var s Style
	if d.Title {
		s |= StyleCaption
	}
	if d.Border {
		s |= StyleBorder
	}
	if d.ResizeH {
		s |= StyleThickFrame
	}
	return s
}

func decorationsFromStyle(s Style) x11.Decorations {
	return x11.Decorations{
		Border:  s&StyleBorder != 0,
		Title:   s&StyleCaption == StyleCaption,
		ResizeH: s&StyleThickFrame != 0,
	}
}
