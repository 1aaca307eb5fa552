//go:build windows

package platform

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// WindowsBackend implements Backend on top of user32, gdi32 and the
// ToolHelp process snapshot API.
type WindowsBackend struct{}

var _ Backend = (*WindowsBackend)(nil)

// NewWindowsBackend returns a Win32 backend. It holds no OS resources.
func NewWindowsBackend() *WindowsBackend {
	return &WindowsBackend{}
}

// New returns the backend for the running platform.
func New() (Backend, error) {
	return NewWindowsBackend(), nil
}

// Callbacks are created once: the runtime caps the number of callbacks a
// process may allocate.
var (
	enumMu       sync.Mutex
	enumWindows  []WindowID
	enumMonitors []uintptr

	enumWindowsCallback = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		enumWindows = append(enumWindows, WindowID(hwnd))
		return 1
	})
	enumMonitorsCallback = windows.NewCallback(func(hmonitor, _, _, _ uintptr) uintptr {
		enumMonitors = append(enumMonitors, hmonitor)
		return 1
	})
)

func (b *WindowsBackend) TopLevelWindows() ([]WindowID, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumWindows = nil
	if err := windows.EnumWindows(enumWindowsCallback, nil); err != nil {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}
	out := enumWindows
	enumWindows = nil
	return out, nil
}

func (b *WindowsBackend) IsVisible(id WindowID) bool {
	return windows.IsWindowVisible(hwnd(id))
}

func (b *WindowsBackend) WindowTitle(id WindowID) (string, error) {
	buf := make([]uint16, 512)
	n, err := windows.GetWindowText(hwnd(id), &buf[0], int32(len(buf)))
	if n == 0 {
		if err != nil && callErr(err) != nil {
			return "", fmt.Errorf("GetWindowText: %w", err)
		}
		return "", nil
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (b *WindowsBackend) WindowPID(id WindowID) (uint32, error) {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd(id), &pid); err != nil {
		return 0, fmt.Errorf("GetWindowThreadProcessId: %w", err)
	}
	return pid, nil
}

func (b *WindowsBackend) IsShellWindow(id WindowID) bool {
	shell := windows.GetShellWindow()
	return shell != 0 && shell == hwnd(id)
}

func (b *WindowsBackend) WindowStyle(id WindowID) (Style, error) {
	clearLastError()
	r, _, err := procGetWindowLongW.Call(uintptr(id), gwlStyle)
	if r == 0 {
		if err = callErr(err); err != nil {
			return 0, fmt.Errorf("GetWindowLongW: %w", err)
		}
	}
	return Style(uint32(r)), nil
}

func (b *WindowsBackend) SetWindowStyle(id WindowID, style Style) error {
	clearLastError()
	r, _, err := procSetWindowLongW.Call(uintptr(id), gwlStyle, uintptr(style))
	if r == 0 {
		if err = callErr(err); err != nil {
			return fmt.Errorf("SetWindowLongW: %w", err)
		}
	}
	return nil
}

func (b *WindowsBackend) SetWindowBounds(id WindowID, bounds Rect) error {
	return setWindowPos(id, bounds, swpFrameChanged|swpNoZOrder|swpNoActivate)
}

func (b *WindowsBackend) NotifyFrameChanged(id WindowID) error {
	return setWindowPos(id, Rect{}, swpFrameChanged|swpNoMove|swpNoSize|swpNoZOrder|swpNoActivate)
}

func setWindowPos(id WindowID, r Rect, flags uintptr) error {
	ret, _, err := procSetWindowPos.Call(
		uintptr(id),
		hwndTop,
		uintptr(int32(r.X)),
		uintptr(int32(r.Y)),
		uintptr(int32(r.Width)),
		uintptr(int32(r.Height)),
		flags,
	)
	if ret == 0 {
		if err = callErr(err); err == nil {
			err = errors.New("unknown failure")
		}
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}

func (b *WindowsBackend) WindowIcon(id WindowID) (*image.RGBA, error) {
	icon := smallIconHandle(id)
	if icon == 0 {
		return nil, nil
	}
	return renderIcon(icon)
}

func (b *WindowsBackend) Processes() (map[uint32]string, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snapshot, &entry); err != nil {
		return nil, fmt.Errorf("Process32First: %w", err)
	}

	procs := make(map[uint32]string)
	for {
		procs[entry.ProcessID] = windows.UTF16ToString(entry.ExeFile[:])
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
				break
			}
			return nil, fmt.Errorf("Process32Next: %w", err)
		}
	}
	return procs, nil
}

func (b *WindowsBackend) Monitors() ([]Monitor, error) {
	enumMu.Lock()
	enumMonitors = nil
	r, _, err := procEnumDisplayMonitors.Call(0, 0, enumMonitorsCallback, 0)
	handles := enumMonitors
	enumMonitors = nil
	enumMu.Unlock()

	if r == 0 {
		if err = callErr(err); err == nil {
			err = errors.New("unknown failure")
		}
		return nil, fmt.Errorf("EnumDisplayMonitors: %w", err)
	}

	monitors := make([]Monitor, 0, len(handles))
	for _, h := range handles {
		var info monitorInfo
		info.Size = uint32(unsafe.Sizeof(info))
		ok, _, _ := procGetMonitorInfoW.Call(h, uintptr(unsafe.Pointer(&info)))
		if ok == 0 {
			continue
		}
		monitors = append(monitors, Monitor{
			Bounds: Rect{
				X:      int(info.Monitor.Left),
				Y:      int(info.Monitor.Top),
				Width:  int(info.Monitor.Right - info.Monitor.Left),
				Height: int(info.Monitor.Bottom - info.Monitor.Top),
			},
			Primary: info.Flags&monitorInfoPrimary != 0,
		})
	}
	return monitors, nil
}

func (b *WindowsBackend) ScreenSize() (int, int, error) {
	w, _, _ := procGetSystemMetrics.Call(smCXScreen)
	h, _, _ := procGetSystemMetrics.Call(smCYScreen)
	if int32(w) <= 0 || int32(h) <= 0 {
		return 0, 0, errors.New("GetSystemMetrics returned an empty screen")
	}
	return int(int32(w)), int(int32(h)), nil
}

func (b *WindowsBackend) Close() error {
	return nil
}

func hwnd(id WindowID) windows.HWND {
	return windows.HWND(id)
}
