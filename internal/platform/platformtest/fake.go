// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/1broseidon/frameless/internal/platform"
)

// Window is one fake top-level window.
type Window struct {
	ID      platform.WindowID
	Title   string
	PID     uint32
	Hidden  bool
	Shell   bool
	Style   platform.Style
	Bounds  platform.Rect
	Icon    *image.RGBA
	IconErr error
}

// Call records a mutating backend call.
type Call struct {
	Op     string
	ID     platform.WindowID
	Style  platform.Style
	Bounds platform.Rect
}

// Fake is a thread-safe in-memory Backend. Failure fields make the
// matching operation return an error.
type Fake struct {
	mu sync.Mutex

	windows  []*Window
	procs    map[uint32]string
	monitors []platform.Monitor
	screenW  int
	screenH  int
	calls    []Call

	ListErr      error
	ProcessesErr error
	MonitorsErr  error
	ScreenErr    error
	StyleErr     map[platform.WindowID]error
	SetStyleErr  map[platform.WindowID]error
	BoundsErr    map[platform.WindowID]error
	FrameErr     map[platform.WindowID]error
	TitleErr     map[platform.WindowID]error
	PIDErr       map[platform.WindowID]error
	OnList       func()
	closed       bool
}

var _ platform.Backend = (*Fake)(nil)

// NewFake returns an empty fake with a 1920x1080 primary screen.
func NewFake() *Fake {
	return &Fake{
		procs:       make(map[uint32]string),
		screenW:     1920,
		screenH:     1080,
		StyleErr:    make(map[platform.WindowID]error),
		SetStyleErr: make(map[platform.WindowID]error),
		BoundsErr:   make(map[platform.WindowID]error),
		FrameErr:    make(map[platform.WindowID]error),
		TitleErr:    make(map[platform.WindowID]error),
		PIDErr:      make(map[platform.WindowID]error),
	}
}

// AddWindow registers a window and returns it for further tweaking.
func (f *Fake) AddWindow(w Window) *Window {
	f.mu.Lock()
	defer f.mu.Unlock()
	win := w
	f.windows = append(f.windows, &win)
	return &win
}

// RemoveWindow drops a window, simulating it closing.
func (f *Fake) RemoveWindow(id platform.WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, w := range f.windows {
		if w.ID == id {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return
		}
	}
}

// SetProcess maps a pid to an executable name.
func (f *Fake) SetProcess(pid uint32, exe string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.procs[pid] = exe
}

// SetMonitors replaces the monitor list.
func (f *Fake) SetMonitors(m ...platform.Monitor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.monitors = append([]platform.Monitor(nil), m...)
}

// SetScreenSize sets the primary screen size.
func (f *Fake) SetScreenSize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screenW, f.screenH = w, h
}

// Calls returns a copy of the recorded mutating calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// ResetCalls clears the call log.
func (f *Fake) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Style returns the current style of a window.
func (f *Fake) Style(id platform.WindowID) platform.Style {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w := f.find(id); w != nil {
		return w.Style
	}
	return 0
}

// Bounds returns the current bounds of a window.
func (f *Fake) Bounds(id platform.WindowID) platform.Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w := f.find(id); w != nil {
		return w.Bounds
	}
	return platform.Rect{}
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Fake) TopLevelWindows() ([]platform.WindowID, error) {
	if f.OnList != nil {
		f.OnList()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	ids := make([]platform.WindowID, 0, len(f.windows))
	for _, w := range f.windows {
		ids = append(ids, w.ID)
	}
	return ids, nil
}

func (f *Fake) IsVisible(id platform.WindowID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := f.find(id)
	return w != nil && !w.Hidden
}

func (f *Fake) WindowTitle(id platform.WindowID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.TitleErr[id]; err != nil {
		return "", err
	}
	w := f.find(id)
	if w == nil {
		return "", errNoWindow(id)
	}
	return w.Title, nil
}

func (f *Fake) WindowPID(id platform.WindowID) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.PIDErr[id]; err != nil {
		return 0, err
	}
	w := f.find(id)
	if w == nil {
		return 0, errNoWindow(id)
	}
	return w.PID, nil
}

func (f *Fake) IsShellWindow(id platform.WindowID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := f.find(id)
	return w != nil && w.Shell
}

func (f *Fake) WindowStyle(id platform.WindowID) (platform.Style, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.StyleErr[id]; err != nil {
		return 0, err
	}
	w := f.find(id)
	if w == nil {
		return 0, errNoWindow(id)
	}
	return w.Style, nil
}

func (f *Fake) SetWindowStyle(id platform.WindowID, style platform.Style) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "SetWindowStyle", ID: id, Style: style})
	if err := f.SetStyleErr[id]; err != nil {
		return err
	}
	w := f.find(id)
	if w == nil {
		return errNoWindow(id)
	}
	w.Style = style
	return nil
}

func (f *Fake) SetWindowBounds(id platform.WindowID, bounds platform.Rect) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "SetWindowBounds", ID: id, Bounds: bounds})
	if err := f.BoundsErr[id]; err != nil {
		return err
	}
	w := f.find(id)
	if w == nil {
		return errNoWindow(id)
	}
	w.Bounds = bounds
	return nil
}

func (f *Fake) NotifyFrameChanged(id platform.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "NotifyFrameChanged", ID: id})
	if err := f.FrameErr[id]; err != nil {
		return err
	}
	if f.find(id) == nil {
		return errNoWindow(id)
	}
	return nil
}

func (f *Fake) WindowIcon(id platform.WindowID) (*image.RGBA, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := f.find(id)
	if w == nil {
		return nil, errNoWindow(id)
	}
	return w.Icon, w.IconErr
}

func (f *Fake) Processes() (map[uint32]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProcessesErr != nil {
		return nil, f.ProcessesErr
	}
	out := make(map[uint32]string, len(f.procs))
	for k, v := range f.procs {
		out[k] = v
	}
	return out, nil
}

func (f *Fake) Monitors() ([]platform.Monitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MonitorsErr != nil {
		return nil, f.MonitorsErr
	}
	return append([]platform.Monitor(nil), f.monitors...), nil
}

func (f *Fake) ScreenSize() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ScreenErr != nil {
		return 0, 0, f.ScreenErr
	}
	if f.screenW <= 0 || f.screenH <= 0 {
		return 0, 0, errors.New("no screen")
	}
	return f.screenW, f.screenH, nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *Fake) find(id platform.WindowID) *Window {
	for _, w := range f.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func errNoWindow(id platform.WindowID) error {
	return fmt.Errorf("invalid window handle %d", id)
}
