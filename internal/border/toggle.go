// Package border flips a window between its decorated and borderless states.
package border

import (
	"fmt"

	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/platform"
)

// Step names the OS call a toggle failed in.
type Step string

const (
	StepReadStyle    Step = "read style"
	StepApplyStyle   Step = "apply style"
	StepScreenSize   Step = "query screen size"
	StepResize       Step = "resize"
	StepFrameChanged Step = "refresh frame"
)

// StepError reports which step of a toggle failed. Steps already applied
// are not rolled back.
type StepError struct {
	Window platform.WindowID
	Step   Step
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("toggle window %d: %s: %v", e.Window, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Backend is the subset of platform.Backend needed to toggle decorations.
type Backend interface {
	WindowStyle(id platform.WindowID) (platform.Style, error)
	SetWindowStyle(id platform.WindowID, style platform.Style) error
	SetWindowBounds(id platform.WindowID, bounds platform.Rect) error
	NotifyFrameChanged(id platform.WindowID) error
	ScreenSize() (width, height int, err error)
}

// Result describes a completed toggle.
type Result struct {
	// Borderless is the state the window was moved to.
	Borderless bool
	// Resized is set when the window was moved to fill a display.
	Resized bool
	Bounds  platform.Rect
}

// Engine applies decoration toggles through a Backend.
type Engine struct {
	backend Backend
}

// NewEngine returns an Engine using backend.
func NewEngine(backend Backend) *Engine {
	return &Engine{backend: backend}
}

// NextStyle computes the style after a toggle. A decorated style loses
// every decoration bit; an undecorated one gets the canonical caption and
// thick frame. Bits outside the decoration mask are preserved.
func NextStyle(current platform.Style) platform.Style {
	if current.Decorated() {
		return current &^ platform.DecorationMask
	}
	return current | platform.RestoredDecorations
}

// Toggle flips the window's decorations. When the window becomes
// borderless and resizeToScreen is set, it is moved to fill target, or
// the primary screen when target is nil.
func (e *Engine) Toggle(id platform.WindowID, resizeToScreen bool, target *display.Info) (Result, error) {
	current, err := e.backend.WindowStyle(id)
	if err != nil {
		return Result{}, &StepError{Window: id, Step: StepReadStyle, Err: err}
	}

	next := NextStyle(current)
	if err := e.backend.SetWindowStyle(id, next); err != nil {
		return Result{}, &StepError{Window: id, Step: StepApplyStyle, Err: err}
	}

	res := Result{Borderless: !next.Decorated()}

	if res.Borderless && resizeToScreen {
		bounds, err := e.targetBounds(target)
		if err != nil {
			return res, &StepError{Window: id, Step: StepScreenSize, Err: err}
		}
		if err := e.backend.SetWindowBounds(id, bounds); err != nil {
			return res, &StepError{Window: id, Step: StepResize, Err: err}
		}
		res.Resized = true
		res.Bounds = bounds
		return res, nil
	}

	if err := e.backend.NotifyFrameChanged(id); err != nil {
		return res, &StepError{Window: id, Step: StepFrameChanged, Err: err}
	}
	return res, nil
}

// SetBorderless drives the window to the requested state, toggling only
// when it is not already there.
func (e *Engine) SetBorderless(id platform.WindowID, borderless, resizeToScreen bool, target *display.Info) (Result, bool, error) {
	current, err := e.backend.WindowStyle(id)
	if err != nil {
		return Result{}, false, &StepError{Window: id, Step: StepReadStyle, Err: err}
	}
	if !current.Decorated() == borderless {
		return Result{Borderless: borderless}, false, nil
	}
	res, err := e.Toggle(id, resizeToScreen, target)
	return res, true, err
}

func (e *Engine) targetBounds(target *display.Info) (platform.Rect, error) {
	if target != nil && !target.Bounds().Empty() {
		return target.Bounds(), nil
	}
	w, h, err := e.backend.ScreenSize()
	if err != nil {
		return platform.Rect{}, err
	}
	return platform.Rect{X: 0, Y: 0, Width: w, Height: h}, nil
}
