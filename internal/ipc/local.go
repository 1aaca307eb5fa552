package ipc

import (
	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/platform"
)

// Local exposes an in-process Handler through the same methods as Client,
// for callers that run without a daemon.
type Local struct {
	handler Handler
}

// NewLocal wraps handler.
func NewLocal(handler Handler) *Local {
	return &Local{handler: handler}
}

func (l *Local) GetStatus() (*StatusData, error) {
	status := l.handler.Status()
	return &status, nil
}

func (l *Local) ListWindows() ([]WindowData, error) {
	return l.handler.Windows(), nil
}

func (l *Local) ListDisplays() ([]display.Info, error) {
	return l.handler.Displays(), nil
}

func (l *Local) Toggle(id platform.WindowID) (*ToggleData, error) {
	data, err := l.handler.Toggle(id)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (l *Local) SetAuto(id platform.WindowID, enabled bool) (*ToggleData, error) {
	data, err := l.handler.SetAuto(id, enabled)
	if err != nil {
		return &data, err
	}
	return &data, nil
}

func (l *Local) Reload() error {
	return l.handler.Reload()
}
