//go:build !linux

package hotkeys

import (
	"context"
	"log/slog"

	"github.com/1broseidon/frameless/internal/platform"
)

// Handler is unavailable outside X11.
type Handler struct{}

// NewHandler always fails outside X11.
func NewHandler(backend platform.Backend, logger *slog.Logger) (*Handler, error) {
	return nil, platform.ErrUnsupported
}

func (h *Handler) Register(b Binding) error { return platform.ErrUnsupported }

func (h *Handler) Run(ctx context.Context) error { return nil }
