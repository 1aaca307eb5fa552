//go:build linux

package hotkeys

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/x11"
)

// x11Accessor is implemented by backends that expose their X connection.
type x11Accessor interface {
	Conn() *x11.Connection
}

// Handler grabs global key sequences on the X root window.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var initOnce sync.Once

// NewHandler returns a handler sharing backend's X connection.
func NewHandler(backend platform.Backend, logger *slog.Logger) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.Conn() == nil {
		return nil, errors.New("global hotkeys need an X11 backend")
	}
	if logger == nil {
		logger = slog.Default()
	}
	conn := accessor.Conn()

	initOnce.Do(func() {
		keybind.Initialize(conn.XUtil)
		xevent.IgnoreMods = ignoreMasks(
			uint16(xproto.ModMaskLock),
			modMaskForKeysym(conn.XUtil, "Num_Lock"),
			modMaskForKeysym(conn.XUtil, "Scroll_Lock"),
		)
	})

	return &Handler{xu: conn.XUtil, root: conn.Root, logger: logger}, nil
}

// Register grabs b.Keys and runs b.Action on every press.
func (h *Handler) Register(b Binding) error {
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		h.logger.Debug("hotkey pressed", "binding", b.Name, "keys", b.Keys)
		b.Action()
	}).Connect(h.xu, h.root, b.Keys, true)
	if err != nil {
		return fmt.Errorf("failed to register %s hotkey %q: %w", b.Name, b.Keys, err)
	}
	h.logger.Info("hotkey registered", "binding", b.Name, "keys", b.Keys)
	return nil
}

// Run dispatches X events until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	before, after, quit := xevent.MainPing(h.xu)
	for {
		select {
		case <-before:
			<-after
		case <-quit:
			return nil
		case <-ctx.Done():
			xevent.Quit(h.xu)
			return nil
		}
	}
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
