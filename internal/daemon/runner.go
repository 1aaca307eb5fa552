// Package daemon drives the refresh and auto-borderless control loop and
// exposes it to the IPC server.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/frameless/internal/actionlog"
	"github.com/1broseidon/frameless/internal/autoapply"
	"github.com/1broseidon/frameless/internal/border"
	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/winlist"
)

// DefaultTick is how often the headless loop collects finished refreshes.
const DefaultTick = 250 * time.Millisecond

// ErrWindowNotFound is returned when a window is not in the current snapshot.
var ErrWindowNotFound = errors.New("window not found")

// RunnerConfig holds configuration for the runner.
type RunnerConfig struct {
	Backend platform.Backend
	Config  *config.Config
	// Actions may be nil.
	Actions  *actionlog.Logger
	Logger   *slog.Logger
	SelfName string
	SelfPID  uint32
	Tick     time.Duration
	// NoAutoApply skips the reconciler when a snapshot lands.
	NoAutoApply bool
}

// Runner owns the window snapshot, the session's auto-apply state and the
// active configuration. Every method is safe for concurrent use.
type Runner struct {
	mu     sync.Mutex
	cfg    *config.Config
	list   *winlist.List
	engine *border.Engine
	auto   *autoapply.Reconciler

	backend platform.Backend
	actions *actionlog.Logger
	logger  *slog.Logger
	tick    time.Duration
	started time.Time
	noAuto  bool
}

// NewRunner wires the enumerator, refresher and reconciler around backend.
func NewRunner(cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tick := cfg.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	conf := cfg.Config
	if conf == nil {
		conf = config.DefaultConfig()
	}

	enum := winlist.NewEnumerator(cfg.Backend, winlist.Options{
		SelfName: cfg.SelfName,
		SelfPID:  cfg.SelfPID,
		Logger:   logger,
	})
	refresher := winlist.NewRefresher(enum.Enumerate, logger)
	engine := border.NewEngine(cfg.Backend)

	return &Runner{
		cfg:     conf,
		list:    winlist.NewList(refresher, conf.RefreshInterval),
		engine:  engine,
		auto:    autoapply.NewReconciler(engine, logger, cfg.Actions),
		backend: cfg.Backend,
		actions: cfg.Actions,
		logger:  logger,
		tick:    tick,
		started: time.Now(),
		noAuto:  cfg.NoAutoApply,
	}
}

// Run starts the control loop. Blocks until context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.logger.Info("runner started", "tick", r.tick)
	r.Refresh()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopped")
			return nil
		case <-ticker.C:
			r.Step()
		}
	}
}

// Step performs one control-loop pass: collect a finished refresh,
// auto-apply on a new snapshot, and start the next refresh when due. It
// reports whether the snapshot changed.
func (r *Runner) Step() (changed bool) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("runner panic recovered", "error", err)
			changed = false
		}
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.list.Poll() {
		changed = true
		r.actions.Log(actionlog.ActionRefresh, 0, "", map[string]interface{}{"windows": r.list.Len()})
		r.reconcileLocked()
	}
	if !r.list.Pending() && r.list.Due() {
		r.list.Request()
	}
	return changed
}

// Refresh starts a refresh now unless one is already pending.
func (r *Runner) Refresh() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list.Request()
}

// ReconcileNow triggers an immediate auto-apply pass over the current snapshot.
func (r *Runner) ReconcileNow() []autoapply.Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reconcileLocked()
}

func (r *Runner) reconcileLocked() []autoapply.Change {
	if r.noAuto || len(r.cfg.AutoBorderlessApps) == 0 {
		return nil
	}
	changes := r.auto.Reconcile(r.list.Windows(), r.cfg, r.placementLocked())
	for _, c := range changes {
		r.list.MarkBorderless(c.Window.ID, c.Result.Borderless)
	}
	return changes
}

// Toggle flips a window's decorations using the configured placement.
// Windows missing from the snapshot are still toggled.
func (r *Runner) Toggle(id platform.WindowID) (border.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, _ := r.list.Find(id)
	res, err := r.engine.Toggle(id, r.cfg.ResizeToScreen, r.placementLocked().Target)
	if err != nil {
		r.actions.Log(actionlog.ActionToggleFailed, id, w.ProcessName, map[string]interface{}{"error": err})
		return res, err
	}

	r.list.MarkBorderless(id, res.Borderless)
	r.logger.Info("window toggled", "window", id, "borderless", res.Borderless, "resized", res.Resized)
	r.actions.Log(actionlog.ActionToggle, id, w.ProcessName, map[string]interface{}{
		"title":      w.Title,
		"borderless": res.Borderless,
		"resized":    res.Resized,
	})
	return res, nil
}

// SetAuto turns always-borderless on or off for the process owning id,
// brings the window into the matching state and persists the policy. The
// returned change is nil when the window was already in that state.
func (r *Runner) SetAuto(id platform.WindowID, enabled bool) (winlist.WindowInfo, *autoapply.Change, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.list.Find(id)
	if !ok {
		return winlist.WindowInfo{}, nil, fmt.Errorf("window %#x: %w", uint64(id), ErrWindowNotFound)
	}

	change, toggleErr := r.auto.SetAuto(w, enabled, r.cfg, r.placementLocked())
	if change != nil {
		r.list.MarkBorderless(id, change.Result.Borderless)
	}

	if err := r.cfg.Save(); err != nil {
		return w, change, errors.Join(toggleErr, fmt.Errorf("failed to save config: %w", err))
	}
	return w, change, toggleErr
}

// ApplyConfig swaps in a new configuration and requests a refresh so new
// policy entries take effect.
func (r *Runner) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cfg = cfg
	r.list.SetInterval(cfg.RefreshInterval)
	r.list.Request()
	r.logger.Info("config applied", "auto_borderless_apps", len(cfg.AutoBorderlessApps))
}

// UpdateConfig edits a copy of the configuration, saves it and makes it active.
func (r *Runner) UpdateConfig(edit func(cfg *config.Config)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cfg.Clone()
	edit(next)
	if err := next.Save(); err != nil {
		return err
	}
	r.cfg = next
	r.list.SetInterval(next.RefreshInterval)
	return nil
}

// Config returns a copy of the active configuration.
func (r *Runner) Config() *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.Clone()
}

// Windows returns a copy of the current snapshot.
func (r *Runner) Windows() []winlist.WindowInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]winlist.WindowInfo(nil), r.list.Windows()...)
}

// Displays returns the attached displays in selection order.
func (r *Runner) Displays() []display.Info {
	return display.Enumerate(r.backend, r.logger)
}

// LastRefresh returns when the current snapshot was taken.
func (r *Runner) LastRefresh() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list.LastRefresh()
}

// Refreshing reports whether a refresh is awaiting collection.
func (r *Runner) Refreshing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list.Pending()
}

// AutoApplied returns how many windows were auto-applied this session.
func (r *Runner) AutoApplied() int {
	return r.auto.Len()
}

// Uptime returns how long the runner has existed.
func (r *Runner) Uptime() time.Duration {
	return time.Since(r.started)
}

func (r *Runner) placementLocked() autoapply.Placement {
	place := autoapply.Placement{ResizeToScreen: r.cfg.ResizeToScreen}
	if r.cfg.ResizeToScreen {
		place.Target = display.At(display.Enumerate(r.backend, r.logger), r.cfg.Display)
	}
	return place
}
