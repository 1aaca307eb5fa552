// Package autoapply makes windows of listed processes borderless as they
// appear, once per window per session.
package autoapply

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/frameless/internal/actionlog"
	"github.com/1broseidon/frameless/internal/border"
	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/winlist"
)

// Policy answers whether a process is configured as always borderless.
type Policy interface {
	IsAutoBorderless(process string) bool
}

// PolicyStore is a Policy that can be edited.
type PolicyStore interface {
	Policy
	AddAutoBorderless(process string) bool
	RemoveAutoBorderless(process string) bool
}

// Toggler flips window decorations.
type Toggler interface {
	Toggle(id platform.WindowID, resizeToScreen bool, target *display.Info) (border.Result, error)
}

// Placement is where newly borderless windows go.
type Placement struct {
	ResizeToScreen bool
	// Target is the display to fill; nil means the primary screen.
	Target *display.Info
}

// Change records a window whose decorations were toggled.
type Change struct {
	Window winlist.WindowInfo
	Result border.Result
}

// Reconciler remembers which windows it has already made borderless this
// session so a user who restores decorations is not overridden.
type Reconciler struct {
	mu      sync.Mutex
	applied map[platform.WindowID]struct{}

	toggler Toggler
	logger  *slog.Logger
	actions *actionlog.Logger
}

// NewReconciler returns a Reconciler toggling through t. actions may be nil.
func NewReconciler(t Toggler, logger *slog.Logger, actions *actionlog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		applied: make(map[platform.WindowID]struct{}),
		toggler: t,
		logger:  logger,
		actions: actions,
	}
}

// Reconcile makes every decorated window whose process is in policy
// borderless, skipping windows handled earlier in the session. Failures
// are logged and retried on the next pass.
func (r *Reconciler) Reconcile(windows []winlist.WindowInfo, policy Policy, place Placement) []Change {
	var changes []Change
	for _, w := range windows {
		if !policy.IsAutoBorderless(w.ProcessName) || w.Borderless || r.Applied(w.ID) {
			continue
		}

		res, err := r.toggler.Toggle(w.ID, place.ResizeToScreen, place.Target)
		if err != nil {
			r.logger.Warn("auto-borderless failed", "window", w.ID, "process", w.ProcessName, "error", err)
			r.actions.Log(actionlog.ActionToggleFailed, w.ID, w.ProcessName, map[string]interface{}{"error": err})
			continue
		}

		r.remember(w.ID)
		r.logger.Info("auto-borderless applied", "window", w.ID, "process", w.ProcessName, "title", w.Title)
		r.actions.Log(actionlog.ActionAutoApply, w.ID, w.ProcessName, map[string]interface{}{
			"title":   w.Title,
			"resized": res.Resized,
		})
		changes = append(changes, Change{Window: w, Result: res})
	}
	return changes
}

// SetAuto turns the always-borderless policy for w's process on or off and
// brings w itself into the matching state. The policy is updated even
// when the toggle fails; the error is returned alongside.
func (r *Reconciler) SetAuto(w winlist.WindowInfo, enabled bool, policy PolicyStore, place Placement) (*Change, error) {
	shouldToggle := enabled != w.Borderless

	var change *Change
	var toggleErr error
	if shouldToggle {
		res, err := r.toggler.Toggle(w.ID, place.ResizeToScreen, place.Target)
		if err != nil {
			toggleErr = err
			r.actions.Log(actionlog.ActionToggleFailed, w.ID, w.ProcessName, map[string]interface{}{"error": err})
		} else {
			change = &Change{Window: w, Result: res}
			r.actions.Log(actionlog.ActionToggle, w.ID, w.ProcessName, map[string]interface{}{
				"title":      w.Title,
				"borderless": res.Borderless,
			})
		}
	}

	if enabled {
		if policy.AddAutoBorderless(w.ProcessName) {
			r.actions.Log(actionlog.ActionPolicyAdd, 0, w.ProcessName, nil)
		}
		if change != nil {
			r.remember(w.ID)
		}
	} else {
		if policy.RemoveAutoBorderless(w.ProcessName) {
			r.actions.Log(actionlog.ActionPolicyRemove, 0, w.ProcessName, nil)
		}
		if change != nil {
			r.Forget(w.ID)
		}
	}

	return change, toggleErr
}

// Applied reports whether the window was auto-applied this session.
func (r *Reconciler) Applied(id platform.WindowID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.applied[id]
	return ok
}

// Forget drops a window from the session set so the next pass may act on
// it again.
func (r *Reconciler) Forget(id platform.WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.applied, id)
}

// Len returns the number of windows applied this session.
func (r *Reconciler) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.applied)
}

func (r *Reconciler) remember(id platform.WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied[id] = struct{}{}
}
