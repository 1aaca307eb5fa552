package winlist

import (
	"time"

	"github.com/1broseidon/frameless/internal/platform"
)

// DefaultRefreshInterval is the idle cadence between window refreshes.
const DefaultRefreshInterval = 5 * time.Second

// List owns the current window snapshot on the control goroutine. It is
// not safe for concurrent use; only the Refresher's workers run elsewhere.
type List struct {
	refresher *Refresher
	interval  time.Duration
	now       func() time.Time

	pending     <-chan Snapshot
	windows     []WindowInfo
	lastRequest time.Time
	lastRefresh time.Time
}

// NewList returns a List refreshed through r every interval.
func NewList(r *Refresher, interval time.Duration) *List {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &List{
		refresher: r,
		interval:  interval,
		now:       time.Now,
		windows:   []WindowInfo{},
	}
}

// SetInterval changes the refresh cadence.
func (l *List) SetInterval(d time.Duration) {
	if d > 0 {
		l.interval = d
	}
}

// Request starts a refresh unless one is already awaiting collection.
func (l *List) Request() bool {
	if l.pending != nil {
		return false
	}
	l.pending = l.refresher.Start()
	l.lastRequest = l.now()
	return true
}

// Pending reports whether a requested refresh has not been collected yet.
func (l *List) Pending() bool {
	return l.pending != nil
}

// Due reports whether the refresh interval has elapsed since the last request.
func (l *List) Due() bool {
	return l.lastRequest.IsZero() || l.now().Sub(l.lastRequest) >= l.interval
}

// Poll collects a finished refresh without blocking. It reports true only
// when the window list was replaced. Empty results are dropped and the
// previous list is kept.
func (l *List) Poll() bool {
	if l.pending == nil {
		return false
	}
	select {
	case snap := <-l.pending:
		l.pending = nil
		if len(snap.Windows) == 0 {
			return false
		}
		l.windows = snap.Windows
		l.lastRefresh = snap.Taken
		return true
	default:
		return false
	}
}

// Windows returns the current snapshot. Callers must not modify it.
func (l *List) Windows() []WindowInfo {
	return l.windows
}

// Len returns the number of windows in the snapshot.
func (l *List) Len() int {
	return len(l.windows)
}

// LastRefresh returns when the current snapshot was taken.
func (l *List) LastRefresh() time.Time {
	return l.lastRefresh
}

// Find returns the window with the given handle.
func (l *List) Find(id platform.WindowID) (WindowInfo, bool) {
	for _, w := range l.windows {
		if w.ID == id {
			return w, true
		}
	}
	return WindowInfo{}, false
}

// MarkBorderless updates the cached borderless flag after a toggle so the
// snapshot reflects it before the next refresh.
func (l *List) MarkBorderless(id platform.WindowID, borderless bool) {
	for i := range l.windows {
		if l.windows[i].ID == id {
			l.windows[i].Borderless = borderless
			return
		}
	}
}
