package winlist

import (
	"log/slog"
	"sync"
	"time"
)

// Snapshot is the outcome of one refresh.
type Snapshot struct {
	Windows []WindowInfo
	// Skipped is set when the refresh was refused because another one was
	// still running. Windows is empty in that case.
	Skipped bool
	Taken   time.Time
}

// EnumerateFunc produces a fresh window list. It runs on a worker goroutine.
type EnumerateFunc func() []WindowInfo

// Refresher runs at most one enumeration at a time. Each accepted Start
// spawns one worker that hands its result over a single-slot channel.
type Refresher struct {
	mu         sync.Mutex
	inProgress bool

	enumerate EnumerateFunc
	logger    *slog.Logger
	now       func() time.Time
}

// NewRefresher returns a Refresher driving enumerate.
func NewRefresher(enumerate EnumerateFunc, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		enumerate: enumerate,
		logger:    logger,
		now:       time.Now,
	}
}

// Start begins a refresh and returns the channel its result will arrive
// on. The channel is buffered so the worker never blocks on a receiver
// that has gone away. If a refresh is already running no worker is
// started and the returned channel already holds a skipped snapshot.
func (r *Refresher) Start() <-chan Snapshot {
	out := make(chan Snapshot, 1)

	r.mu.Lock()
	if r.inProgress {
		r.mu.Unlock()
		out <- Snapshot{Windows: []WindowInfo{}, Skipped: true, Taken: r.now()}
		return out
	}
	r.inProgress = true
	r.mu.Unlock()

	go r.run(out)
	return out
}

// InProgress reports whether a worker is currently enumerating.
func (r *Refresher) InProgress() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inProgress
}

func (r *Refresher) run(out chan<- Snapshot) {
	windows := []WindowInfo{}
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("window refresh panic recovered", "error", err)
			windows = []WindowInfo{}
		}
		r.mu.Lock()
		r.inProgress = false
		r.mu.Unlock()
		out <- Snapshot{Windows: windows, Taken: r.now()}
	}()

	if got := r.enumerate(); got != nil {
		windows = got
	}
}
