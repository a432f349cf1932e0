// ABOUTME: Polling-based file watcher for config and theme hot-reload
// ABOUTME: Compares file mtimes every interval until its context is cancelled

package config

import (
	"context"
	"os"
	"sync"
	"time"
)

// DefaultWatchInterval is the polling interval used when none is given.
const DefaultWatchInterval = 2 * time.Second

// Watcher monitors files for changes by polling mtime at regular intervals.
// A file appearing, changing or disappearing counts as a change.
type Watcher struct {
	paths    []string
	onChange func()
	interval time.Duration

	mu     sync.Mutex
	mtimes map[string]time.Time
}

// NewWatcher creates a watcher that calls onChange when any of paths
// changes. Empty paths are ignored. A non-positive interval selects
// DefaultWatchInterval.
func NewWatcher(paths []string, interval time.Duration, onChange func()) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	w := &Watcher{
		onChange: onChange,
		interval: interval,
		mtimes:   make(map[string]time.Time),
	}
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p != "" && !seen[p] {
			seen[p] = true
			w.paths = append(w.paths, p)
		}
	}
	w.snapshotLocked()
	return w
}

// Paths returns the watched files.
func (w *Watcher) Paths() []string {
	return w.paths
}

// Run polls until ctx is done. onChange runs on the polling goroutine,
// at most once per interval. Run always returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check compares the files against the last snapshot now, calling
// onChange synchronously if anything changed. It reports whether a
// change was seen.
func (w *Watcher) Check() bool {
	w.mu.Lock()
	changed := w.checkLocked()
	if changed {
		w.snapshotLocked()
	}
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.onChange()
	}
	return changed
}

// checkLocked compares current mtimes with stored snapshots. Must hold mu.
func (w *Watcher) checkLocked() bool {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		prev, existed := w.mtimes[path]
		if err != nil {
			if existed {
				return true
			}
			continue
		}
		if !existed || !info.ModTime().Equal(prev) {
			return true
		}
	}
	return false
}

// snapshotLocked records current mtimes. Must hold mu.
func (w *Watcher) snapshotLocked() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
