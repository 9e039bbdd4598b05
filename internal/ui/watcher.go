package ui

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the scan root for changes after a scan completes, so
// the UI can hint that the results may be stale. It is advisory only and
// never triggers a rescan by itself.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan struct{}
	stop      chan struct{}
	mu        sync.Mutex
	stopped   bool
}

// NewWatcher creates a watcher over root. Only the root itself is
// watched; a hint, not a full recursive mirror of the tree.
func NewWatcher(root string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}

	if err := fsWatcher.Add(root); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.run()

	return w, nil
}

// Events returns the channel that receives change notifications.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true

	close(w.stop)
	w.fsWatcher.Close()
}

// run processes file system events.
func (w *Watcher) run() {
	// Debounce timer
	var debounceTimer *time.Timer
	debounceDelay := 250 * time.Millisecond

	for {
		select {
		case <-w.stop:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case _, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// Debounce rapid events
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case w.events <- struct{}{}:
				default:
					// Channel full, skip
				}
			})

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Log error but continue
		}
	}
}
