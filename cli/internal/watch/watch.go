// Package watch re-runs a callback when files under a directory change,
// debounced so editor save bursts trigger one run.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher drives a callback from filesystem events below one directory.
type Watcher struct {
	dir      string
	callback func() error
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher builds a watcher over dir. The callback runs once immediately
// when Start is called, then after every settled change.
func NewWatcher(dir string, callback func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: creating watcher: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: resolving %s: %w", dir, err)
	}
	if err := fsw.Add(abs); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: watching %s: %w", abs, err)
	}
	return &Watcher{dir: abs, callback: callback, fsw: fsw, done: make(chan struct{})}, nil
}

// Start blocks, invoking the callback on changes until Stop is called.
func (w *Watcher) Start() error {
	if err := w.callback(); err != nil {
		return err
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-w.done:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				debounce.Reset(300 * time.Millisecond)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case <-debounce.C:
			if err := w.callback(); err != nil {
				return err
			}
		}
	}
}

// Stop ends the watch loop and releases the notifier.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsw.Close()
}
