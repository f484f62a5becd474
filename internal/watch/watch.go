// Package watch re-runs a conversion whenever the input env file changes.
//
// It follows the file through editor replace-and-rename cycles by waiting
// for the path to reappear after a remove or rename event.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures the watcher behavior.
type Options struct {
	FilePath string       // Path to the env file to watch
	OnChange func() error // Called after every change, and once at startup
}

// Watcher re-runs a callback when the watched file is modified.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	return &Watcher{opts: opts}
}

// Run starts watching. It runs OnChange once immediately, then blocks until
// the context is cancelled or an error occurs.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	w.watcher = watcher
	defer w.watcher.Close()

	if err := w.watcher.Add(w.opts.FilePath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.FilePath, err)
	}

	if err := w.opts.OnChange(); err != nil {
		return err
	}

	return w.watch(ctx)
}

func (w *Watcher) watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if err := w.handleEvent(ctx, event); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleEvent processes a file system event.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) error {
	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		return w.opts.OnChange()

	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// Editors often replace the file; wait for it to come back.
		return w.awaitReappear(ctx)
	}

	return nil
}

// awaitReappear waits for the watched path to exist again after a
// remove/rename, then re-adds it and re-runs the callback.
func (w *Watcher) awaitReappear(ctx context.Context) error {
	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for %s to reappear", w.opts.FilePath)
		case <-ticker.C:
			if err := w.watcher.Add(w.opts.FilePath); err != nil {
				continue
			}
			return w.opts.OnChange()
		}
	}
}
