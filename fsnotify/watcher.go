// Package fsnotify reloads the knowledge document when it changes on disk.
package fsnotify

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a reload.
const DefaultDebounce = 300 * time.Millisecond

// Reloader rebuilds state from the watched file.
type Reloader interface {
	Reload() (bool, error)
}

// Watcher triggers a reload after the watched file settles.
type Watcher struct {
	path     string
	reloader Reloader
	logger   *slog.Logger

	// Debounce collapses bursts of events, such as an editor's
	// truncate-then-write, into one reload.
	Debounce time.Duration
}

// NewWatcher creates a Watcher for path.
func NewWatcher(path string, r Reloader, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		path:     filepath.Clean(path),
		reloader: r,
		logger:   logger,
		Debounce: DefaultDebounce,
	}
}

// Run watches until ctx is done. The parent directory is watched rather
// than the file so atomic replacements by rename are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.logger.Info("watching knowledge", "path", w.path, "debounce", w.Debounce)

	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("knowledge changed", "path", w.path, "op", event.Op.String())
			timer.Reset(w.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "path", w.path, "err", err)

		case <-timer.C:
			changed, err := w.reloader.Reload()
			if err != nil {
				w.logger.Warn("knowledge reload failed", "path", w.path, "err", err)
				continue
			}
			w.logger.Debug("knowledge reload", "path", w.path, "changed", changed)
		}
	}
}
