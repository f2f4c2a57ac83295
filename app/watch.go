package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"logo-scene/assets"
	"logo-scene/panel"
)

// WatchPreset reloads the preset at path whenever the file is written and
// posts the result to queue, so it is applied on the frame thread. The
// directory is watched rather than the file because editors often replace
// files on save. Watching stops when ctx is cancelled; the returned channel
// closes once the watcher has shut down.
func WatchPreset(ctx context.Context, log *slog.Logger, path string, queue *assets.Queue, apply func(panel.Preset)) (<-chan struct{}, error) {
	if log == nil {
		log = slog.Default()
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("preset watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %q: %w", filepath.Dir(path), err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				pr, err := panel.LoadPreset(path)
				if err != nil {
					// partial writes show up as decode errors; the next event retries
					log.Warn("preset reload failed", "path", path, "err", err)
					continue
				}
				log.Info("preset changed", "path", path, "name", pr.Name)
				queue.Post(func() { apply(pr) })
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("preset watcher error", "err", err)
			}
		}
	}()
	return done, nil
}
