package converter

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"ramlconv/internal/logger"
)

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc receives the outcome of every batch started by Watch.
type RunFunc func(summary *Summary, err error)

// Watch runs one batch immediately and another whenever an input document
// is written, created or renamed. It returns when ctx is done.
func (c *Converter) Watch(ctx context.Context, debounce time.Duration, onRun RunFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	// Watch the directory rather than the file so atomic saves are seen.
	dir := c.cfg.InputDir()
	if c.cfg.InputFileName != "" {
		dir = filepath.Dir(c.cfg.InputFileName)
	}
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}

	logger.Infow("watching for changes", "directory", dir)
	onRun(c.Run(ctx))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !c.relevant(event) {
				continue
			}
			logger.Debugw("change detected", "file", event.Name, "op", event.Op.String())

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			onRun(c.Run(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("watcher error", "error", err)
		}
	}
}

func (c *Converter) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if c.cfg.InputFileName != "" {
		return filepath.Base(event.Name) == filepath.Base(c.cfg.InputFileName)
	}
	return isInput(event.Name)
}
