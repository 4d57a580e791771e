package keymap

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a keymap file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(Keymap)
	logger   *slog.Logger
}

// NewWatcher returns a Watcher calling onChange with every successfully
// parsed version of path. Parse errors are logged and the previous keymap
// stays in effect.
func NewWatcher(path string, onChange func(Keymap), logger *slog.Logger) *Watcher {
	return &Watcher{path: path, debounce: DefaultDebounce, onChange: onChange, logger: logger}
}

// WithDebounce overrides DefaultDebounce.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run watches until ctx is done. The parent directory is watched so that
// atomic replace-on-save is picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.logger.Info("watching keymap", "file", abs)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("keymap file event", "op", ev.Op.String(), "file", ev.Name)
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("keymap watcher error", "error", err)
		case <-timer.C:
			km, err := Load(abs)
			if err != nil {
				w.logger.Warn("keymap reload failed, keeping previous", "error", err)
				continue
			}
			w.logger.Info("keymap reloaded", "file", abs)
			w.onChange(km)
		}
	}
}
