package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period Watch waits for after the last file
// event before reloading.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the reloaded config, or the error that prevented
// loading it. cfg is nil when err is not.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads the config at path whenever the file changes and passes the
// result to fn. It watches the parent directory so editors that save by
// rename are followed. Watch returns once the watcher is running; it stops
// when ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, fn ReloadFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	go watchLoop(ctx, fsw, abs, path, debounce, fn)
	return nil
}

func watchLoop(ctx context.Context, fsw *fsnotify.Watcher, abs, path string, debounce time.Duration, fn ReloadFunc) {
	defer fsw.Close()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			fn(nil, fmt.Errorf("watch %s: %w", path, err))

		case <-timer.C:
			cfg, err := Load(path)
			fn(cfg, err)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
