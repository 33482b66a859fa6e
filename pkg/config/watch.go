package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/withgalaxy/responsive/pkg/watcher"
)

const reloadDelay = 150 * time.Millisecond

// Watch reloads the config at path whenever it changes and passes the
// result to fn until ctx is done. The parent directory is watched so
// editors that save by rename are picked up.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	debouncer := watcher.NewDebouncer(reloadDelay)
	defer debouncer.Stop()
	reload := func() {
		if ctx.Err() != nil {
			return
		}
		fn(Load(abs))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				debouncer.Trigger(reload)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watch config: %w", err))
		}
	}
}
