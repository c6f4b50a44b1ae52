package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/vgallery/internal/config"
)

const defaultWatchDebounce = 200 * time.Millisecond

// ConfigWatcher reloads a gallery file whenever it changes on disk.
type ConfigWatcher struct {
	path     string
	delay    time.Duration
	watcher  *fsnotify.Watcher
	onChange func(config.Config)
	onError  func(error)

	mu    sync.Mutex
	timer *time.Timer
}

// WatchConfig starts watching path. The directory is watched rather than the
// file so editors that save by renaming a temporary file are still seen.
// Bursts of events within delay collapse into one reload; onChange receives
// the freshly loaded config and onError any load or watch failure. The
// watcher stops when ctx is cancelled or Close is called.
func WatchConfig(ctx context.Context, path string, delay time.Duration, onChange func(config.Config), onError func(error)) (*ConfigWatcher, error) {
	if delay <= 0 {
		delay = defaultWatchDebounce
	}
	if onError == nil {
		onError = func(err error) { log.Printf("config watcher: %v", err) }
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(resolved)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(resolved), err)
	}

	w := &ConfigWatcher{
		path:     resolved,
		delay:    delay,
		watcher:  fsw,
		onChange: onChange,
		onError:  onError,
	}
	go w.loop(ctx)
	return w, nil
}

func (w *ConfigWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *ConfigWatcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.reload)
}

func (w *ConfigWatcher) reload() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.onError(err)
		return
	}
	if cfg.Path == "" {
		// Removed, and not yet replaced; the next create reloads it.
		return
	}
	w.onChange(cfg)
}

// Close stops watching. Pending reloads are dropped.
func (w *ConfigWatcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
