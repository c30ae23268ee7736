package seed

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"dialectic-hq/mgd/pkg/dialectic/engine"
	"dialectic-hq/mgd/pkg/telemetry/logging"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherStopped is returned by Watch after Stop has been called.
var ErrWatcherStopped = errors.New("seed watcher stopped")

// Watcher reloads a seed file whenever it changes.
//
// The parent directory is watched rather than the file itself so that
// editors that save by renaming a temporary file are picked up.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	config   *WatcherConfig
	debounce *Debouncer

	mu        sync.Mutex
	running   bool
	stopped   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// WatcherConfig contains configuration for the seed watcher.
type WatcherConfig struct {
	// Path is the seed file to watch.
	Path string

	// DebounceInterval is the quiet period after the last change before the
	// file is reloaded (default: 100ms).
	DebounceInterval time.Duration
}

// NewWatcher creates a watcher for cfg.Path. A nil logger discards logs.
func NewWatcher(cfg *WatcherConfig, logger *logging.Logger) (*Watcher, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, errors.New("seed watcher requires a path")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	interval := cfg.DebounceInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve seed path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		logger:   logger,
		config:   &WatcherConfig{Path: path, DebounceInterval: interval},
		debounce: NewDebouncer(interval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, invoking onReload
// with the freshly loaded state after every settled change. Files that fail
// to load are logged and skipped; errors returned by onReload are logged.
func (w *Watcher) Watch(ctx context.Context, onReload func(engine.State) error) error {
	w.mu.Lock()
	switch {
	case w.stopped:
		w.mu.Unlock()
		return ErrWatcherStopped
	case w.running:
		w.mu.Unlock()
		return errors.New("seed watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.release()
		close(w.doneCh)
	}()

	dir := filepath.Dir(w.config.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.logger.Info("seed watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("seed watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("seed watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("seed file event", "path", event.Name, "op", event.Op.String())
			w.debounce.Trigger(func() { w.reload(onReload) })

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("seed watcher error", "error", err)
		}
	}
}

// Stop ends a running Watch and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	running := w.running
	close(w.stopCh)
	w.mu.Unlock()

	if running {
		<-w.doneCh
	}
	return w.release()
}

func (w *Watcher) release() error {
	w.closeOnce.Do(func() {
		w.debounce.Stop()
		if err := w.watcher.Close(); err != nil {
			w.closeErr = fmt.Errorf("failed to close watcher: %w", err)
		}
	})
	return w.closeErr
}

func (w *Watcher) reload(onReload func(engine.State) error) {
	state, err := Load(w.config.Path)
	if err != nil {
		w.logger.Warn("seed reload skipped", "path", w.config.Path, "error", err)
		return
	}

	w.logger.Info("seed reloaded", "path", w.config.Path, "tensions", state.Len())
	if err := onReload(state); err != nil {
		w.logger.Error("seed reload callback failed", "error", err)
	}
}

// relevant keeps writes and creates of the watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.config.Path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
