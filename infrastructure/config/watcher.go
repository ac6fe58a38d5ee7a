package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const overlayDebounce = 100 * time.Millisecond

// OverlayWatcher watches the simulator overlay file for changes
type OverlayWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *SimulatorOverlay
	mu       sync.RWMutex
	onChange []func(*SimulatorOverlay)
	logger   *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewOverlayWatcher loads the overlay at path and prepares a watcher for it
func NewOverlayWatcher(path string, logger *zap.Logger) (*OverlayWatcher, error) {
	overlay, err := LoadOverlay(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial overlay: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory so atomic saves (rename over the file) are seen
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch overlay directory: %w", err)
	}

	return &OverlayWatcher{
		path:    path,
		watcher: watcher,
		current: overlay,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for overlay changes
func (w *OverlayWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("Overlay watcher started", zap.String("path", w.path))
}

// Stop stops watching. Safe to call more than once.
func (w *OverlayWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		w.logger.Info("Overlay watcher stopped")
	})
}

func (w *OverlayWatcher) watchLoop() {
	var debounceTimer *time.Timer

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(overlayDebounce, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// reload applies a changed overlay; invalid files are logged and ignored
func (w *OverlayWatcher) reload() {
	select {
	case <-w.stopCh:
		return
	default:
	}

	w.logger.Info("Overlay file changed, reloading", zap.String("path", w.path))

	overlay, err := LoadOverlay(w.path)
	if err != nil {
		w.logger.Error("Invalid overlay, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	old := w.current
	w.current = overlay
	handlers := append([]func(*SimulatorOverlay){}, w.onChange...)
	w.mu.Unlock()

	w.logChanges(old, overlay)

	for _, handler := range handlers {
		handler(overlay)
	}
}

func (w *OverlayWatcher) logChanges(old, cur *SimulatorOverlay) {
	changes := []string{}

	if old.Paused != cur.Paused {
		changes = append(changes, fmt.Sprintf("paused: %v -> %v", old.Paused, cur.Paused))
	}
	if fmtWait(old.MinWait) != fmtWait(cur.MinWait) {
		changes = append(changes, fmt.Sprintf("min_wait: %s -> %s", fmtWait(old.MinWait), fmtWait(cur.MinWait)))
	}
	if fmtWait(old.MaxWait) != fmtWait(cur.MaxWait) {
		changes = append(changes, fmt.Sprintf("max_wait: %s -> %s", fmtWait(old.MaxWait), fmtWait(cur.MaxWait)))
	}

	names := make([]string, 0, len(cur.Actions))
	for name := range cur.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if old.Actions[name] != cur.Actions[name] {
			changes = append(changes, fmt.Sprintf("actions.%s: %v -> %v", name, old.Actions[name], cur.Actions[name]))
		}
	}

	if len(changes) > 0 {
		w.logger.Info("Overlay changes detected", zap.Strings("changes", changes))
	}
}

func fmtWait(v *float64) string {
	if v == nil {
		return "unset"
	}
	return fmt.Sprintf("%gs", *v)
}

// OnChange registers a callback invoked after each successful reload
func (w *OverlayWatcher) OnChange(handler func(*SimulatorOverlay)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// Current returns the most recently loaded overlay
func (w *OverlayWatcher) Current() *SimulatorOverlay {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}
