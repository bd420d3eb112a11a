// Package watcher reloads the building index when a floor document changes
// on disk. Plan documents are replaced wholesale by facilities exports, so a
// single debounced reload covers the whole batch.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches the parent directories of the floor documents and invokes
// onChange once per burst of writes to any of them.
type Watcher struct {
	documents map[string]struct{}
	onChange  func(path string)
	debounce  time.Duration
	logger    *zap.Logger

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	timer    *time.Timer
	lastPath string
	done     chan struct{}
	started  bool
	stopOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce overrides the settle delay before onChange fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New creates a watcher for the given document paths. onChange receives the
// path of the last document that changed in the settled burst.
func New(documents []string, onChange func(path string), opts ...Option) *Watcher {
	w := &Watcher{
		documents: make(map[string]struct{}, len(documents)),
		onChange:  onChange,
		debounce:  defaultDebounce,
		logger:    zap.NewNop(),
		done:      make(chan struct{}),
	}
	for _, doc := range documents {
		w.documents[filepath.Clean(doc)] = struct{}{}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	// Watch parent directories, not the files themselves: editors and
	// copy-over replacements remove the original inode, which would drop
	// a direct file watch.
	dirs := make(map[string]struct{})
	for doc := range w.documents {
		dirs[filepath.Dir(doc)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			w.mu.Unlock()
			return err
		}
	}
	w.watcher = watcher
	w.started = true
	w.logger.Debug("document watcher started", zap.Int("documents", len(w.documents)))
	w.mu.Unlock()
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)
	if _, ok := w.documents[path]; !ok {
		return
	}
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("document changed", zap.String("op", ev.Op.String()), zap.String("path", path))
	w.scheduleReload(path)
}

// scheduleReload arms (or re-arms) the single debounce timer. Bursts of
// events across several documents settle into one onChange call.
func (w *Watcher) scheduleReload(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastPath = path
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.timer = nil
		last := w.lastPath
		w.mu.Unlock()
		if w.onChange != nil {
			w.onChange(last)
		}
	})
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
