package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"sitemap-manager/core/reconcile"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDropHandler registers a function called for every dropped event.
func WithDropHandler(fn func()) Option {
	return func(w *Watcher) { w.onDrop = fn }
}

// Watcher watches a workspace recursively and emits debounced file events.
type Watcher struct {
	config  Config
	root    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	onDrop  func()

	// Known files, used to tell a new file from a replaced one
	knownMu sync.Mutex
	known   map[string]bool
	dirs    map[string]bool

	pendingMu sync.Mutex
	pending   *batch

	events        chan reconcile.FileEvent
	droppedEvents atomic.Int64
}

// New creates a watcher for the workspace at root. Invalid ignore globs are rejected.
func New(cfg Config, root string, logger *zap.Logger, opts ...Option) (*Watcher, error) {
	for _, p := range cfg.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.New("invalid ignore pattern: " + p)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:  cfg,
		root:    filepath.Clean(root),
		watcher: fsw,
		logger:  logger,
		known:   make(map[string]bool),
		dirs:    make(map[string]bool),
		pending: newBatch(),
		events:  make(chan reconcile.FileEvent, cfg.queueSize()),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Events returns the channel of file events. It is closed when the watcher stops.
func (w *Watcher) Events() <-chan reconcile.FileEvent {
	return w.events
}

// Start adds watches for the workspace tree and begins emitting events.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.root, false); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Workspace watcher started",
		zap.String("root", w.root),
		zap.Duration("debounce", w.config.debounce()),
		zap.Strings("ignore", w.config.Ignore))
	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// ignored reports whether a path matches one of the ignore globs. Directories
// also match when everything below them would.
func (w *Watcher) ignored(p string, isDir bool) bool {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.config.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if isDir {
			if ok, _ := doublestar.Match(pattern, path.Join(rel, "x")); ok {
				return true
			}
		}
	}
	return false
}

// addTree watches every directory below root. With announce set, files found
// are recorded as created, for directories that appear while running.
func (w *Watcher) addTree(root string, announce bool) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if w.ignored(p, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			w.knownMu.Lock()
			w.known[p] = true
			w.knownMu.Unlock()
			if announce {
				w.record(fsnotify.Event{Name: p, Op: fsnotify.Create}, false)
			}
			return nil
		}

		if err := w.watcher.Add(p); err != nil {
			w.logger.Warn("Failed to watch directory",
				zap.String("path", p),
				zap.Error(err))
			return nil
		}
		w.knownMu.Lock()
		w.dirs[p] = true
		w.knownMu.Unlock()
		w.logger.Debug("Watching directory", zap.String("path", p))
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.debounce())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.flushPending()
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", zap.Error(err))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent processes a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) {
		return
	}
	p := filepath.Clean(event.Name)

	w.knownMu.Lock()
	wasDir := w.dirs[p]
	existed := w.known[p]
	w.knownMu.Unlock()

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if !w.ignored(p, true) {
				if err := w.addTree(p, true); err != nil {
					w.logger.Warn("Failed to watch new directory", zap.String("path", p), zap.Error(err))
				}
			}
			return
		}
	}

	if wasDir && event.Has(fsnotify.Remove|fsnotify.Rename) {
		w.forgetDir(p)
		return
	}

	if w.ignored(p, false) {
		return
	}

	w.knownMu.Lock()
	switch {
	case event.Has(fsnotify.Create):
		w.known[p] = true
	case event.Has(fsnotify.Remove | fsnotify.Rename):
		delete(w.known, p)
	}
	w.knownMu.Unlock()

	w.record(fsnotify.Event{Name: p, Op: event.Op}, existed)
	w.logger.Debug("File change detected",
		zap.String("path", p),
		zap.String("op", event.Op.String()))
}

// forgetDir handles a directory that was removed or moved away: every known
// file below it is reported as deleted.
func (w *Watcher) forgetDir(dir string) {
	prefix := dir + string(filepath.Separator)
	var gone []string

	w.knownMu.Lock()
	for p := range w.known {
		if len(p) > len(prefix) && p[:len(prefix)] == prefix {
			gone = append(gone, p)
			delete(w.known, p)
		}
	}
	for d := range w.dirs {
		if d == dir || (len(d) > len(prefix) && d[:len(prefix)] == prefix) {
			delete(w.dirs, d)
			_ = w.watcher.Remove(d)
		}
	}
	w.knownMu.Unlock()

	for _, p := range gone {
		w.record(fsnotify.Event{Name: p, Op: fsnotify.Remove}, true)
	}
	w.logger.Info("Directory removed from workspace",
		zap.String("path", dir),
		zap.Int("files", len(gone)))
}

func (w *Watcher) record(event fsnotify.Event, existed bool) {
	w.pendingMu.Lock()
	w.pending.record(event, existed)
	w.pendingMu.Unlock()
}

// flushPending emits accumulated changes.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if w.pending.empty() {
		w.pending.moved = nil
		w.pendingMu.Unlock()
		return
	}
	events := w.pending.flush()
	w.pendingMu.Unlock()

	for _, ev := range events {
		w.sendEvent(ev)
	}
}

// sendEvent sends an event to the output channel.
func (w *Watcher) sendEvent(event reconcile.FileEvent) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent file event",
			zap.String("path", event.Path),
			zap.String("op", string(event.Op)))
	default:
		dropped := w.droppedEvents.Add(1)
		if w.onDrop != nil {
			w.onDrop()
		}
		w.logger.Warn("Event channel full, dropping event",
			zap.String("path", event.Path),
			zap.Int64("total_dropped", dropped))
	}
}
