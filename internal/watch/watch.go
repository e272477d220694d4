// Package watch triggers debounced rebuilds when the site definition or the
// content tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a rebuild runs.
const DefaultDebounce = 500 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithExtensions limits content-tree triggers to files with these extensions.
// Removals and renames always trigger.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		for _, ext := range exts {
			w.exts[strings.ToLower(ext)] = true
		}
	}
}

// Watcher monitors directories recursively and individual files.
type Watcher struct {
	onChange func(context.Context) error
	debounce time.Duration
	exts     map[string]bool

	watcher *fsnotify.Watcher
	roots   []string
	files   map[string]bool

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a watcher calling onChange after changes settle.
func New(onChange func(context.Context) error, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		onChange: onChange,
		debounce: DefaultDebounce,
		exts:     map[string]bool{},
		watcher:  fsw,
		files:    map[string]bool{},
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddTree watches dir and every non-hidden directory below it, including
// directories created later.
func (w *Watcher) AddTree(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if err := w.addTree(abs); err != nil {
		return err
	}
	w.mu.Lock()
	w.roots = append(w.roots, abs)
	w.mu.Unlock()
	return nil
}

// AddFile watches a single file through its parent directory, which survives
// editors that replace files on save.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(abs), err)
	}
	w.mu.Lock()
	w.files[abs] = true
	w.mu.Unlock()
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && hidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}

// Start begins processing events until ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("watcher already started")
	}
	w.started = true

	slog.Info("Starting watcher", slog.Int("trees", len(w.roots)), slog.Int("files", len(w.files)))
	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop ends event processing and releases the underlying watcher. It is safe
// to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.wg.Wait()
		err = w.watcher.Close()
		slog.Info("Stopped watcher")
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.handle(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", logfields.Error(err))
		case <-timerC:
			timerC = nil
			slog.Info("Changes detected, rebuilding")
			if err := w.onChange(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// handle updates the watch set for event and reports whether it should trigger a rebuild.
func (w *Watcher) handle(event fsnotify.Event) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[event.Name] {
		slog.Debug("Watched file changed", logfields.File(event.Name), slog.String("op", event.Op.String()))
		return event.Op != fsnotify.Chmod
	}

	root := w.rootFor(event.Name)
	if root == "" || hiddenBelow(root, event.Name) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if isDir(event.Name) {
			if err := w.addTree(event.Name); err != nil {
				slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
			return true
		}
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}
	if event.Op == fsnotify.Chmod {
		return false
	}
	if len(w.exts) > 0 && !w.exts[strings.ToLower(filepath.Ext(event.Name))] {
		return false
	}
	slog.Debug("Content changed", logfields.File(event.Name), slog.String("op", event.Op.String()))
	return true
}

func (w *Watcher) rootFor(name string) string {
	for _, root := range w.roots {
		if name == root || strings.HasPrefix(name, root+string(filepath.Separator)) {
			return root
		}
	}
	return ""
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func hiddenBelow(root, name string) bool {
	rel, err := filepath.Rel(root, name)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if part != "." && hidden(part) {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
