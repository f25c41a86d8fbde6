// SPDX-License-Identifier: MPL-2.0
// Derived from the invowk project, internal/watch (MPL-2.0).
// Source: github.com/woozymasta/dirstd

// Package watch re-runs a callback when a project tree changes.
//
// Events are debounced: changes arriving within the debounce window are
// coalesced so that the callback fires once with every changed path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// ErrAlreadyStarted is returned by a second Run call.
var ErrAlreadyStarted = errors.New("watch: already started")

// defaultIgnores are always excluded; VCS metadata and editor swap files
// change constantly without altering the project layout.
var defaultIgnores = []string{
	".git",
	"**/.git",
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// Config holds the parameters of a Watcher.
type Config struct {
	// OnChange receives the sorted, deduplicated changed paths relative to Root.
	OnChange func(ctx context.Context, changed []string) error
	// Logger receives informational and error output; nil discards it.
	Logger *log.Logger
	// Root is the watched directory; empty means the working directory.
	Root string
	// Exclude are doublestar globs, relative to Root, merged with the defaults.
	Exclude []string
	// Debounce is the quiet period after the last event before OnChange fires.
	Debounce time.Duration
}

// Watcher monitors a directory tree and fires a debounced callback.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	logger   *log.Logger
	root     string
	excludes []string
	debounce time.Duration
	started  atomic.Bool
}

// New creates a Watcher and registers every non-excluded directory below Root.
func New(cfg Config) (*Watcher, error) {
	root := cfg.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: working directory: %w", err)
		}
		root = wd
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("watch: invalid exclude glob %q", pattern)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	excludes := make([]string, 0, len(defaultIgnores)+len(cfg.Exclude))
	excludes = append(excludes, defaultIgnores...)
	excludes = append(excludes, cfg.Exclude...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		logger:   logger,
		root:     absRoot,
		excludes: excludes,
		debounce: debounce,
	}

	if err := w.addDirectories(); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Root returns the absolute watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Run processes events until ctx is done and returns nil on cancellation.
//
// OnChange never runs concurrently with itself; events arriving while it
// runs are kept and delivered on the next debounce tick.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}

		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous run still in progress, rescheduling")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange == nil {
			return
		}

		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.logger.Error("change callback failed", "err", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()

		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}

			rel, err := filepath.Rel(w.root, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			rel = filepath.ToSlash(rel)

			if w.isExcluded(rel) {
				continue
			}

			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name, rel)
			}

			w.logger.Debug("change", "path", rel, "op", evt.Op.String())

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}

			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}

			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// addDirectories registers every non-excluded directory below the root.
func (w *Watcher) addDirectories() error {
	err := filepath.WalkDir(w.root, func(full string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Warn("skipping inaccessible path", "path", full, "err", walkErr)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(w.root, full)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if rel != "." && w.isExcluded(rel) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(full); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", full, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %s: %w", w.root, err)
	}

	return nil
}

// maybeAddDir extends the watch to directories created after startup.
func (w *Watcher) maybeAddDir(full string, rel string) {
	info, err := os.Stat(full)
	if err != nil || !info.IsDir() {
		return
	}

	if err := w.fsw.Add(full); err != nil {
		w.logger.Warn("add new directory", "path", rel, "err", err)
	}
}

// isExcluded reports whether a slash separated path relative to the root
// matches an exclude glob.
func (w *Watcher) isExcluded(rel string) bool {
	for _, pattern := range w.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// DefaultExcludes returns a copy of the built-in exclude globs.
func DefaultExcludes() []string {
	return slices.Clone(defaultIgnores)
}
