// Package watch reports changes to a fixed set of files using fsnotify.
//
// Parent directories are watched rather than the files themselves, so files
// replaced by editors through rename-over-original keep being tracked.
// Bursts of events are coalesced into one callback per quiet period.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// ErrClosed is returned by Run when the watcher was closed.
var ErrClosed = errors.New("watcher closed")

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Logger   *zap.Logger
}

// Watcher invokes a callback when any of its files changes.
type Watcher struct {
	files    map[string]struct{}
	debounce time.Duration
	log      *zap.Logger
	watcher  *fsnotify.Watcher

	mu     sync.Mutex
	closed bool
}

// New creates a Watcher for paths. The files need not exist yet, but their
// parent directories must.
func New(paths []string, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		debounce: opts.Debounce,
		log:      opts.Logger,
		watcher:  fw,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.log == nil {
		w.log = zap.NewNop()
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
		w.log.Debug("watching directory", zap.String("dir", dir))
	}

	return w, nil
}

// Files returns the watched files as absolute paths, sorted.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Run delivers coalesced change notifications to onChange until ctx is
// cancelled (returning nil) or the watcher is closed (returning ErrClosed).
// onChange runs on the Run goroutine and receives the changed files sorted.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	pending := make(map[string]struct{})

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return ErrClosed
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("file event", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			pending[filepath.Clean(event.Name)] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			sort.Strings(changed)
			clear(pending)
			onChange(changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrClosed
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// relevant reports whether event touches a watched file in a way that can
// change its content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
