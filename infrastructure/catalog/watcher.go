package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher coalesces change events
// before reloading. Editors often produce several events per save.
const DefaultDebounce = 200 * time.Millisecond

// ReloadHandler receives the reloaded scenario, or the error that kept
// it from loading. The watcher serializes calls; a handler is never
// invoked concurrently with itself.
type ReloadHandler func(*Scenario, error)

// Watcher reloads a scenario file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself: most
// editors replace a file by renaming a temporary over it, which would
// silently detach a watch held on the file.
type Watcher struct {
	path     string
	loader   *Loader
	handler  ReloadHandler
	debounce time.Duration

	fsw      *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long change events are coalesced before the
// scenario is reloaded. Non-positive values keep the default.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher for one scenario file. The handler is
// called after every reload attempt, including failed ones. A nil
// loader gets the default loader.
func NewWatcher(path string, loader *Loader, handler ReloadHandler, opts ...WatcherOption) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch %s: nil reload handler", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if loader == nil {
		loader = NewLoader()
	}
	w := &Watcher{
		path:     abs,
		loader:   loader,
		handler:  handler,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path of the watched scenario file.
func (w *Watcher) Path() string { return w.path }

// Start installs the watch and begins the reload loop. The loop runs
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop ends the watch and waits for the reload loop to exit. It is
// safe to call more than once, and before Start.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time // nil until the first relevant event

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.handler(nil, fmt.Errorf("watch %s: %w", w.path, err))
		case <-fire:
			timer = nil
			fire = nil
			scn, err := w.loader.LoadFile(w.path)
			w.handler(scn, err)
		}
	}
}
