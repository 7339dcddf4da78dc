package cli

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an editor save produces.
var watchDebounce = 200 * time.Millisecond

// fileWatcher signals on Changes whenever one file is written, created or
// renamed over. The parent directory is watched so editors that replace the
// file on save are still seen.
type fileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	errc    chan error
	done    chan struct{}

	mu       sync.Mutex
	debounce *time.Timer
	closed   bool
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	fw := &fileWatcher{
		path:    abs,
		watcher: w,
		changes: make(chan struct{}, 1),
		errc:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go fw.run()
	return fw, nil
}

// Changes receives one value per debounced change. It is closed by Close.
func (w *fileWatcher) Changes() <-chan struct{} { return w.changes }

// Errors receives watcher errors. Sends are dropped when nobody is reading.
func (w *fileWatcher) Errors() <-chan error { return w.errc }

func (w *fileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *fileWatcher) run() {
	defer close(w.done)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errc <- err:
			default:
			}
		}
	}
}

func (w *fileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(watchDebounce, w.signal)
}

func (w *fileWatcher) signal() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// watchAndRun calls run each time path changes until ctx is cancelled. A
// failing run is reported and watching continues.
func (c *CLI) watchAndRun(ctx context.Context, path string, run func() error) error {
	w, err := newFileWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close()

	logger := loggerFromContext(ctx)
	printInfo("Watching %s for changes (Ctrl+C to stop)", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			logger.Debug("change detected", "path", path)
			if err := run(); err != nil {
				printError("%v", err)
			}
		case err := <-w.Errors():
			logger.Warn("watch error", "error", err)
		}
	}
}
