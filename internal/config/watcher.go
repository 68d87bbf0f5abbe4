package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events an editor produces when it
// replaces the config file.
const reloadDebounce = 250 * time.Millisecond

// Watcher reloads the config file when it changes on disk and delivers the
// result to a callback. The parent directory is watched rather than the
// file itself so atomic rename-into-place saves are seen.
type Watcher struct {
	path     string
	onReload func(Config, error)

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	timer   *time.Timer
	closed  bool
	closeCh chan struct{}
	done    sync.WaitGroup
}

// WatchFile starts watching the config file at path. onReload is called
// from the watcher goroutine with the freshly loaded config, or with the
// load error when the new file is malformed.
func WatchFile(path string, onReload func(Config, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		onReload: onReload,
		watcher:  fsw,
		closeCh:  make(chan struct{}),
	}
	w.done.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit. A reload
// already scheduled by the debounce timer may still fire.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.done.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.done.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			w.scheduleReload()

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not actionable here; the next event
			// still triggers a reload.
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, func() {
		w.onReload(Load(w.path))
	})
}
