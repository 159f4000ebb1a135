package cfgkit

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce batches the write/rename bursts editors produce into a
// single reload.
const reloadDebounce = 200 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path string
	fn   func(*Document, error)
	fsw  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// Watch loads path now and re-runs the full load (encoding detection,
// sniffing, decoding) after every change, invoking fn with the fresh
// Document or the load error. The watch survives atomic-rename saves
// because it is placed on the parent directory. Close releases it.
func Watch(path string, fn func(*Document, error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: editors and atomic writers replace the file,
	// which drops a watch placed on the file itself.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		path: path,
		fn:   fn,
		fsw:  fsw,
		done: make(chan struct{}),
	}
	go w.run()

	fn(Load(path))
	return w, nil
}

// Close stops watching. Pending debounced reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger().V(1).Info("config changed", "path", w.path, "op", event.Op.String())
			w.scheduleReload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger().Error(err, "watch error", "path", w.path)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.fn(Load(w.path))
	})
}
