package profile

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce coalesces the burst of filesystem events editors
// produce for a single save.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the profiles file whenever it changes on disk. The
// containing directory is watched rather than the file itself so
// atomic-rename saves keep working.
type Watcher struct {
	loader *Loader
	path   string
	fsw    *fsnotify.Watcher
	log    *zap.Logger
	done   chan struct{}
}

// NewWatcher starts watching the profiles file at path.
func NewWatcher(loader *Loader, path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		loader: loader,
		path:   path,
		fsw:    fsw,
		log:    log,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	var debounce *time.Timer
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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("profile watch error", zap.Error(err))
		}
	}
}

// reload re-reads the profiles file, keeping the previous set when the
// new contents do not parse.
func (w *Watcher) reload() {
	if err := w.loader.Load(w.path); err != nil {
		w.log.Warn("profile reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("profiles reloaded", zap.String("path", w.path))
}
