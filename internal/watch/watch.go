// Package watch re-runs a callback when schema sources change on disk.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is how long the watcher waits after the last change
// before firing, so one editor save triggers one recomposition.
const DefaultDebounce = 500 * time.Millisecond

var watchedExts = map[string]bool{
	".graphql": true,
	".yaml":    true,
	".yml":     true,
}

// Watcher monitors schema directories and fires a single debounced
// callback when any schema or manifest file changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	callback  func()

	mu    sync.Mutex
	timer *time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a watcher that invokes callback after changes settle
// for the debounce interval.
func New(debounce time.Duration, callback func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		debounce:  debounce,
		callback:  callback,
		done:      make(chan struct{}),
	}, nil
}

// Add registers a file or directory tree to watch. Directories are
// watched rather than files so editor atomic saves are seen.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		absPath = filepath.Dir(absPath)
	}

	return filepath.WalkDir(absPath, func(dir string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
		log.Debug().Str("dir", dir).Msg("watching directory for schema changes")
		return nil
	})
}

// Start begins watching. It blocks until Close is called.
func (w *Watcher) Start() error {
	for {
		select {
		case <-w.done:
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// New directories join the watch set so nested subgraphs added
	// later are still seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.fsWatcher.Add(event.Name); err != nil {
				log.Error().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
			}
			return
		}
	}

	if !watchedExts[filepath.Ext(event.Name)] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	name := filepath.Base(event.Name)
	w.timer = time.AfterFunc(w.debounce, func() {
		log.Info().Str("file", name).Msg("schema change detected")
		w.callback()
	})
}

// Close stops the watcher. Safe to call multiple times.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		err = w.fsWatcher.Close()
	})
	return err
}
