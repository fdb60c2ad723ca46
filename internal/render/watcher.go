package render

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pagesmith/pagesmith/internal/logger"
)

// reloadDebounce is how long the watcher waits after the last observed
// file-system event before recompiling. Editors tend to emit bursts of
// writes per save; one reload per burst is enough.
const reloadDebounce = 2 * time.Second

// Watcher observes the registry's template directory and triggers a
// registry reload when files change. It implements workers.Worker: Run
// starts the event loop in a background goroutine, Stop tears it down.
type Watcher struct {
	registry  *Registry
	fsWatcher *fsnotify.Watcher

	done   chan struct{}
	logger *logger.Logger
}

// NewWatcher creates a watcher over the registry's directory and every
// subdirectory in it.
func NewWatcher(registry *Registry, logger *logger.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// fsnotify does not watch recursively; every subdirectory is added
	// explicitly, and directories created later are added in the loop
	if err := filepath.WalkDir(registry.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsWatcher.Add(path)
		}
		return nil
	}); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		registry:  registry,
		fsWatcher: fsWatcher,
		done:      make(chan struct{}),
		logger:    logger,
	}, nil
}

// Run starts the watch loop in a background goroutine.
func (w *Watcher) Run() {
	w.logger.Info().Str("dir", w.registry.dir).Msg("template watcher started")
	go w.loop()
}

// Stop terminates the watch loop and releases the file-system watches.
func (w *Watcher) Stop() {
	close(w.done)
	if err := w.fsWatcher.Close(); err != nil {
		w.logger.Err(err).Msg("error closing template watcher")
	}
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsWatcher.Add(event.Name); err != nil {
						w.logger.Err(err).Str("dir", event.Name).Msg("error watching new directory")
					}
				}
			}

			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				fire = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			if err := w.registry.Reload(); err != nil {
				w.logger.Err(err).Msg("template reload after fs event failed")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Err(err).Msg("template watcher error")
		}
	}
}
