package configuration

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pguedes/gesticle/utils"
)

const DefaultDebounce = 250 * time.Millisecond

// Reloader is anything that can re-read its configuration
type Reloader interface {
	Reload() error
}

// Watcher reloads the configuration whenever its file changes on disk.
// Editors often replace files instead of writing them, so the parent
// directory is watched and events are filtered by file name.
type Watcher struct {
	target   Reloader
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// OnReload, when set, is called after every reload attempt
	OnReload func(err error)
}

// NewWatcher starts watching path for changes
func NewWatcher(target Reloader, path string, debounce time.Duration) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watcher needs a configuration file path")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	return &Watcher{
		target:   target,
		path:     absPath,
		debounce: debounce,
		watcher:  fsw,
	}, nil
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Run processes file events until ctx is done, then releases the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				utils.Verbose("configuration file event: %s", event)
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			utils.Warn("configuration watcher error: %v", err)

		case <-timer.C:
			err := w.target.Reload()
			if err != nil {
				utils.Error("failed to reload configuration after change: %v", err)
			}
			if w.OnReload != nil {
				w.OnReload(err)
			}
		}
	}
}
