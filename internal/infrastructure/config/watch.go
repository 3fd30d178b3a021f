package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changed YAML files in the config directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan string
	errs    chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs for YAML writes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		events:  make(chan string, 16),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll drains pending changes without blocking. It returns each changed
// path once, in arrival order, and the oldest watcher error not yet
// reported.
func (w *Watcher) Poll() ([]string, error) {
	var (
		names []string
		seen  = make(map[string]bool)
		err   error
	)
	select {
	case err = <-w.errs:
	default:
	}
	for {
		select {
		case n := <-w.events:
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		default:
			return names, err
		}
	}
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isYAMLFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
