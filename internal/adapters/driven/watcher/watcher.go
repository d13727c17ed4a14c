// Package watcher detects changes in searched directories with fsnotify.
package watcher

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DirWatcher = (*Watcher)(nil)

// relevantOps are the events that can change a duplicate listing.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher watches the top level of each directory. Changes in nested
// directories are not reported.
type Watcher struct{}

// New creates a directory watcher.
func New() *Watcher {
	return &Watcher{}
}

// Watch starts watching dirs and calls onChange for every relevant event.
func (w *Watcher) Watch(dirs []string, onChange func(path string)) (func() error, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Op&relevantOps == 0 {
					continue
				}
				logger.Debug("change detected: %s", event)
				onChange(event.Name)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error: %v", err)
			}
		}
	}()

	var once sync.Once
	var closeErr error
	stop := func() error {
		once.Do(func() {
			closeErr = fw.Close()
			<-done
		})
		return closeErr
	}
	return stop, nil
}
