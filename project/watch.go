// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// A Watcher calls a handler for candidate files under a root as they
// are created or saved. Rapid successive events for a file are
// collapsed into one call once the file has been quiet for the debounce
// delay.
type Watcher struct {
	root     string
	filter   Filter
	debounce time.Duration
	handle   func(ctx context.Context, path string)
	log      *zap.Logger

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	pending map[string]time.Time
	running bool
}

// NewWatcher returns a Watcher for the tree at root.
func NewWatcher(root string, filter Filter, debounce time.Duration, log *zap.Logger, handle func(context.Context, string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, xerrors.Errorf("watch: %w", err)
	}
	return &Watcher{
		root:     root,
		filter:   filter,
		debounce: debounce,
		handle:   handle,
		log:      log,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		pending:  make(map[string]time.Time),
	}, nil
}

// Start adds the directories under the root and begins delivering
// events in a new goroutine. It returns once the directories are watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.log.Info("watching", zap.String("root", w.root))
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.fsw.Close(); err != nil {
		w.log.Error("closing watcher", zap.Error(err))
	}
}

// addTree watches dir and every directory below it that discovery
// would descend into.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.filter.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return xerrors.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(max(w.debounce/4, 10*time.Millisecond))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.event(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", zap.Error(err))

		case <-tick.C:
			w.flush(ctx)
		}
	}
}

// event records a create or write of a candidate file.
// Newly created directories are watched as well.
func (w *Watcher) event(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Lstat(ev.Name); err == nil && fi.IsDir() {
			if !w.filter.SkipDir(filepath.Base(ev.Name)) {
				if err := w.addTree(ev.Name); err != nil {
					w.log.Warn("watch new directory", zap.Error(err))
				}
			}
			return
		}
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil || w.filter.SkipPath(rel) {
		return
	}
	w.log.Debug("change", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
	w.mu.Lock()
	w.pending[ev.Name] = time.Now()
	w.mu.Unlock()
}

// flush handles the files that have been quiet for the debounce delay.
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	var ready []string
	w.mu.Lock()
	for path, t := range w.pending {
		if now.Sub(t) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		w.handle(ctx, path)
	}
}
