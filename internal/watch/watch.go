// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package watch reloads a store when its source documents are edited on
// disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/larentoun/translate-helper/source"
)

// DefaultDebounce is how long the watcher waits for edits to settle.
const DefaultDebounce = 500 * time.Millisecond

// Reloader reloads state from disk.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Options are options for a Watcher.
type Options struct {
	// Debounce is how long to wait after the last change before reloading.
	// Defaults to DefaultDebounce.
	Debounce time.Duration

	// OnReload, if set, is called after every reload attempt.
	OnReload func(error)

	// Logger receives watcher events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Watcher watches a directory of source documents.
type Watcher struct {
	dir      string
	r        Reloader
	debounce time.Duration
	onReload func(error)
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
}

// New returns a Watcher for the documents in dir. The directory is watched
// from the time New returns.
func New(dir string, r Reloader, opts *Options) (*Watcher, error) {
	if opts == nil {
		opts = &Options{}
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %q: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		r:        r,
		debounce: opts.Debounce,
		onReload: opts.OnReload,
		logger:   opts.Logger,
		watcher:  fw,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	return w, nil
}

// Run reloads on changes until ctx is done. The watcher is closed when Run
// returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	// Created stopped. It is armed by the first relevant event.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("source document changed",
				zap.String("file", event.Name),
				zap.Stringer("op", event.Op),
			)
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.String("dir", w.dir), zap.Error(err))

		case <-timer.C:
			err := w.r.Reload(ctx)
			if err != nil {
				w.logger.Error("reloading source documents", zap.Error(err))
			} else {
				w.logger.Info("reloaded source documents", zap.String("dir", w.dir))
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}

// relevant returns true for content changes to source documents. Temporary
// files written during saves are ignored.
func relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || filepath.Ext(name) != source.Ext {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
