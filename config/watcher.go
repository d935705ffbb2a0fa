// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watcher reloads a config file whenever it changes.
// Reloaded configs are collected with [Watcher.Next], which
// the render loop calls once per frame; only the latest
// reloaded config is kept.
type Watcher struct {
	// Path is the watched config file.
	Path string

	watcher *fsnotify.Watcher
	configs chan *Config
	wg      sync.WaitGroup
}

// Watch starts watching the config file at the given path.
// The directory is watched rather than the file, so that
// editors that save by renaming a new file into place are seen.
func Watch(path string) (*Watcher, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	p, err = filepath.Abs(p)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(p)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{Path: p, watcher: fw, configs: make(chan *Config, 1)}
	w.wg.Add(1)
	go w.run()
	slog.Debug("config: watching", "path", p)
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			c, err := Open(w.Path)
			if err != nil {
				slog.Error("config: reload failed", "path", w.Path, "err", err)
				continue
			}
			slog.Info("config: reloaded", "path", w.Path)
			w.put(c)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config: watcher error: " + err.Error())
		}
	}
}

// put replaces any pending config with c.
func (w *Watcher) put(c *Config) {
	for {
		select {
		case w.configs <- c:
			return
		default:
		}
		select {
		case <-w.configs:
		default:
		}
	}
}

// Next returns the latest reloaded config, if there is one
// that has not been returned yet. It does not block.
func (w *Watcher) Next() (*Config, bool) {
	select {
	case c := <-w.configs:
		return c, true
	default:
		return nil, false
	}
}

// Configs returns the channel of reloaded configs.
func (w *Watcher) Configs() <-chan *Config {
	return w.configs
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
