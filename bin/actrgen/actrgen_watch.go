// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/actor-rtc/actr-go/manifest"
)

const watchDebounce = 200 * time.Millisecond

// watchSet decides which file system events trigger regeneration.
type watchSet struct {
	protoRoot string
	files     map[string]bool
}

func newWatchSet(manifestPath string, opts manifest.Options) *watchSet {
	ws := &watchSet{
		protoRoot: filepath.Clean(opts.ProtoRoot),
		files:     make(map[string]bool),
	}
	ws.files[filepath.Clean(manifestPath)] = true
	ws.files[filepath.Clean(opts.Lock)] = true
	return ws
}

func (ws *watchSet) dirs() []string {
	dirs := []string{ws.protoRoot}
	for file := range ws.files {
		dirs = append(dirs, filepath.Dir(file))
	}
	return dirs
}

func (ws *watchSet) relevant(name string) bool {
	name = filepath.Clean(name)
	if ws.files[name] {
		return true
	}
	if filepath.Ext(name) != ".proto" {
		return false
	}
	rel, err := filepath.Rel(ws.protoRoot, name)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (cmd *cmdGenerate) runWatch(ctx context.Context, manifestPath string, logger zerolog.Logger) int {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return cmd.fail(err)
	}
	opts, err := manifest.Resolve(m, cmd.overrides)
	if err != nil {
		return cmd.fail(err)
	}
	ws := newWatchSet(manifestPath, opts)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return cmd.fail(err)
	}
	defer watcher.Close()
	if err := addWatchDirs(watcher, ws); err != nil {
		return cmd.fail(err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	regenerate := func() {
		if err := cmd.generate(ctx, manifestPath, logger); err != nil && !errors.Is(err, errReported) {
			logger.Error().Err(err).Msg("generate failed")
		}
	}
	regenerate()
	logger.Info().Str("manifest", manifestPath).Msg("watching for changes")

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !ws.relevant(event.Name) {
				continue
			}
			logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("schema input changed")
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			regenerate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			return 0
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, ws *watchSet) error {
	seen := make(map[string]bool)
	add := func(dir string) error {
		if seen[dir] {
			return nil
		}
		seen[dir] = true
		return watcher.Add(dir)
	}
	err := filepath.WalkDir(ws.protoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, dir := range ws.dirs()[1:] {
		if err := add(dir); err != nil {
			return err
		}
	}
	return nil
}
