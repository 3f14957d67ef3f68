package handler

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce batches the burst of events an editor save produces.
const reloadDebounce = 200 * time.Millisecond

// ErrNotWatchable is returned by Watch for renderers built from an embedded FS.
var ErrNotWatchable = errors.New("renderer: templates are not loaded from a directory")

// Watch re-parses the templates whenever an .html file under TemplatesDir
// changes, until ctx is cancelled. A failed reload is logged and the
// previous templates stay in use.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return ErrNotWatchable
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// fsnotify is not recursive; watch the root and every subdirectory.
	err = filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Info("watching templates", "dir", r.dir)

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".html") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(reloadDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("template watcher error", "error", err)

		case <-timer.C:
			if err := r.Reload(); err != nil {
				r.logger.Error("template reload failed", "error", err)
				continue
			}
			r.logger.Debug("templates reloaded", "count", len(r.ListTemplates()))
		}
	}
}
