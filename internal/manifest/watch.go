package manifest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/consolidator/internal/logger"
)

// ApplyFunc observes each import attempt made by Watch.
type ApplyFunc func(m *Manifest, err error)

// Watch imports the manifest at path into dst, then re-imports it each
// time the file changes until ctx is cancelled. Load and apply errors are
// passed to onApply and do not stop the watch.
func Watch(ctx context.Context, path string, dst Importer, onApply ApplyFunc) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files by rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	reload := func() {
		m, err := Load(path)
		if err == nil {
			err = m.Apply(ctx, dst)
		}
		if onApply != nil {
			onApply(m, err)
		}
	}
	reload()

	log := logger.Logger("watch")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isManifestChange(event, path) {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Msg("manifest changed")
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

// isManifestChange reports whether event rewrote the manifest file.
func isManifestChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
