package posts

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates the index whenever something changes under dir, which
// must be the on-disk location of the posts directory. It blocks until ctx
// is done.
func (i *Index) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.WalkDir(dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	i.log.Infow("watching posts", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Ignore CHMOD only events.
			if evt.Op == fsnotify.Chmod {
				continue
			}

			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := watcher.Add(evt.Name); err != nil {
						i.log.Warnw("cannot watch new directory", "dir", evt.Name, "err", err)
					}
				}
			}

			i.log.Infof("%s changed", evt.Name)
			i.Invalidate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			i.log.Error(err)
		}
	}
}
