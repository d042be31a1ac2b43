package fmfloader

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs Load against root whenever a file under it changes,
// pushing each successive Tree to the returned channel until ctx is
// canceled. Only directories that exist when Watch is called are
// watched; changes inside directories created later do not trigger a
// reload. Backs "materialize --watch" for iterating on an fmf tree
// without re-invoking the CLI after every edit.
func Watch(ctx context.Context, root string) (<-chan *Tree, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := addRecursive(watcher, root); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan *Tree)
	go func() {
		defer watcher.Close()
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				tree, err := Load(root)
				if err != nil {
					continue
				}
				select {
				case out <- tree:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
