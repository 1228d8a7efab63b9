// Package watch triggers re-planning when the source tree changes.
//
// Changes are debounced: a burst of writes during active editing collapses
// into a single callback once the tree quiesces. Every callback re-runs the
// full pipeline from a fresh scan; nothing is cached between runs.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/towerstrike/synthesis.game/internal/ctxlog"
)

// DefaultDebounce is the quiesce window applied when none is configured.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes the configured source trees for changes.
type Watcher struct {
	root     string
	trees    []string
	debounce time.Duration
}

// New creates a Watcher over the given trees (paths relative to root).
func New(root string, trees []string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{root: root, trees: trees, debounce: debounce}
}

// Run blocks, invoking onChange after each debounced burst of file system
// events, until the context is cancelled. Newly created directories are
// picked up and watched as they appear.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context)) error {
	logger := ctxlog.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	for _, tree := range w.trees {
		if err := addRecursive(fsw, filepath.Join(w.root, tree)); err != nil {
			return err
		}
	}
	logger.Info("Watching source trees for changes.", "root", w.root, "trees", w.trees)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			logger.Debug("File system event.", "op", event.Op.String(), "path", event.Name)

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(fsw, event.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "path", event.Name, "error", err)
					}
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timerC:
			timerC = nil
			timer = nil
			onChange(ctx)
		}
	}
}

// addRecursive registers the directory and every subdirectory with the
// watcher. Missing trees are skipped; dot-directories are not watched.
func addRecursive(fsw *fsnotify.Watcher, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
