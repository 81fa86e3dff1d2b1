// Package watch re-runs generation when PHP sources change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"libwebdoc/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period before a batch of changes triggers a rebuild
const DefaultDelay = 200 * time.Millisecond

// RebuildFunc is called with the changed files of one debounced batch
type RebuildFunc func(ctx context.Context, changed []string) error

// Watcher watches source directories recursively
type Watcher struct {
	fs      *fsnotify.Watcher
	rebuild RebuildFunc
	exclude func(path string) bool

	Delay time.Duration
}

// New registers every directory below dirs. exclude may be nil.
func New(dirs []string, exclude func(path string) bool, rebuild RebuildFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{fs: fsw, rebuild: rebuild, exclude: exclude, Delay: DefaultDelay}
	for _, dir := range dirs {
		if err := w.watchDir(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// watchDir recursively adds a directory to the watcher
func (w *Watcher) watchDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (strings.HasPrefix(name, ".") || name == "node_modules") {
			return filepath.SkipDir
		}
		if w.exclude != nil && path != dir && w.exclude(path) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

// Run handles events until ctx is done. Rebuilds never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fs.Close() }()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = struct{}{}

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.Delay)
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = make(map[string]struct{})

			logger.Info("🔄 Change detected: %s", describe(changed))
			if err := w.rebuild(ctx, changed); err != nil {
				logger.Error("Rebuild error: %v", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// relevant filters events down to PHP files, registering new directories on the way
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watchDir(event.Name); err != nil {
				logger.Warn("Failed to watch new directory %s: %v", event.Name, err)
			}
			return false
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".php") {
		return false
	}
	return w.exclude == nil || !w.exclude(event.Name)
}

func describe(changed []string) string {
	if len(changed) == 1 {
		return filepath.Base(changed[0])
	}
	return fmt.Sprintf("%s and %d more", filepath.Base(changed[0]), len(changed)-1)
}
