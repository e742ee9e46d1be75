package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"pixel-engine/internal/logging"
	"pixel-engine/internal/texture"
)

// settleDelay is how long a file must stay quiet before it is converted.
// Editors and copy tools usually write a file in several steps.
var settleDelay = 200 * time.Millisecond

// Watcher converts input images again whenever they are created or
// rewritten.
type Watcher struct {
	conv *Converter
	fsw  *fsnotify.Watcher
}

// NewWatcher starts watching the converter's input dir and all its
// subdirectories except the output dir. Events are only consumed by Run.
func NewWatcher(conv *Converter) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("batch: watch: %w", err)
	}
	w := &Watcher{conv: conv, fsw: fsw}
	if err := w.addTree(conv.inputDir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.conv.inputDir && w.conv.inOutput(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("batch: watch %s: %w", path, err)
		}
		return nil
	})
}

// Run blocks until ctx is cancelled, calling onResult after every
// conversion. It closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onResult func(Result)) error {
	defer w.fsw.Close()
	log := logging.Source("Batch.Watch")

	pending := make(map[string]struct{})
	timer := time.NewTimer(settleDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if w.conv.inOutput(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := w.addTree(ev.Name); err != nil {
					log.Warn("cannot watch new directory", "dir", ev.Name, "err", err)
				}
				continue
			}
			if !texture.IsImage(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(settleDelay)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", "err", err)

		case <-timer.C:
			for _, path := range sortedKeys(pending) {
				rel, err := filepath.Rel(w.conv.inputDir, path)
				if err != nil || w.conv.Excluded(rel) {
					continue
				}
				log.Debug("converting", "input", rel)
				onResult(w.conv.Convert(rel))
			}
			clear(pending)
		}
	}
}

// Watch converts changed images under the converter's input dir until ctx
// is cancelled.
func Watch(ctx context.Context, conv *Converter, onResult func(Result)) error {
	w, err := NewWatcher(conv)
	if err != nil {
		return err
	}
	return w.Run(ctx, onResult)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
