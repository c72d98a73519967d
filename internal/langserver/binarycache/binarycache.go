// Package binarycache watches the directory a language server binary is
// downloaded into and signals once a named binary shows up — so a Session
// started while a download is still running can pick up the binary the
// moment it finishes instead of failing outright or needing a restart.
// Fetching and extracting the binary itself is a delegated collaborator's
// job (see langserver.RuntimeDependency); this package only watches.
package binarycache

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes one cache directory for a named binary's arrival.
type Watcher struct {
	dir string
	fsw *fsnotify.Watcher
}

// New starts watching dir, creating it first if it does not yet exist (the
// common case right before a first-run download begins).
func New(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{dir: dir, fsw: fsw}, nil
}

// Close stops the underlying filesystem watch.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Path returns the watched directory joined with binaryName.
func (w *Watcher) Path(binaryName string) string {
	return filepath.Join(w.dir, binaryName)
}

// WaitFor blocks until binaryName exists in the watched directory, ctx is
// cancelled, or the watcher errors. It checks for the file up front so a
// binary that arrived before the watch started is still detected.
func (w *Watcher) WaitFor(ctx context.Context, binaryName string) error {
	target := w.Path(binaryName)
	if _, err := os.Stat(target); err == nil {
		return nil
	}

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return context.Canceled
			}
			if event.Name == target && (event.Op&(fsnotify.Create|fsnotify.Write) != 0) {
				if _, err := os.Stat(target); err == nil {
					return nil
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return context.Canceled
			}
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
