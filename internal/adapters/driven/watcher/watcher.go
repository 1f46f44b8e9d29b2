package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
	"github.com/localrag/ragchat-cli/internal/logger"
)

// settleDelay is how long a file must stay quiet after its last write
// before it is uploaded. Editors and downloads often emit a burst of
// Create/Write events for a single file.
const settleDelay = 500 * time.Millisecond

// Watcher monitors a directory and uploads new or modified files to the
// backend through the upload service. Hidden files and subdirectories
// are ignored.
type Watcher struct {
	dir     string
	uploads driving.UploadService

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for the given directory.
func New(dir string, uploads driving.UploadService) *Watcher {
	return &Watcher{
		dir:     dir,
		uploads: uploads,
		pending: make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is cancelled. It returns
// an error if the directory cannot be watched.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("stat watch dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch path is not a directory: %s", w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger.Info("Watching %s for new documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if path := w.handleEvent(event); path != "" {
				w.schedule(ctx, path)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent returns the path to upload for a relevant event, or ""
// when the event should be ignored.
func (w *Watcher) handleEvent(event fsnotify.Event) string {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return ""
	}
	if isHidden(event.Name) {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return ""
	}
	return event.Name
}

// schedule arms (or re-arms) the settle timer for a path. The upload
// fires once the path has seen no events for settleDelay.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(settleDelay)
		return
	}

	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		result, err := w.uploads.Upload(ctx, path)
		if err != nil {
			logger.Warn("Upload of %s failed: %v", path, err)
			return
		}
		logger.Info("Uploaded %s (%d chunks)", result.Filename, result.Chunks)
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// isHidden reports whether any element of the path starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
