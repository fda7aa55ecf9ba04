// Package inbox imports Markdown files dropped into a watched directory
// into the workspace, the server-side analog of drag-and-drop upload.
package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/ansuz/internal/workspace"
)

// settleDelay gives the writer time to finish before a dropped file is read.
const settleDelay = 200 * time.Millisecond

// Watch starts an fsnotify watcher on dir and imports every *.md file that
// appears there until ctx is cancelled. Files already present at startup
// are imported first. An imported source file is removed from the inbox;
// a file that cannot be read or parsed stays put and is logged.
func Watch(ctx context.Context, ws *workspace.Workspace, dir string, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("inbox: create dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("inbox: new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("inbox: watch %s: %w", dir, err)
	}

	logger.Info("inbox: started", slog.String("dir", dir))
	drainExisting(ws, dir, logger)

	// pending debounces rapid Create/Write bursts for the same file.
	pending := make(map[string]*time.Timer)
	importCh := make(chan string, 64)

	for {
		select {
		case <-ctx.Done():
			for _, t := range pending {
				t.Stop()
			}
			logger.Info("inbox: stopped")
			return nil

		case path := <-importCh:
			delete(pending, path)
			importFile(ws, path, logger)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			path := ev.Name
			if t, exists := pending[path]; exists {
				t.Reset(settleDelay)
				continue
			}
			pending[path] = time.AfterFunc(settleDelay, func() {
				select {
				case importCh <- path:
				case <-ctx.Done():
				}
			})

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("inbox: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// drainExisting imports files already sitting in the inbox at startup.
func drainExisting(ws *workspace.Workspace, dir string, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("inbox: read dir failed", slog.String("error", err.Error()))
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		importFile(ws, filepath.Join(dir, e.Name()), logger)
	}
}

// importFile creates a workspace file at the root from a dropped file and
// removes the source on success. Root-level name collisions get a numeric
// suffix so nothing is overwritten.
func importFile(ws *workspace.Workspace, path string, logger *slog.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("inbox: read failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}

	name := uniqueName(ws, filepath.Base(path))
	id := ws.CreateFile(name, string(data), "")
	if id == "" {
		logger.Warn("inbox: import failed", slog.String("path", path))
		return
	}
	if err := os.Remove(path); err != nil {
		logger.Warn("inbox: remove source failed", slog.String("path", path), slog.String("error", err.Error()))
	}
	logger.Info("inbox: imported", slog.String("name", name), slog.String("id", id))
}

// uniqueName appends " (n)" before the extension until the name is free of
// root-level collisions.
func uniqueName(ws *workspace.Workspace, name string) string {
	taken := make(map[string]struct{})
	for _, meta := range ws.Files() {
		if meta.Parent == "" {
			taken[meta.Name] = struct{}{}
		}
	}
	if _, used := taken[name]; !used {
		return name
	}
	stem, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		stem, ext = name[:i], name[i:]
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, used := taken[candidate]; !used {
			return candidate
		}
	}
}
