package inbox_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/inbox"
	"github.com/starford/ansuz/internal/testutil"
	"github.com/starford/ansuz/internal/workspace"
)

func startWatch(t *testing.T, ws *workspace.Workspace, dir string) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- inbox.Watch(ctx, ws, dir, testutil.QuietLogger()) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Watch returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return cancel
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func rootFileNames(ws *workspace.Workspace) map[string]string {
	names := make(map[string]string)
	for _, meta := range ws.Files() {
		if meta.Parent == "" {
			names[meta.Name] = meta.ID
		}
	}
	return names
}

func TestWatch_DrainsExistingFiles(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "drop.md")
	if err := os.WriteFile(path, []byte("# Dropped"), 0o644); err != nil {
		t.Fatal(err)
	}

	startWatch(t, ws, dir)

	waitFor(t, func() bool { _, ok := rootFileNames(ws)["drop.md"]; return ok })

	id := rootFileNames(ws)["drop.md"]
	f, ok := ws.File(id)
	if !ok || f.Content != "# Dropped" {
		t.Errorf("imported file = %+v", f)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("source file should be removed after import")
	}
}

func TestWatch_ImportsDroppedFile(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	dir := t.TempDir()
	startWatch(t, ws, dir)

	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "live.md"), []byte("body"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { _, ok := rootFileNames(ws)["live.md"]; return ok })
}

func TestWatch_IgnoresNonMarkdown(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "note.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	startWatch(t, ws, dir)
	waitFor(t, func() bool { _, ok := rootFileNames(ws)["note.md"]; return ok })

	if _, ok := rootFileNames(ws)["image.png"]; ok {
		t.Error("non-markdown file imported")
	}
	if _, err := os.Stat(filepath.Join(dir, "image.png")); err != nil {
		t.Error("non-markdown file should stay in the inbox")
	}
}

func TestWatch_CollisionGetsSuffix(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	ws.CreateFile("drop.md", "existing", "")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "drop.md"), []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	startWatch(t, ws, dir)
	waitFor(t, func() bool { _, ok := rootFileNames(ws)["drop (1).md"]; return ok })

	id := rootFileNames(ws)["drop.md"]
	if f, _ := ws.File(id); f.Content != "existing" {
		t.Error("existing file overwritten by import")
	}
}
