// Package testutil provides shared test helpers for setting up workspaces
// and snapshot stores.
package testutil

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/persist"
	"github.com/starford/ansuz/internal/workspace"
)

// QuietLogger returns a logger that discards everything below ERROR, so
// persistence degradation messages do not pollute test output.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestWorkspace creates an empty workspace over an in-memory blob store
// with a fixed clock.
func TestWorkspace(t *testing.T) (*workspace.Workspace, *persist.Memory) {
	t.Helper()
	blobs := persist.NewMemory()
	gateway := persist.NewGateway(blobs, QuietLogger())
	ws := workspace.New(gateway,
		workspace.WithLogger(QuietLogger()),
		workspace.WithClock(FixedClock()),
	)
	return ws, blobs
}

// FixedClock returns a deterministic time source advancing one second per
// call.
func FixedClock() func() time.Time {
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

// TestSnapshotDB creates a temporary SQLite blob store that is
// automatically cleaned up.
func TestSnapshotDB(t *testing.T) *persist.SQLite {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ansuz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	blobs, err := persist.OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { blobs.Close() })
	return blobs
}
