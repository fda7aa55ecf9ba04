// Package persist owns the durable snapshot schema and the key-value blob
// stores it is written to.
package persist

import (
	"encoding/json"
	"log/slog"

	"github.com/starford/ansuz/internal/models"
)

// SnapshotKey is the fixed key the workspace snapshot is stored under.
const SnapshotKey = "workspace"

// BlobStore is the storage medium abstraction: put/get a serialized blob.
// Consumers should depend on this interface rather than a concrete store to
// facilitate testing with the in-memory implementation.
type BlobStore interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, bool, error)
	Close() error
}

// Snapshot is the durable workspace state. Session split layout and the
// active file are deliberately absent: they reset on every reload.
type Snapshot struct {
	Files         map[string]models.File   `json:"files"`
	Folders       map[string]models.Folder `json:"folders"`
	OpenFiles     []string                 `json:"openFiles"`
	FileCounter   uint64                   `json:"fileCounter"`
	FolderCounter uint64                   `json:"folderCounter"`
}

// NewSnapshot returns an empty snapshot with allocated maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Files:     make(map[string]models.File),
		Folders:   make(map[string]models.Folder),
		OpenFiles: []string{},
	}
}

// Gateway serializes snapshots to a blob store under a fixed key.
type Gateway struct {
	blobs  BlobStore
	logger *slog.Logger
}

// NewGateway creates a gateway over the given blob store.
func NewGateway(blobs BlobStore, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{blobs: blobs, logger: logger}
}

// Save writes the snapshot through to the blob store. A write failure leaves
// the in-memory state authoritative for the session; the caller decides
// whether to surface the returned error or just log it.
func (g *Gateway) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return g.blobs.Put(SnapshotKey, data)
}

// Load reads the snapshot back. A missing or corrupt snapshot degrades to an
// empty workspace: the failure is logged, never returned.
func (g *Gateway) Load() *Snapshot {
	data, ok, err := g.blobs.Get(SnapshotKey)
	if err != nil {
		g.logger.Error("snapshot read failed", slog.String("error", err.Error()))
		return NewSnapshot()
	}
	if !ok {
		return NewSnapshot()
	}
	snap := NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		g.logger.Error("snapshot parse failed", slog.String("error", err.Error()))
		return NewSnapshot()
	}
	if snap.Files == nil {
		snap.Files = make(map[string]models.File)
	}
	if snap.Folders == nil {
		snap.Folders = make(map[string]models.Folder)
	}
	if snap.OpenFiles == nil {
		snap.OpenFiles = []string{}
	}
	return snap
}
