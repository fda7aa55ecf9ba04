// Package workspace implements the in-memory file/folder store, the session
// state layered over it, and the tree projections derived from it.
//
// A Workspace is an explicit, constructible aggregate: callers hold a handle
// and go through its operations, which keep the entity maps, the session,
// and the persisted snapshot consistent with each other. Every mutation is
// written through to the persistence gateway before the call returns.
package workspace

import (
	"log/slog"
	"sync"
	"time"

	"github.com/starford/ansuz/internal/ident"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/persist"
)

// Event kinds published after successful mutations.
const (
	EventFileCreated   = "file.created"
	EventFileUpdated   = "file.updated"
	EventFileRenamed   = "file.renamed"
	EventFileDeleted   = "file.deleted"
	EventFolderCreated = "folder.created"
	EventFolderRenamed = "folder.renamed"
	EventFolderDeleted = "folder.deleted"
)

// EventFunc receives workspace change notifications. Called outside the
// workspace lock, after the mutation has been persisted.
type EventFunc func(kind, id string)

// Workspace owns the complete set of files and folders plus the session
// state. All access is serialized by an internal mutex; HTTP handlers and
// the MCP server share one instance.
type Workspace struct {
	mu sync.Mutex

	files   map[string]*models.File
	folders map[string]*models.Folder

	// children-by-parent indexes; key "" is the root level.
	childFiles   map[string][]string
	childFolders map[string][]string

	ids     *ident.Allocator
	session session

	gateway *persist.Gateway
	logger  *slog.Logger
	now     func() time.Time
	notify  EventFunc
}

type session struct {
	openFiles  []string
	activeFile string
	splits     []models.SplitView
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the logger used for persistence degradation messages.
func WithLogger(l *slog.Logger) Option {
	return func(w *Workspace) { w.logger = l }
}

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) { w.now = now }
}

// WithNotify sets the change notification callback.
func WithNotify(fn EventFunc) Option {
	return func(w *Workspace) { w.notify = fn }
}

// New constructs a workspace and restores it from the gateway's snapshot.
// A missing or corrupt snapshot yields an empty workspace.
func New(gateway *persist.Gateway, opts ...Option) *Workspace {
	w := &Workspace{
		files:        make(map[string]*models.File),
		folders:      make(map[string]*models.Folder),
		childFiles:   make(map[string][]string),
		childFolders: make(map[string][]string),
		ids:          ident.NewAllocator(0, 0),
		gateway:      gateway,
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.restore(gateway.Load())
	return w
}

// persistLocked writes the current snapshot through the gateway. A write
// failure leaves in-memory state authoritative; it is logged, not raised.
func (w *Workspace) persistLocked() {
	if err := w.gateway.Save(w.snapshotLocked()); err != nil {
		w.logger.Error("snapshot write failed", slog.String("error", err.Error()))
	}
}

func (w *Workspace) publish(kind, id string) {
	if w.notify != nil {
		w.notify(kind, id)
	}
}

// removeString deletes the first occurrence of s from list, in place.
func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
