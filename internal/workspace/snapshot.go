package workspace

import (
	"sort"

	"github.com/starford/ansuz/internal/ident"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/persist"
)

// snapshotLocked captures the durable state: entities, open tabs, counters.
// Active file and split layout are session-only and deliberately excluded.
func (w *Workspace) snapshotLocked() *persist.Snapshot {
	snap := persist.NewSnapshot()
	for id, f := range w.files {
		snap.Files[id] = *f
	}
	for id, f := range w.folders {
		snap.Folders[id] = *f
	}
	snap.OpenFiles = append(snap.OpenFiles, w.session.openFiles...)
	snap.FileCounter, snap.FolderCounter = w.ids.Counters()
	return snap
}

// restore replaces the whole in-memory state from a snapshot: entity maps,
// children indexes, allocator counters. Stale open-file ids that no longer
// resolve are purged; the first surviving entry becomes active. Splits
// always reset.
func (w *Workspace) restore(snap *persist.Snapshot) {
	w.mu.Lock()
	w.files = make(map[string]*models.File, len(snap.Files))
	w.folders = make(map[string]*models.Folder, len(snap.Folders))
	w.childFiles = make(map[string][]string)
	w.childFolders = make(map[string][]string)

	for id, f := range snap.Folders {
		folder := f
		folder.ID = id
		w.folders[id] = &folder
	}
	for id, f := range snap.Files {
		file := f
		file.ID = id
		w.files[id] = &file
	}

	// Drop entities whose parent chain no longer resolves before indexing.
	// Folders go first so file pruning sees the final folder set. A chain is
	// walked with an in-progress marker, which also rejects parent cycles an
	// imported backup could carry.
	reachable := make(map[string]bool, len(w.folders))
	var resolves func(id string) bool
	resolves = func(id string) bool {
		if v, seen := reachable[id]; seen {
			return v
		}
		reachable[id] = false
		f := w.folders[id]
		if f.Parent == "" {
			reachable[id] = true
		} else if _, ok := w.folders[f.Parent]; ok {
			reachable[id] = resolves(f.Parent)
		}
		return reachable[id]
	}
	for id := range w.folders {
		resolves(id)
	}
	for id := range w.folders {
		if !reachable[id] {
			delete(w.folders, id)
		}
	}

	for id, f := range w.files {
		if f.Parent != "" {
			if _, ok := w.folders[f.Parent]; !ok {
				delete(w.files, id)
				continue
			}
		}
		w.childFiles[f.Parent] = append(w.childFiles[f.Parent], id)
	}
	for id, f := range w.folders {
		w.childFolders[f.Parent] = append(w.childFolders[f.Parent], id)
	}
	// Creation order within a level is part of the observable state; the
	// map walk above loses it, so pin index order to id order.
	for parent := range w.childFiles {
		sort.Strings(w.childFiles[parent])
	}
	for parent := range w.childFolders {
		sort.Strings(w.childFolders[parent])
	}

	w.ids = ident.NewAllocator(snap.FileCounter, snap.FolderCounter)

	w.session = session{openFiles: []string{}}
	for _, id := range snap.OpenFiles {
		if _, ok := w.files[id]; ok && !containsString(w.session.openFiles, id) {
			w.session.openFiles = append(w.session.openFiles, id)
		}
	}
	if len(w.session.openFiles) > 0 {
		w.session.activeFile = w.session.openFiles[0]
	}
	w.mu.Unlock()
}

// Replace swaps in an imported snapshot wholesale, re-persists it, and opens
// the first available file so the session is never left pointing at nothing
// while files exist. Used by backup import.
func (w *Workspace) Replace(snap *persist.Snapshot) {
	w.restore(snap)

	w.mu.Lock()
	if w.session.activeFile == "" && len(w.files) > 0 {
		ids := make([]string, 0, len(w.files))
		for id := range w.files {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		w.openFileLocked(ids[0], true)
	}
	w.persistLocked()
	w.mu.Unlock()
}

// Snapshot returns a copy of the durable state, for backup export.
func (w *Workspace) Snapshot() *persist.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}
