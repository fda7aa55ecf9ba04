package workspace

import (
	"github.com/google/uuid"

	"github.com/starford/ansuz/internal/models"
)

// OpenFile makes the file active. When addToOpen is set and the file is not
// already open it is appended to the open list; reopening an already-open
// file never reorders tabs. In split mode the first split is retargeted to
// the file instead. Unknown ids are ignored.
func (w *Workspace) OpenFile(id string, addToOpen bool) {
	w.mu.Lock()
	if _, ok := w.files[id]; !ok {
		w.mu.Unlock()
		return
	}
	w.openFileLocked(id, addToOpen)
	w.persistLocked()
	w.mu.Unlock()
}

func (w *Workspace) openFileLocked(id string, addToOpen bool) {
	if addToOpen && !containsString(w.session.openFiles, id) {
		w.session.openFiles = append(w.session.openFiles, id)
	}
	w.session.activeFile = id
	if len(w.session.splits) > 0 {
		w.session.splits[0].FileID = id
	}
}

// CloseFile removes the file from the open list. If it was active, the last
// remaining open file is activated; with no files left the session clears to
// the empty state. The file itself is untouched — a closed tab can still be
// the target of wiki links and splits.
func (w *Workspace) CloseFile(id string) {
	w.mu.Lock()
	if _, ok := w.files[id]; !ok {
		w.mu.Unlock()
		return
	}
	w.session.openFiles = removeString(w.session.openFiles, id)
	if w.session.activeFile == id {
		if n := len(w.session.openFiles); n > 0 {
			w.openFileLocked(w.session.openFiles[n-1], false)
		} else {
			w.session.activeFile = ""
		}
	}
	w.persistLocked()
	w.mu.Unlock()
}

// Session returns a copy of the current session state.
func (w *Workspace) Session() models.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionLocked()
}

func (w *Workspace) sessionLocked() models.Session {
	s := models.Session{
		OpenFiles:  append([]string{}, w.session.openFiles...),
		ActiveFile: w.session.activeFile,
		Splits:     append([]models.SplitView{}, w.session.splits...),
	}
	return s
}

// CreateSplit adds a split view. An empty fileID defaults to the active
// file; with no active file either, no split is created.
func (w *Workspace) CreateSplit(fileID string) (models.SplitView, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if fileID == "" {
		fileID = w.session.activeFile
	}
	if _, ok := w.files[fileID]; !ok {
		return models.SplitView{}, false
	}
	split := models.SplitView{
		ID:             "split_" + uuid.NewString(),
		FileID:         fileID,
		PreviewVisible: true,
	}
	w.session.splits = append(w.session.splits, split)
	return split, true
}

// CloseSplit removes the split with the given id. Closing the last split
// reverts the session to the normal single-pane layout.
func (w *Workspace) CloseSplit(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, s := range w.session.splits {
		if s.ID == id {
			w.session.splits = append(w.session.splits[:i], w.session.splits[i+1:]...)
			return
		}
	}
}

// UpdateSplit retargets a split to another file and/or toggles its preview.
// Unknown split or file ids are ignored.
func (w *Workspace) UpdateSplit(id, fileID string, previewVisible *bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.session.splits {
		if w.session.splits[i].ID != id {
			continue
		}
		if fileID != "" {
			if _, ok := w.files[fileID]; ok {
				w.session.splits[i].FileID = fileID
			}
		}
		if previewVisible != nil {
			w.session.splits[i].PreviewVisible = *previewVisible
		}
		return
	}
}

// SplitMode reports whether any split views are open.
func (w *Workspace) SplitMode() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.session.splits) > 0
}

// dropSplitsLocked removes every split showing the given file.
func (w *Workspace) dropSplitsLocked(fileID string) {
	kept := w.session.splits[:0]
	for _, s := range w.session.splits {
		if s.FileID != fileID {
			kept = append(kept, s)
		}
	}
	w.session.splits = kept
}
