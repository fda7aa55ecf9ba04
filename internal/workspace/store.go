package workspace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// invalidNameChars is the character set rejected in file and folder names.
const invalidNameChars = `<>:"/\|?*`

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", apperr.ErrInvalidName)
	}
	if strings.ContainsAny(name, invalidNameChars) {
		return fmt.Errorf("%w: name contains invalid characters", apperr.ErrInvalidName)
	}
	return nil
}

// CreateFolder inserts a new folder with expanded disclosure state and
// returns its id. An unknown parent id is a silent no-op returning "";
// callers are expected to pre-validate the parent.
func (w *Workspace) CreateFolder(name, parent string) string {
	w.mu.Lock()
	if parent != "" {
		if _, ok := w.folders[parent]; !ok {
			w.mu.Unlock()
			return ""
		}
	}
	id := w.ids.NextFolderID()
	w.folders[id] = &models.Folder{
		ID:       id,
		Name:     name,
		Parent:   parent,
		Expanded: true,
		Created:  w.now(),
	}
	w.childFolders[parent] = append(w.childFolders[parent], id)
	w.persistLocked()
	w.mu.Unlock()

	w.publish(EventFolderCreated, id)
	return id
}

// CreateFile inserts a new file and opens it. Empty content synthesizes a
// default body with a title derived from the name and a creation stamp.
// An unknown parent id is a silent no-op returning "".
func (w *Workspace) CreateFile(name, content, parent string) string {
	w.mu.Lock()
	if parent != "" {
		if _, ok := w.folders[parent]; !ok {
			w.mu.Unlock()
			return ""
		}
	}
	now := w.now()
	if strings.TrimSpace(content) == "" {
		title := strings.TrimSuffix(name, ".md")
		content = fmt.Sprintf("# %s\n\n*Created: %s*\n\n", title, now.Format("Jan 2, 2006 15:04"))
	}
	id := w.ids.NextFileID()
	w.files[id] = &models.File{
		ID:      id,
		Name:    name,
		Content: content,
		Parent:  parent,
		Created: now,
	}
	w.childFiles[parent] = append(w.childFiles[parent], id)
	w.openFileLocked(id, true)
	w.persistLocked()
	w.mu.Unlock()

	w.publish(EventFileCreated, id)
	return id
}

// RenameFile validates newName and applies it. Renaming to a name already
// used by a sibling file fails with a conflict; an unknown id is a silent
// no-op.
func (w *Workspace) RenameFile(id, newName string) error {
	w.mu.Lock()
	file, ok := w.files[id]
	if !ok {
		w.mu.Unlock()
		return nil
	}
	if err := validateName(newName); err != nil {
		w.mu.Unlock()
		return err
	}
	for _, sibling := range w.childFiles[file.Parent] {
		if sibling != id && w.files[sibling].Name == newName {
			w.mu.Unlock()
			return fmt.Errorf("%w: a file named %q already exists in the same folder", apperr.ErrNameConflict, newName)
		}
	}
	file.Name = newName
	w.persistLocked()
	w.mu.Unlock()

	w.publish(EventFileRenamed, id)
	return nil
}

// RenameFolder validates newName and applies it, with sibling-conflict
// checking against folders sharing the same parent.
func (w *Workspace) RenameFolder(id, newName string) error {
	w.mu.Lock()
	folder, ok := w.folders[id]
	if !ok {
		w.mu.Unlock()
		return nil
	}
	if err := validateName(newName); err != nil {
		w.mu.Unlock()
		return err
	}
	for _, sibling := range w.childFolders[folder.Parent] {
		if sibling != id && w.folders[sibling].Name == newName {
			w.mu.Unlock()
			return fmt.Errorf("%w: a folder named %q already exists in the same location", apperr.ErrNameConflict, newName)
		}
	}
	folder.Name = newName
	w.persistLocked()
	w.mu.Unlock()

	w.publish(EventFolderRenamed, id)
	return nil
}

// UpdateFileContent replaces the file's content and marks it modified.
// Unknown ids are ignored.
func (w *Workspace) UpdateFileContent(id, content string) {
	w.mu.Lock()
	file, ok := w.files[id]
	if !ok {
		w.mu.Unlock()
		return
	}
	file.Content = content
	file.Modified = true
	w.persistLocked()
	w.mu.Unlock()

	w.publish(EventFileUpdated, id)
}

// MarkSaved clears the modified flag after an explicit save.
func (w *Workspace) MarkSaved(id string) {
	w.mu.Lock()
	file, ok := w.files[id]
	if !ok {
		w.mu.Unlock()
		return
	}
	file.Modified = false
	w.persistLocked()
	w.mu.Unlock()

	w.publish(EventFileUpdated, id)
}

// DeleteFile removes the file and repairs the session: it is dropped from
// the open list, splits showing it are removed, and if it was active the
// most recently opened remaining file takes over.
func (w *Workspace) DeleteFile(id string) {
	w.mu.Lock()
	if _, ok := w.files[id]; !ok {
		w.mu.Unlock()
		return
	}
	w.deleteFileLocked(id)
	w.persistLocked()
	w.mu.Unlock()

	w.publish(EventFileDeleted, id)
}

// deleteFileLocked removes one file and repairs session state. No persist.
func (w *Workspace) deleteFileLocked(id string) {
	file := w.files[id]
	w.childFiles[file.Parent] = removeString(w.childFiles[file.Parent], id)
	delete(w.files, id)

	w.session.openFiles = removeString(w.session.openFiles, id)
	w.dropSplitsLocked(id)
	if w.session.activeFile == id {
		if n := len(w.session.openFiles); n > 0 {
			w.openFileLocked(w.session.openFiles[n-1], false)
		} else {
			w.session.activeFile = ""
		}
	}
}

// DeleteFolder removes the folder and its entire subtree, returning the ids
// of the files that were deleted so callers can release per-file state such
// as preview tracking. The traversal is an explicit worklist over the
// children indexes, so deep hierarchies do not recurse or rescan the full
// maps. This operation is destructive and non-reversible; confirming intent
// is the caller's concern.
func (w *Workspace) DeleteFolder(id string) []string {
	w.mu.Lock()
	if _, ok := w.folders[id]; !ok {
		w.mu.Unlock()
		return nil
	}

	worklist := []string{id}
	var deletedFiles, deletedFolders []string
	for len(worklist) > 0 {
		folderID := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, fileID := range append([]string(nil), w.childFiles[folderID]...) {
			w.deleteFileLocked(fileID)
			deletedFiles = append(deletedFiles, fileID)
		}
		worklist = append(worklist, w.childFolders[folderID]...)

		folder := w.folders[folderID]
		w.childFolders[folder.Parent] = removeString(w.childFolders[folder.Parent], folderID)
		delete(w.childFiles, folderID)
		delete(w.childFolders, folderID)
		delete(w.folders, folderID)
		deletedFolders = append(deletedFolders, folderID)
	}
	w.persistLocked()
	w.mu.Unlock()

	for _, fileID := range deletedFiles {
		w.publish(EventFileDeleted, fileID)
	}
	for _, folderID := range deletedFolders {
		w.publish(EventFolderDeleted, folderID)
	}
	return deletedFiles
}

// ToggleFolder flips the folder's disclosure state.
func (w *Workspace) ToggleFolder(id string) {
	w.mu.Lock()
	folder, ok := w.folders[id]
	if !ok {
		w.mu.Unlock()
		return
	}
	folder.Expanded = !folder.Expanded
	w.persistLocked()
	w.mu.Unlock()
}

// File returns a copy of the file with the given id.
func (w *Workspace) File(id string) (models.File, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	file, ok := w.files[id]
	if !ok {
		return models.File{}, false
	}
	return *file, true
}

// Folder returns a copy of the folder with the given id.
func (w *Workspace) Folder(id string) (models.Folder, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	folder, ok := w.folders[id]
	if !ok {
		return models.Folder{}, false
	}
	return *folder, true
}

// Files returns metadata for every file, sorted by id for stable output.
func (w *Workspace) Files() []models.FileMetadata {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.FileMetadata, 0, len(w.files))
	for _, f := range w.files {
		out = append(out, models.FileMetadata{
			ID:       f.ID,
			Name:     f.Name,
			Parent:   f.Parent,
			Modified: f.Modified,
			Created:  f.Created,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FileNames returns the id→name index used by the link resolver, with ids
// in lexicographic order via the accompanying slice. The slice pins
// ambiguous wiki-link resolution to a deterministic first match.
func (w *Workspace) FileNames() (ids []string, names map[string]string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	names = make(map[string]string, len(w.files))
	ids = make([]string, 0, len(w.files))
	for id, f := range w.files {
		ids = append(ids, id)
		names[id] = f.Name
	}
	sort.Strings(ids)
	return ids, names
}

// Counts returns the number of files and folders in the workspace.
func (w *Workspace) Counts() (files, folders int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files), len(w.folders)
}
