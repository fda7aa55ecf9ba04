package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// BackupVersion is the interchange schema version written to exports.
const BackupVersion = "1.0"

const editorVersion = "Ansuz v1.0"

// Backup is the export/import interchange document: the snapshot plus
// provenance fields.
type Backup struct {
	Files         map[string]models.File   `json:"files"`
	Folders       map[string]models.Folder `json:"folders"`
	OpenFiles     []string                 `json:"openFiles"`
	FileCounter   uint64                   `json:"fileCounter"`
	FolderCounter uint64                   `json:"folderCounter"`
	ExportDate    time.Time                `json:"exportDate"`
	Version       string                   `json:"version"`
	EditorVersion string                   `json:"editorVersion"`
}

// ExportBackup serializes the snapshot as an interchange document.
func ExportBackup(snap *Snapshot, now time.Time) ([]byte, error) {
	b := Backup{
		Files:         snap.Files,
		Folders:       snap.Folders,
		OpenFiles:     snap.OpenFiles,
		FileCounter:   snap.FileCounter,
		FolderCounter: snap.FolderCounter,
		ExportDate:    now.UTC(),
		Version:       BackupVersion,
		EditorVersion: editorVersion,
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("persist: export backup: %w", err)
	}
	return data, nil
}

// ParseBackup validates and converts an interchange document back into a
// snapshot. At least one of the files/folders keys must be present; a
// document carrying them empty is a deliberate clear-everything import,
// while a document with neither is almost certainly not a backup at all.
func ParseBackup(data []byte) (*Snapshot, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidBackup, err)
	}
	if b.Files == nil && b.Folders == nil {
		return nil, fmt.Errorf("%w: missing files or folders data", apperr.ErrInvalidBackup)
	}
	snap := NewSnapshot()
	if b.Files != nil {
		snap.Files = b.Files
	}
	if b.Folders != nil {
		snap.Folders = b.Folders
	}
	if b.OpenFiles != nil {
		snap.OpenFiles = b.OpenFiles
	}
	snap.FileCounter = b.FileCounter
	snap.FolderCounter = b.FolderCounter
	return snap, nil
}

// BackupFilename derives the download name for a backup exported at now.
func BackupFilename(now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15-04-05")
	return "ansuz-backup-" + stamp + ".json"
}
