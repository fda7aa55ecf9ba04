// Package models defines the domain types for Ansuz.
package models

import "time"

// File represents one Markdown document in the workspace.
type File struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Content  string    `json:"content"`
	Modified bool      `json:"modified"`
	Parent   string    `json:"parent,omitempty"` // folder id, empty at root
	Created  time.Time `json:"created"`
}

// Folder represents a grouping node in the workspace hierarchy.
// Parent is assigned at creation and never mutated afterwards, so the
// parent graph stays acyclic by construction.
type Folder struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Parent   string    `json:"parent,omitempty"`
	Expanded bool      `json:"expanded"`
	Created  time.Time `json:"created"`
}

// FileMetadata is a lightweight representation returned by list operations.
type FileMetadata struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Parent   string    `json:"parent,omitempty"`
	Modified bool      `json:"modified"`
	Created  time.Time `json:"created"`
}

// SplitView is one secondary editor+preview pane, independently addressable
// by file.
type SplitView struct {
	ID             string `json:"id"`
	FileID         string `json:"fileId"`
	PreviewVisible bool   `json:"previewVisible"`
}

// Session is the transient view state layered over the workspace: open tabs
// in opening order, the active file, and the split layout. Only OpenFiles
// survives a reload; ActiveFile and Splits always reset.
type Session struct {
	OpenFiles  []string    `json:"openFiles"`
	ActiveFile string      `json:"activeFile,omitempty"`
	Splits     []SplitView `json:"splitViews"`
}
