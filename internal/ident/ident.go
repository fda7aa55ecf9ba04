// Package ident allocates unique, monotonically increasing entity
// identifiers, namespaced by kind.
package ident

import "fmt"

// Allocator hands out file and folder ids. Counters only ever increase, so
// an id is never reused within a workspace; persisting the counters in the
// snapshot keeps ids unique across restarts. Not safe for concurrent use —
// the owning workspace serializes access.
type Allocator struct {
	fileCounter   uint64
	folderCounter uint64
}

// NewAllocator creates an allocator resuming from the given counters.
func NewAllocator(fileCounter, folderCounter uint64) *Allocator {
	return &Allocator{fileCounter: fileCounter, folderCounter: folderCounter}
}

// NextFileID returns the next file id, e.g. "file_7".
func (a *Allocator) NextFileID() string {
	a.fileCounter++
	return fmt.Sprintf("file_%d", a.fileCounter)
}

// NextFolderID returns the next folder id, e.g. "folder_3".
func (a *Allocator) NextFolderID() string {
	a.folderCounter++
	return fmt.Sprintf("folder_%d", a.folderCounter)
}

// Counters returns the current file and folder counters for snapshotting.
func (a *Allocator) Counters() (uint64, uint64) {
	return a.fileCounter, a.folderCounter
}
