package workspace_test

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/persist"
	"github.com/starford/ansuz/internal/testutil"
	"github.com/starford/ansuz/internal/workspace"
)

func newNotifyWorkspace(t *testing.T, fn workspace.EventFunc) *workspace.Workspace {
	t.Helper()
	gateway := persist.NewGateway(persist.NewMemory(), testutil.QuietLogger())
	return workspace.New(gateway,
		workspace.WithLogger(testutil.QuietLogger()),
		workspace.WithClock(testutil.FixedClock()),
		workspace.WithNotify(fn),
	)
}

func TestCreateFile_IDsUniqueAndParentsResolve(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)

	seen := make(map[string]struct{})
	folder := ws.CreateFolder("Docs", "")
	for i := 0; i < 20; i++ {
		parent := ""
		if i%2 == 0 {
			parent = folder
		}
		id := ws.CreateFile("note.md", "body", parent)
		if id == "" {
			t.Fatalf("create %d returned empty id", i)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}

		file, ok := ws.File(id)
		if !ok {
			t.Fatalf("file %s not retrievable", id)
		}
		if file.Parent != "" {
			if _, ok := ws.Folder(file.Parent); !ok {
				t.Fatalf("file %s has dangling parent %s", id, file.Parent)
			}
		}
	}
}

func TestCreateFile_SynthesizesDefaultBody(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)

	id := ws.CreateFile("Ideas.md", "   \n", "")
	file, _ := ws.File(id)
	if !strings.HasPrefix(file.Content, "# Ideas\n") {
		t.Errorf("default body missing title: %q", file.Content)
	}
	if !strings.Contains(file.Content, "*Created: ") {
		t.Errorf("default body missing creation stamp: %q", file.Content)
	}

	id = ws.CreateFile("kept.md", "# Kept\n", "")
	file, _ = ws.File(id)
	if file.Content != "# Kept\n" {
		t.Errorf("explicit content replaced: %q", file.Content)
	}
}

func TestCreateFile_AutoOpens(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)

	id := ws.CreateFile("a.md", "x", "")
	s := ws.Session()
	if s.ActiveFile != id {
		t.Errorf("activeFile = %q, want %q", s.ActiveFile, id)
	}
	if len(s.OpenFiles) != 1 || s.OpenFiles[0] != id {
		t.Errorf("openFiles = %v, want [%s]", s.OpenFiles, id)
	}
}

func TestCreate_UnknownParentIsNoOp(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)

	if id := ws.CreateFile("a.md", "x", "folder_99"); id != "" {
		t.Errorf("CreateFile with bad parent returned %q", id)
	}
	if id := ws.CreateFolder("Docs", "folder_99"); id != "" {
		t.Errorf("CreateFolder with bad parent returned %q", id)
	}
	files, folders := ws.Counts()
	if files != 0 || folders != 0 {
		t.Errorf("counts = (%d, %d), want (0, 0)", files, folders)
	}
}

func TestRenameFile_Validation(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	id := ws.CreateFile("a.md", "x", "")

	tests := []struct {
		name    string
		newName string
		wantErr error
	}{
		{"empty", "", apperr.ErrInvalidName},
		{"slash", "a/b.md", apperr.ErrInvalidName},
		{"angle bracket", "a<b.md", apperr.ErrInvalidName},
		{"question mark", "what?.md", apperr.ErrInvalidName},
		{"pipe", "a|b.md", apperr.ErrInvalidName},
		{"valid", "renamed.md", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ws.RenameFile(id, tt.newName)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("RenameFile(%q) = %v", tt.newName, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RenameFile(%q) = %v, want %v", tt.newName, err, tt.wantErr)
			}
			file, _ := ws.File(id)
			if file.Name != "a.md" {
				t.Errorf("failed rename mutated name to %q", file.Name)
			}
		})
	}
}

func TestRenameFile_SiblingConflict(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	docs := ws.CreateFolder("Docs", "")
	a := ws.CreateFile("a.md", "x", docs)
	ws.CreateFile("b.md", "x", docs)
	elsewhere := ws.CreateFile("c.md", "x", "")

	if err := ws.RenameFile(a, "b.md"); !errors.Is(err, apperr.ErrNameConflict) {
		t.Fatalf("rename onto sibling = %v, want conflict", err)
	}
	file, _ := ws.File(a)
	if file.Name != "a.md" {
		t.Errorf("conflicting rename mutated name to %q", file.Name)
	}

	// Same name in a different folder is fine.
	if err := ws.RenameFile(elsewhere, "b.md"); err != nil {
		t.Fatalf("rename in different folder = %v", err)
	}
	// Renaming to itself is fine too.
	if err := ws.RenameFile(a, "a.md"); err != nil {
		t.Fatalf("self rename = %v", err)
	}
}

func TestRenameFolder_SiblingConflict(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	a := ws.CreateFolder("A", "")
	ws.CreateFolder("B", "")

	if err := ws.RenameFolder(a, "B"); !errors.Is(err, apperr.ErrNameConflict) {
		t.Fatalf("rename onto sibling folder = %v, want conflict", err)
	}
	if err := ws.RenameFolder(a, "C"); err != nil {
		t.Fatalf("unique rename = %v", err)
	}
	folder, _ := ws.Folder(a)
	if folder.Name != "C" {
		t.Errorf("name = %q, want C", folder.Name)
	}
}

func TestRename_UnknownIDIsNoOp(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	if err := ws.RenameFile("file_99", "x.md"); err != nil {
		t.Errorf("rename unknown file = %v, want nil", err)
	}
	if err := ws.RenameFolder("folder_99", "x"); err != nil {
		t.Errorf("rename unknown folder = %v, want nil", err)
	}
}

func TestUpdateFileContent_SetsModifiedUntilSave(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	id := ws.CreateFile("a.md", "x", "")

	file, _ := ws.File(id)
	if file.Modified {
		t.Fatal("fresh file should not be modified")
	}

	ws.UpdateFileContent(id, "changed")
	file, _ = ws.File(id)
	if !file.Modified || file.Content != "changed" {
		t.Fatalf("after update: modified=%v content=%q", file.Modified, file.Content)
	}

	ws.MarkSaved(id)
	file, _ = ws.File(id)
	if file.Modified {
		t.Error("modified should clear after explicit save")
	}
}

func TestDeleteFolder_CascadeRemovesExactSubtree(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)

	// Survivors outside the deleted subtree.
	keepFolder := ws.CreateFolder("Keep", "")
	keepFile := ws.CreateFile("keep.md", "x", keepFolder)

	root := ws.CreateFolder("Root", "")
	sub := ws.CreateFolder("Sub", root)
	deep := ws.CreateFolder("Deep", sub)
	ws.CreateFile("r.md", "x", root)
	ws.CreateFile("s.md", "x", sub)
	ws.CreateFile("d.md", "x", deep)

	filesBefore, foldersBefore := ws.Counts()
	ws.DeleteFolder(root)
	filesAfter, foldersAfter := ws.Counts()

	// N=3 files + M=2 descendant folders + the folder itself.
	if filesBefore-filesAfter != 3 {
		t.Errorf("deleted %d files, want 3", filesBefore-filesAfter)
	}
	if foldersBefore-foldersAfter != 3 {
		t.Errorf("deleted %d folders, want 3", foldersBefore-foldersAfter)
	}

	// No dangling parent references among survivors.
	file, ok := ws.File(keepFile)
	if !ok {
		t.Fatal("survivor file deleted")
	}
	if _, ok := ws.Folder(file.Parent); !ok {
		t.Errorf("survivor has dangling parent %s", file.Parent)
	}
}

func TestDeleteFolder_EmptyFolderDirect(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	id := ws.CreateFolder("Empty", "")
	ws.DeleteFolder(id)
	if _, ok := ws.Folder(id); ok {
		t.Error("empty folder not deleted")
	}
}

func TestDeleteFolder_ScenarioDocsWithActiveFile(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)

	docs := ws.CreateFolder("Docs", "")
	a := ws.CreateFile("a.md", "x", docs)
	b := ws.CreateFile("b.md", "x", docs)

	// b is active (created last); both are open.
	if s := ws.Session(); s.ActiveFile != b {
		t.Fatalf("active = %s, want %s", s.ActiveFile, b)
	}

	ws.DeleteFolder(docs)

	if _, ok := ws.File(a); ok {
		t.Error("a.md survived cascade")
	}
	if _, ok := ws.File(b); ok {
		t.Error("b.md survived cascade")
	}
	if _, ok := ws.Folder(docs); ok {
		t.Error("Docs survived cascade")
	}
	s := ws.Session()
	if s.ActiveFile != "" {
		t.Errorf("active = %q, want empty", s.ActiveFile)
	}
	if len(s.OpenFiles) != 0 {
		t.Errorf("openFiles = %v, want empty", s.OpenFiles)
	}
}

func TestDeleteFile_PromotesMostRecentlyOpened(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	a := ws.CreateFile("a.md", "x", "")
	b := ws.CreateFile("b.md", "x", "")
	c := ws.CreateFile("c.md", "x", "")

	// c is active. Delete it: b (most recently opened remaining) takes over.
	ws.DeleteFile(c)
	s := ws.Session()
	if s.ActiveFile != b {
		t.Errorf("active = %s, want %s", s.ActiveFile, b)
	}
	if len(s.OpenFiles) != 2 || s.OpenFiles[0] != a || s.OpenFiles[1] != b {
		t.Errorf("openFiles = %v, want [%s %s]", s.OpenFiles, a, b)
	}

	// Deleting an inactive file leaves the active one alone.
	ws.DeleteFile(a)
	if s := ws.Session(); s.ActiveFile != b {
		t.Errorf("active = %s, want %s", s.ActiveFile, b)
	}
}

func TestWorkspaceEvents(t *testing.T) {
	var events []string
	ws := newNotifyWorkspace(t, func(kind, id string) {
		events = append(events, kind)
	})

	folder := ws.CreateFolder("Docs", "")
	file := ws.CreateFile("a.md", "x", folder)
	ws.UpdateFileContent(file, "y")
	_ = ws.RenameFile(file, "b.md")
	ws.DeleteFolder(folder)

	want := []string{
		"folder.created",
		"file.created",
		"file.updated",
		"file.renamed",
		"file.deleted",
		"folder.deleted",
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, events[i], want[i])
		}
	}
}

func TestDeleteFolder_ReturnsDeletedFileIDs(t *testing.T) {
	ws, _ := testutil.TestWorkspace(t)
	docs := ws.CreateFolder("Docs", "")
	inner := ws.CreateFolder("Inner", docs)
	a := ws.CreateFile("a.md", "x", docs)
	b := ws.CreateFile("b.md", "x", inner)
	keep := ws.CreateFile("keep.md", "x", "")

	got := ws.DeleteFolder(docs)

	sort.Strings(got)
	want := []string{a, b}
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("deleted file ids = %v, want %v", got, want)
	}
	if _, ok := ws.File(keep); !ok {
		t.Error("unrelated file removed")
	}

	if got := ws.DeleteFolder("folder_99"); got != nil {
		t.Errorf("unknown folder returned %v", got)
	}
}
