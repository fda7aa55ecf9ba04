package workspace

import (
	"sort"
	"strings"
)

// Node is one entry in the materialized tree view.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"` // "file" or "folder"
	Expanded bool   `json:"expanded,omitempty"`
	Modified bool   `json:"modified,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Tree materializes the nested hierarchy. Folders sort before files; each
// level is ordered lexicographically by name with ties broken by id, so a
// fixed workspace always produces identical output.
func (w *Workspace) Tree() []Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.treeLevelLocked("")
}

func (w *Workspace) treeLevelLocked(parent string) []Node {
	folders := w.sortedChildFoldersLocked(parent)
	files := w.sortedChildFilesLocked(parent)

	nodes := make([]Node, 0, len(folders)+len(files))
	for _, id := range folders {
		f := w.folders[id]
		nodes = append(nodes, Node{
			ID:       id,
			Name:     f.Name,
			Kind:     "folder",
			Expanded: f.Expanded,
			Children: w.treeLevelLocked(id),
		})
	}
	for _, id := range files {
		f := w.files[id]
		nodes = append(nodes, Node{
			ID:       id,
			Name:     f.Name,
			Kind:     "file",
			Modified: f.Modified,
		})
	}
	return nodes
}

func (w *Workspace) sortedChildFoldersLocked(parent string) []string {
	ids := append([]string(nil), w.childFolders[parent]...)
	sort.Slice(ids, func(i, j int) bool {
		a, b := w.folders[ids[i]], w.folders[ids[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (w *Workspace) sortedChildFilesLocked(parent string) []string {
	ids := append([]string(nil), w.childFiles[parent]...)
	sort.Slice(ids, func(i, j int) bool {
		a, b := w.files[ids[i]], w.files[ids[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return ids[i] < ids[j]
	})
	return ids
}

// ASCIITree renders the hierarchy as a textual directory tree with branch
// glyphs. The projection covers the full workspace regardless of folder
// disclosure state.
func (w *Workspace) ASCIITree() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var sb strings.Builder
	w.asciiLevelLocked(&sb, "", "")
	return sb.String()
}

func (w *Workspace) asciiLevelLocked(sb *strings.Builder, parent, prefix string) {
	folders := w.sortedChildFoldersLocked(parent)
	files := w.sortedChildFilesLocked(parent)
	total := len(folders) + len(files)

	for i, id := range folders {
		last := i == total-1
		sb.WriteString(prefix)
		sb.WriteString(branchGlyph(last))
		sb.WriteString(w.folders[id].Name)
		sb.WriteString("/\n")
		childPrefix := prefix + "    "
		if !last {
			childPrefix = prefix + "│   "
		}
		w.asciiLevelLocked(sb, id, childPrefix)
	}
	for i, id := range files {
		last := len(folders)+i == total-1
		sb.WriteString(prefix)
		sb.WriteString(branchGlyph(last))
		sb.WriteString(w.files[id].Name)
		if w.files[id].Modified {
			sb.WriteString(" •")
		}
		sb.WriteString("\n")
	}
}

func branchGlyph(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

// Paths materializes the name→content mapping consumed by archive export:
// file paths are folder names joined with "/". Sibling name collisions are
// disambiguated by suffixing the file id, keeping every entity addressable.
func (w *Workspace) Paths() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.files))
	w.pathLevelLocked(out, "", "")
	return out
}

func (w *Workspace) pathLevelLocked(out map[string]string, parent, dir string) {
	for _, id := range w.sortedChildFilesLocked(parent) {
		f := w.files[id]
		path := dir + f.Name
		if _, taken := out[path]; taken {
			ext := ""
			stem := f.Name
			if i := strings.LastIndex(f.Name, "."); i > 0 {
				stem, ext = f.Name[:i], f.Name[i:]
			}
			path = dir + stem + " (" + id + ")" + ext
		}
		out[path] = f.Content
	}
	for _, id := range w.sortedChildFoldersLocked(parent) {
		w.pathLevelLocked(out, id, dir+w.folders[id].Name+"/")
	}
}
