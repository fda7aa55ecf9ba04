package workspace

// SeedSample populates the workspace with the nested sample documents used
// to demonstrate folders, tabs, and wiki links. Safe to call on a non-empty
// workspace: everything is created alongside existing entities.
func SeedSample(w *Workspace) {
	root := w.CreateFolder("Sample Documents", "")
	tutorials := w.CreateFolder("Tutorials", root)
	examples := w.CreateFolder("Examples", tutorials)

	w.CreateFile("Getting Started.md", `# Welcome

This workspace keeps Markdown files in a folder hierarchy with live preview.

## Features

- Live preview with wiki links
- Hierarchical folder organization
- Tabs and split views
- Export to Markdown, text, HTML, and printable documents

Link files together with the double-bracket syntax.

**Next steps**: check out [[Tutorial - Basic Usage]] and [[Advanced Features]]!
`, root)

	w.CreateFile("Tutorial - Basic Usage.md", `# Tutorial - Basic Usage

Create files and folders from the tree, edit on the left, preview on the
right.

- Link to other files: [[Getting Started]]
- A link to a missing file offers to create it: [[Project Ideas]]

Continue to: [[Advanced Features]]
`, tutorials)

	w.CreateFile("Advanced Features.md", `# Advanced Features

## Split views

Open a second pane to compare two documents side by side.

## Export

Every file can be exported as Markdown, plain text, a styled HTML document,
or a printable document.

Return to: [[Getting Started]] | See also: [[Quick Reference]]
`, examples)

	w.CreateFile("Quick Reference.md", `# Quick Reference

| Action | Where |
|--------|-------|
| New file | tree toolbar |
| Rename | context menu |
| Export | file menu |

Navigation: [[Getting Started]] | [[Tutorial - Basic Usage]] | [[Advanced Features]]
`, examples)
}
