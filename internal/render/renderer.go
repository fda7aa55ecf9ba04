// Package render converts Markdown to preview HTML and guards preview
// surfaces against stale asynchronous results.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// EmptyPreview is returned for files with no content to render.
const EmptyPreview = `<div class="empty-state">Start typing to see preview</div>`

// Renderer wraps a configured goldmark engine. The engine is stateless, so
// one instance is shared across requests without locking.
type Renderer struct {
	md goldmark.Markdown
}

// New constructs a renderer with GFM tables, strikethrough, task lists,
// autolinks, and auto heading ids. Raw HTML passes through: workspace
// content is the author's own.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.TaskList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts Markdown to HTML. Blank content yields the empty-preview
// placeholder rather than an empty document.
func (r *Renderer) Render(content string) (string, error) {
	if isBlank(content) {
		return EmptyPreview, nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return buf.String(), nil
}

func isBlank(s string) bool {
	return len(bytes.TrimSpace([]byte(s))) == 0
}
