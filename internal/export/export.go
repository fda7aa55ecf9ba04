// Package export produces download artifacts from workspace files.
package export

import (
	"fmt"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// Artifact is an exported document ready to be served as a download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RenderFunc converts Markdown to HTML for the styled export formats.
type RenderFunc func(content string) (string, error)

type strategy func(file models.File) (Artifact, error)

// Exporter maps format kinds to export strategies with a uniform contract.
type Exporter struct {
	formats map[string]strategy
}

// NewExporter builds the strategy table. The pdf format is a print-oriented
// HTML document: the artifact opens ready for the browser's print-to-PDF
// path, which is the degradation the export pipeline falls back to when no
// native PDF engine is available.
func NewExporter(render RenderFunc) *Exporter {
	e := &Exporter{}
	e.formats = map[string]strategy{
		"md": func(f models.File) (Artifact, error) {
			return Artifact{
				Filename:    stem(f.Name) + ".md",
				ContentType: "text/markdown; charset=utf-8",
				Data:        []byte(f.Content),
			}, nil
		},
		"txt": func(f models.File) (Artifact, error) {
			return Artifact{
				Filename:    stem(f.Name) + ".txt",
				ContentType: "text/plain; charset=utf-8",
				Data:        []byte(f.Content),
			}, nil
		},
		"html": func(f models.File) (Artifact, error) {
			body, err := render(f.Content)
			if err != nil {
				return Artifact{}, err
			}
			return Artifact{
				Filename:    stem(f.Name) + ".html",
				ContentType: "text/html; charset=utf-8",
				Data:        []byte(htmlDocument(stem(f.Name), body, false)),
			}, nil
		},
		"pdf": func(f models.File) (Artifact, error) {
			body, err := render(f.Content)
			if err != nil {
				return Artifact{}, err
			}
			return Artifact{
				Filename:    stem(f.Name) + "_printable.html",
				ContentType: "text/html; charset=utf-8",
				Data:        []byte(htmlDocument(stem(f.Name), body, true)),
			}, nil
		},
	}
	return e
}

// Export produces the artifact for the given format kind.
func (e *Exporter) Export(file models.File, format string) (Artifact, error) {
	fn, ok := e.formats[format]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %q", apperr.ErrUnknownFormat, format)
	}
	return fn(file)
}

// stem strips the final extension from a file name.
func stem(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
