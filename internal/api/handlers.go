package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/export"
	"github.com/starford/ansuz/internal/links"
	"github.com/starford/ansuz/internal/persist"
	"github.com/starford/ansuz/internal/render"
	"github.com/starford/ansuz/internal/workspace"
)

// Handler holds API route handlers over one workspace instance.
type Handler struct {
	ws       *workspace.Workspace
	renderer *render.Renderer
	guard    *render.Guard
	exporter *export.Exporter
}

// NewHandler creates a new Handler.
func NewHandler(ws *workspace.Workspace, renderer *render.Renderer) *Handler {
	return &Handler{
		ws:       ws,
		renderer: renderer,
		guard:    render.NewGuard(),
		exporter: export.NewExporter(renderer.Render),
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return false
	}
	return true
}

// mapStoreErr translates validation errors into HTTP responses. Returns
// true when an error was written.
func mapStoreErr(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, apperr.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNameConflict):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrUnknownFormat), errors.Is(err, apperr.ErrInvalidBackup):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error("workspace operation failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
	return true
}

// ListFiles handles GET /files.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"files": h.ws.Files()})
}

// CreateFile handles POST /files. The parent is pre-validated here; the
// store treats an unknown parent as a no-op.
func (h *Handler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req CreateFileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if req.Parent != "" {
		if _, ok := h.ws.Folder(req.Parent); !ok {
			writeJSON(w, http.StatusNotFound, errorBody("parent folder not found"))
			return
		}
	}
	id := h.ws.CreateFile(req.Name, req.Content, req.Parent)
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// GetFile handles GET /files/{id}.
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	file, ok := h.ws.File(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, file)
}

// UpdateFile handles PUT /files/{id}: replaces content, marks modified.
func (h *Handler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.ws.File(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	var req UpdateFileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.ws.UpdateFileContent(id, req.Content)
	file, _ := h.ws.File(id)
	writeJSON(w, http.StatusOK, file)
}

// SaveFile handles POST /files/{id}/save: clears the modified flag.
func (h *Handler) SaveFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.ws.File(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.ws.MarkSaved(id)
	file, _ := h.ws.File(id)
	writeJSON(w, http.StatusOK, file)
}

// RenameFile handles POST /files/{id}/rename.
func (h *Handler) RenameFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.ws.File(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	var req RenameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if mapStoreErr(w, h.ws.RenameFile(id, req.Name)) {
		return
	}
	file, _ := h.ws.File(id)
	writeJSON(w, http.StatusOK, file)
}

// DeleteFile handles DELETE /files/{id}.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.ws.File(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.ws.DeleteFile(id)
	h.guard.Forget("preview:" + id)
	w.WriteHeader(http.StatusNoContent)
}

// CreateFolder handles POST /folders.
func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if req.Parent != "" {
		if _, ok := h.ws.Folder(req.Parent); !ok {
			writeJSON(w, http.StatusNotFound, errorBody("parent folder not found"))
			return
		}
	}
	id := h.ws.CreateFolder(req.Name, req.Parent)
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// RenameFolder handles POST /folders/{id}/rename.
func (h *Handler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.ws.Folder(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	var req RenameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if mapStoreErr(w, h.ws.RenameFolder(id, req.Name)) {
		return
	}
	folder, _ := h.ws.Folder(id)
	writeJSON(w, http.StatusOK, folder)
}

// DeleteFolder handles DELETE /folders/{id}. Cascading and non-reversible;
// confirming intent is the client's concern.
func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.ws.Folder(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	for _, fileID := range h.ws.DeleteFolder(id) {
		h.guard.Forget("preview:" + fileID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFolder handles POST /folders/{id}/toggle.
func (h *Handler) ToggleFolder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.ws.Folder(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.ws.ToggleFolder(id)
	folder, _ := h.ws.Folder(id)
	writeJSON(w, http.StatusOK, folder)
}

// GetTree handles GET /tree?format=nested|ascii.
func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("format") {
	case "", "nested":
		writeJSON(w, http.StatusOK, map[string]any{"tree": h.ws.Tree()})
	case "ascii":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(h.ws.ASCIITree()))
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("unknown tree format"))
	}
}

// GetSession handles GET /session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ws.Session())
}

// OpenFile handles POST /session/open.
func (h *Handler) OpenFile(w http.ResponseWriter, r *http.Request) {
	var req OpenFileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, ok := h.ws.File(req.ID); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.ws.OpenFile(req.ID, true)
	writeJSON(w, http.StatusOK, h.ws.Session())
}

// CloseFile handles POST /session/close.
func (h *Handler) CloseFile(w http.ResponseWriter, r *http.Request) {
	var req OpenFileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.ws.CloseFile(req.ID)
	writeJSON(w, http.StatusOK, h.ws.Session())
}

// CreateSplit handles POST /session/splits.
func (h *Handler) CreateSplit(w http.ResponseWriter, r *http.Request) {
	var req CreateSplitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	split, ok := h.ws.CreateSplit(req.FileID)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("no file to split on"))
		return
	}
	writeJSON(w, http.StatusCreated, SplitResponse{
		ID:             split.ID,
		FileID:         split.FileID,
		PreviewVisible: split.PreviewVisible,
	})
}

// UpdateSplit handles POST /session/splits/{id}.
func (h *Handler) UpdateSplit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateSplitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.ws.UpdateSplit(id, req.FileID, req.PreviewVisible)
	writeJSON(w, http.StatusOK, h.ws.Session())
}

// CloseSplit handles DELETE /session/splits/{id}.
func (h *Handler) CloseSplit(w http.ResponseWriter, r *http.Request) {
	h.ws.CloseSplit(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.ws.Session())
}

// Preview handles GET /files/{id}/preview: render, resolve wiki links,
// discard if superseded. A render failure degrades to an inline error
// placeholder; the workspace itself is never touched.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	file, ok := h.ws.File(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}

	surface := "preview:" + id
	seq := h.guard.Begin(surface)

	html, err := h.renderer.Render(file.Content)
	if err != nil {
		slog.Warn("preview render failed", slog.String("id", id), slog.String("error", err.Error()))
		html = `<div class="render-error">Preview unavailable: ` + err.Error() + `</div>`
	} else {
		ids, names := h.ws.FileNames()
		html = links.Resolve(html, ids, names)
	}

	if !h.guard.Accept(surface, seq) {
		// A newer render request for this surface began while this one
		// was in flight; the client keeps the newer preview.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{FileID: id, Seq: seq, HTML: html})
}

// ExportFile handles GET /files/{id}/export?format=md|txt|html|pdf.
func (h *Handler) ExportFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	file, ok := h.ws.File(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "md"
	}
	artifact, err := h.exporter.Export(file, format)
	if mapStoreErr(w, err) {
		return
	}
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	_, _ = w.Write(artifact.Data)
}

// ArchiveWorkspace handles GET /workspace/archive: a ZIP of the whole tree.
func (h *Handler) ArchiveWorkspace(w http.ResponseWriter, r *http.Request) {
	data, err := export.Archive(h.ws.Paths())
	if err != nil {
		slog.Error("archive failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="ansuz-workspace.zip"`)
	_, _ = w.Write(data)
}

// ExportBackup handles GET /backup.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	data, err := persist.ExportBackup(h.ws.Snapshot(), now)
	if err != nil {
		slog.Error("backup export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+persist.BackupFilename(now)+`"`)
	_, _ = w.Write(data)
}

// ImportBackup handles POST /backup: replaces the workspace wholesale.
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 50<<20)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read backup"))
		return
	}
	snap, err := persist.ParseBackup(data)
	if mapStoreErr(w, err) {
		return
	}
	h.ws.Replace(snap)
	files, folders := h.ws.Counts()
	writeJSON(w, http.StatusOK, map[string]int{"files": files, "folders": folders})
}

// SeedSample handles POST /workspace/sample.
func (h *Handler) SeedSample(w http.ResponseWriter, r *http.Request) {
	workspace.SeedSample(h.ws)
	files, folders := h.ws.Counts()
	writeJSON(w, http.StatusCreated, map[string]int{"files": files, "folders": folders})
}
