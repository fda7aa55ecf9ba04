package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Files.
	r.Get("/files", h.ListFiles)
	r.Post("/files", h.CreateFile)
	r.Get("/files/{id}", h.GetFile)
	r.Put("/files/{id}", h.UpdateFile)
	r.Delete("/files/{id}", h.DeleteFile)
	r.Post("/files/{id}/save", h.SaveFile)
	r.Post("/files/{id}/rename", h.RenameFile)
	r.Get("/files/{id}/preview", h.Preview)
	r.Get("/files/{id}/export", h.ExportFile)

	// Folders.
	r.Post("/folders", h.CreateFolder)
	r.Delete("/folders/{id}", h.DeleteFolder)
	r.Post("/folders/{id}/rename", h.RenameFolder)
	r.Post("/folders/{id}/toggle", h.ToggleFolder)

	// Tree projection.
	r.Get("/tree", h.GetTree)

	// Session.
	r.Get("/session", h.GetSession)
	r.Post("/session/open", h.OpenFile)
	r.Post("/session/close", h.CloseFile)
	r.Post("/session/splits", h.CreateSplit)
	r.Post("/session/splits/{id}", h.UpdateSplit)
	r.Delete("/session/splits/{id}", h.CloseSplit)

	// Workspace-level utilities.
	r.Get("/workspace/archive", h.ArchiveWorkspace)
	r.Post("/workspace/sample", h.SeedSample)
	r.Get("/backup", h.ExportBackup)
	r.Post("/backup", h.ImportBackup)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
