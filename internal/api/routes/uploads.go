package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cavemanlearn/bff/internal/api/handlers/uploads"
)

// RegisterUploadRoutes registers the upload archive endpoint.
func RegisterUploadRoutes(r chi.Router, handler *uploads.Handler) {
	r.Post("/uploads", handler.HandleUpload)
}
