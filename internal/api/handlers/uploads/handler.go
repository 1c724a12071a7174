// Package uploads accepts an arbitrary request body and archives it into
// object storage.
package uploads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	uploadsCore "github.com/cavemanlearn/bff/internal/core/uploads"
)

// maxBodyBytes caps what a single upload may carry.
const maxBodyBytes = 1 << 20

// Handler serves the upload endpoint.
type Handler struct {
	archiver *uploadsCore.Service
	logger   zerolog.Logger
}

// NewHandler creates an upload handler.
func NewHandler(archiver *uploadsCore.Service, logger zerolog.Logger) *Handler {
	return &Handler{archiver: archiver, logger: logger}
}

// HandleUpload stores the request body under a timestamped key.
// POST /uploads
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return
	}

	key, err := h.archiver.Archive(r.Context(), body)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to archive upload")
		http.Error(w, "could not store request body", http.StatusInternalServerError)
		return
	}

	resp := map[string]string{
		"body": fmt.Sprintf("successfully stored your request as %q", key),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode upload response")
	}
}
