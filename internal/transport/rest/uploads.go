package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/storage"
)

type uploadPresigner interface {
	PresignUpload(ctx context.Context, prefix, ext, contentType string, ttl time.Duration) (storage.PresignedUpload, error)
}

// uploadKinds maps each upload kind to its accepted content types and the
// file extension stored for them.
var uploadKinds = map[string]map[string]string{
	"student-pdf": {"application/pdf": ".pdf"},
	"photo":       {"image/jpeg": ".jpg", "image/png": ".png", "image/webp": ".webp"},
	"cover":       {"image/jpeg": ".jpg", "image/png": ".png"},
	"video":       {"video/mp4": ".mp4", "video/webm": ".webm", "video/quicktime": ".mov"},
}

// UploadHandler hands out presigned PUT URLs so browsers upload straight to
// the asset store.
type UploadHandler struct {
	store  uploadPresigner
	access editorChecker
	ttl    time.Duration
	log    *slog.Logger
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(store uploadPresigner, access editorChecker, ttl time.Duration, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{store: store, access: access, ttl: ttl, log: logger.With("handler", "uploads")}
}

type uploadRequest struct {
	Kind        string `json:"kind"        validate:"required,oneof=student-pdf photo cover video"`
	ContentType string `json:"contentType" validate:"required,max=100"`
}

// Create handles POST /api/graduations/{id}/uploads.
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.access.CheckEditor(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req uploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	ext, ok := uploadKinds[req.Kind][req.ContentType]
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported_content_type",
			"content type "+req.ContentType+" is not accepted for "+req.Kind)
		return
	}

	up, err := h.store.PresignUpload(r.Context(), "graduations/"+id+"/"+req.Kind, ext, req.ContentType, h.ttl)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, up)
}
