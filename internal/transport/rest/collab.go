package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/collab"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

type lockCoordinator interface {
	LockField(ctx context.Context, graduationID, rawPath string, editor ctxutil.Editor) (collab.LockResult, error)
	UnlockField(ctx context.Context, graduationID, rawPath, editorID string) (bool, error)
	ForceUnlockField(ctx context.Context, graduationID, rawPath string) error
	ListLocks(ctx context.Context, graduationID string) (map[string]domain.FieldLock, error)
	ActiveEditors(ctx context.Context, graduationID, self string) ([]string, error)
	Heartbeat(ctx context.Context, graduationID, editorID string) error
}

type editorChecker interface {
	CheckEditor(ctx context.Context, id string) error
}

// CollabHandler serves field locks and presence over plain HTTP.
type CollabHandler struct {
	coord  lockCoordinator
	access editorChecker
	log    *slog.Logger
}

// NewCollabHandler creates a CollabHandler.
func NewCollabHandler(coord lockCoordinator, access editorChecker, logger *slog.Logger) *CollabHandler {
	return &CollabHandler{coord: coord, access: access, log: logger.With("handler", "collab")}
}

type lockRequest struct {
	FieldPath string `json:"fieldPath" validate:"required,max=256"`
}

type lockResponse struct {
	Acquired bool             `json:"acquired"`
	Path     string           `json:"path"`
	Lock     *domain.FieldLock `json:"lock,omitempty"`
	Holder   *domain.FieldLock `json:"holder,omitempty"`
}

type presenceResponse struct {
	ActiveEditors []string `json:"activeEditors"`
}

// authorize checks the caller edits the graduation in the URL and returns
// its id along with the caller.
func (h *CollabHandler) authorize(w http.ResponseWriter, r *http.Request) (string, ctxutil.Editor, bool) {
	id := chi.URLParam(r, "id")
	if err := h.access.CheckEditor(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return "", ctxutil.Editor{}, false
	}
	editor, _ := ctxutil.EditorFromCtx(r.Context())
	return id, editor, true
}

// ListLocks handles GET /api/graduations/{id}/locks.
func (h *CollabHandler) ListLocks(w http.ResponseWriter, r *http.Request) {
	id, _, ok := h.authorize(w, r)
	if !ok {
		return
	}
	locks, err := h.coord.ListLocks(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locks": locks})
}

// Lock handles POST /api/graduations/{id}/locks. A field held by another
// editor answers 409 with the holder.
func (h *CollabHandler) Lock(w http.ResponseWriter, r *http.Request) {
	id, editor, ok := h.authorize(w, r)
	if !ok {
		return
	}
	var req lockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.coord.LockField(r.Context(), id, req.FieldPath, editor)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	holder := res.Holder
	if !res.Acquired {
		writeJSON(w, http.StatusConflict, lockResponse{Path: res.Path, Holder: &holder})
		return
	}
	writeJSON(w, http.StatusOK, lockResponse{Acquired: true, Path: res.Path, Lock: &holder})
}

// Unlock handles DELETE /api/graduations/{id}/locks?field=...&force=true.
// Without force only the caller's own lock is released.
func (h *CollabHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	id, editor, ok := h.authorize(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	field := q.Get("field")
	force, _ := strconv.ParseBool(q.Get("force"))

	if force {
		if err := h.coord.ForceUnlockField(r.Context(), id, field); err != nil {
			handleError(h.log, w, r, err)
			return
		}
		h.log.InfoContext(r.Context(), "lock force-released",
			slog.String("graduation_id", id),
			slog.String("field", field),
			slog.String("editor_id", editor.ID),
		)
		writeJSON(w, http.StatusOK, map[string]bool{"released": true})
		return
	}

	released, err := h.coord.UnlockField(r.Context(), id, field, editor.ID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"released": released})
}

// Presence handles GET /api/graduations/{id}/presence.
func (h *CollabHandler) Presence(w http.ResponseWriter, r *http.Request) {
	id, editor, ok := h.authorize(w, r)
	if !ok {
		return
	}
	ids, err := h.coord.ActiveEditors(r.Context(), id, editor.ID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presenceResponse{ActiveEditors: ids})
}

// Heartbeat handles POST /api/graduations/{id}/presence for clients that
// cannot hold a websocket open.
func (h *CollabHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	id, editor, ok := h.authorize(w, r)
	if !ok {
		return
	}
	if err := h.coord.Heartbeat(r.Context(), id, editor.ID); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// presenceMessage is pushed to websocket clients.
type presenceMessage struct {
	Type          string    `json:"type"`
	ActiveEditors []string  `json:"activeEditors"`
	At            time.Time `json:"at"`
}
