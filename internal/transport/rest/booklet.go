package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/booklet"
	"github.com/heartmarshall/gradbook-backend/internal/service/graduation"
)

type bookletGenerator interface {
	Generate(ctx context.Context, req booklet.Request) (*booklet.Result, error)
}

type bookletGate interface {
	CheckEditor(ctx context.Context, id string) error
	BookletDownload(ctx context.Context, id string) (*graduation.BookletDownload, error)
}

// BookletHandler serves booklet generation and the gated download.
type BookletHandler struct {
	assembler bookletGenerator
	gate      bookletGate
	log       *slog.Logger
}

// NewBookletHandler creates a BookletHandler.
func NewBookletHandler(assembler bookletGenerator, gate bookletGate, logger *slog.Logger) *BookletHandler {
	return &BookletHandler{assembler: assembler, gate: gate, log: logger.With("handler", "booklet")}
}

type generateBookletRequest struct {
	GraduationID   string   `json:"graduationId"   validate:"required,max=64"`
	CustomCoverURL string   `json:"customCoverUrl" validate:"max=2048"`
	PageOrder      []string `json:"pageOrder"      validate:"max=8"`
}

type generateBookletResponse struct {
	Success           bool     `json:"success"`
	BookletURL        string   `json:"bookletUrl"`
	PageCount         int      `json:"pageCount"`
	StudentCount      int      `json:"studentCount"`
	ProcessedStudents int      `json:"processedStudents"`
	SkippedStudents   []string `json:"skippedStudents"`
}

type bookletDownloadResponse struct {
	BookletURL string `json:"bookletUrl"`
}

type bookletLockedResponse struct {
	Error       string    `json:"error"`
	Message     string    `json:"message"`
	AvailableAt time.Time `json:"availableAt"`
	RemainingMs int64     `json:"remainingMs"`
}

// Generate handles POST /api/booklets.
func (h *BookletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateBookletRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeBookletError(w, r, err)
		return
	}

	if err := h.gate.CheckEditor(r.Context(), req.GraduationID); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) {
			handleError(h.log, w, r, err)
			return
		}
		h.writeBookletError(w, r, err)
		return
	}

	res, err := h.assembler.Generate(r.Context(), booklet.Request{
		GraduationID:   req.GraduationID,
		CustomCoverURL: req.CustomCoverURL,
		PageOrder:      req.PageOrder,
	})
	if err != nil {
		h.writeBookletError(w, r, err)
		return
	}

	skipped := res.SkippedStudents
	if skipped == nil {
		skipped = []string{}
	}
	writeJSON(w, http.StatusOK, generateBookletResponse{
		Success:           true,
		BookletURL:        res.BookletURL,
		PageCount:         res.PageCount,
		StudentCount:      res.StudentCount,
		ProcessedStudents: res.ProcessedStudents,
		SkippedStudents:   skipped,
	})
}

// Download handles GET /api/graduations/{id}/booklet. It needs no authentication.
func (h *BookletHandler) Download(w http.ResponseWriter, r *http.Request) {
	dl, err := h.gate.BookletDownload(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "no booklet has been generated yet")
			return
		}
		handleError(h.log, w, r, err)
		return
	}

	if dl.Locked {
		writeJSON(w, http.StatusForbidden, bookletLockedResponse{
			Error:       "booklet_locked",
			Message:     "the booklet is not available yet",
			AvailableAt: dl.AvailableAt,
			RemainingMs: dl.Remaining.Milliseconds(),
		})
		return
	}
	writeJSON(w, http.StatusOK, bookletDownloadResponse{BookletURL: dl.URL})
}

func (h *BookletHandler) writeBookletError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.BookletErrorCodeOf(err)
	status := bookletStatus(code)

	message := err.Error()
	var be *domain.BookletError
	if errors.As(err, &be) {
		message = be.Message
	}
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "booklet generation failed",
			slog.String("code", code.String()),
			slog.String("error", err.Error()),
		)
		if code == domain.BookletInternal {
			message = "internal error"
		}
	}

	writeError(w, status, code.String(), message)
}
