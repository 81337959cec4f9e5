package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/graduation"
)

type graduationService interface {
	Create(ctx context.Context, input graduation.CreateInput) (*domain.Graduation, error)
	Get(ctx context.Context, id string) (*domain.Graduation, error)
	ListMine(ctx context.Context) ([]*domain.Graduation, error)
	Update(ctx context.Context, input graduation.UpdateInput) (*domain.Graduation, error)
	Delete(ctx context.Context, id string) error
	AddEditor(ctx context.Context, id, editorID string) error
	RemoveEditor(ctx context.Context, id, editorID string) error
	SetBookletAvailability(ctx context.Context, id string, at *time.Time) (*domain.Graduation, error)
	SetSitePassword(ctx context.Context, id, password string) error
	VerifySitePassword(ctx context.Context, id, password string) (bool, error)
}

// GraduationHandler serves graduation management endpoints.
type GraduationHandler struct {
	svc graduationService
	log *slog.Logger
}

// NewGraduationHandler creates a GraduationHandler.
func NewGraduationHandler(svc graduationService, logger *slog.Logger) *GraduationHandler {
	return &GraduationHandler{svc: svc, log: logger.With("handler", "graduation")}
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type configRequest struct {
	PrimaryColor   string         `json:"primaryColor"   validate:"omitempty,hexcolor"`
	SecondaryColor string         `json:"secondaryColor" validate:"omitempty,hexcolor"`
	Font           string         `json:"font"           validate:"max=64"`
	PageOrder      []string       `json:"pageOrder"      validate:"max=8"`
	Extra          map[string]any `json:"extra"`
}

func (c *configRequest) toDomain() *domain.GraduationConfig {
	if c == nil {
		return nil
	}
	cfg := &domain.GraduationConfig{
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
		Font:           c.Font,
		Extra:          c.Extra,
	}
	for _, s := range c.PageOrder {
		cfg.PageOrder = append(cfg.PageOrder, domain.Section(s))
	}
	return cfg
}

type createGraduationRequest struct {
	ID         string         `json:"id"         validate:"max=64"`
	SchoolName string         `json:"schoolName" validate:"required,max=200"`
	Year       int            `json:"year"       validate:"required"`
	Config     *configRequest `json:"config"`
}

type updateGraduationRequest struct {
	SchoolName *string        `json:"schoolName" validate:"omitempty,max=200"`
	Year       *int           `json:"year"`
	Config     *configRequest `json:"config"`
	Force      bool           `json:"force"`
}

type addEditorRequest struct {
	EditorID string `json:"editorId" validate:"required,max=128"`
}

type availabilityRequest struct {
	AvailableAt *time.Time `json:"availableAt"`
}

type passwordRequest struct {
	Password string `json:"password" validate:"max=72"`
}

type configResponse struct {
	PrimaryColor       string         `json:"primaryColor,omitempty"`
	SecondaryColor     string         `json:"secondaryColor,omitempty"`
	Font               string         `json:"font,omitempty"`
	PageOrder          []string       `json:"pageOrder,omitempty"`
	BookletAvailableAt *time.Time     `json:"bookletAvailableAt,omitempty"`
	HasSitePassword    bool           `json:"hasSitePassword"`
	Extra              map[string]any `json:"extra,omitempty"`
}

type graduationResponse struct {
	ID                 string               `json:"id"`
	SchoolName         string               `json:"schoolName"`
	Year               int                  `json:"year"`
	Editors            []string             `json:"editors"`
	CreatedBy          string               `json:"createdBy"`
	Config             configResponse       `json:"config"`
	BookletURL         *string              `json:"bookletUrl,omitempty"`
	BookletGeneratedAt *time.Time           `json:"bookletGeneratedAt,omitempty"`
	BookletStats       *domain.BookletStats `json:"bookletStats,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

func toGraduationResponse(g *domain.Graduation) graduationResponse {
	cfg := configResponse{
		PrimaryColor:       g.Config.PrimaryColor,
		SecondaryColor:     g.Config.SecondaryColor,
		Font:               g.Config.Font,
		BookletAvailableAt: g.Config.BookletAvailableAt,
		HasSitePassword:    g.Config.SitePasswordHash != "",
		Extra:              g.Config.Extra,
	}
	for _, s := range g.Config.PageOrder {
		cfg.PageOrder = append(cfg.PageOrder, s.String())
	}
	return graduationResponse{
		ID:                 g.ID,
		SchoolName:         g.SchoolName,
		Year:               g.Year,
		Editors:            g.Editors,
		CreatedBy:          g.CreatedBy,
		Config:             cfg,
		BookletURL:         g.BookletURL,
		BookletGeneratedAt: g.BookletGeneratedAt,
		BookletStats:       g.BookletStats,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Create handles POST /api/graduations.
func (h *GraduationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGraduationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	g, err := h.svc.Create(r.Context(), graduation.CreateInput{
		ID:         req.ID,
		SchoolName: req.SchoolName,
		Year:       req.Year,
		Config:     req.Config.toDomain(),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGraduationResponse(g))
}

// List handles GET /api/graduations.
func (h *GraduationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListMine(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]graduationResponse, 0, len(list))
	for _, g := range list {
		out = append(out, toGraduationResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/graduations/{id}.
func (h *GraduationHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGraduationResponse(g))
}

// Update handles PATCH /api/graduations/{id}.
func (h *GraduationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateGraduationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	g, err := h.svc.Update(r.Context(), graduation.UpdateInput{
		ID:         chi.URLParam(r, "id"),
		SchoolName: req.SchoolName,
		Year:       req.Year,
		Config:     req.Config.toDomain(),
		Force:      req.Force,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGraduationResponse(g))
}

// Delete handles DELETE /api/graduations/{id}.
func (h *GraduationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddEditor handles POST /api/graduations/{id}/editors.
func (h *GraduationHandler) AddEditor(w http.ResponseWriter, r *http.Request) {
	var req addEditorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.AddEditor(r.Context(), chi.URLParam(r, "id"), req.EditorID); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveEditor handles DELETE /api/graduations/{id}/editors/{editorId}.
func (h *GraduationHandler) RemoveEditor(w http.ResponseWriter, r *http.Request) {
	err := h.svc.RemoveEditor(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "editorId"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetAvailability handles PUT /api/graduations/{id}/availability.
func (h *GraduationHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	g, err := h.svc.SetBookletAvailability(r.Context(), chi.URLParam(r, "id"), req.AvailableAt)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGraduationResponse(g))
}

// SetSitePassword handles PUT /api/graduations/{id}/site-password.
func (h *GraduationHandler) SetSitePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.SetSitePassword(r.Context(), chi.URLParam(r, "id"), req.Password); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VerifySitePassword handles POST /api/graduations/{id}/site-password/verify.
// It needs no authentication.
func (h *GraduationHandler) VerifySitePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	ok, err := h.svc.VerifySitePassword(r.Context(), chi.URLParam(r, "id"), req.Password)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}
