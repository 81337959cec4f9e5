package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/roster"
)

type rosterService interface {
	ListStudents(ctx context.Context, graduationID string) ([]*domain.Student, error)
	CreateStudent(ctx context.Context, input roster.CreateStudentInput) (*domain.Student, error)
	UpdateStudent(ctx context.Context, input roster.UpdateStudentInput) (*domain.Student, error)
	DeleteStudent(ctx context.Context, graduationID, studentID string) error
	ReorderStudents(ctx context.Context, graduationID string, ids []string) error
	VerifyAccess(ctx context.Context, graduationID, studentID, password, linkID string) (bool, error)
	ResolveLink(ctx context.Context, linkID string) (*domain.Student, error)

	ListPages(ctx context.Context, graduationID string) ([]*domain.ContentPage, error)
	CreatePage(ctx context.Context, input roster.CreatePageInput) (*domain.ContentPage, error)
	UpdatePage(ctx context.Context, input roster.UpdatePageInput) (*domain.ContentPage, error)
	DeletePage(ctx context.Context, graduationID, pageID string) error
}

// RosterHandler serves student and content page endpoints.
type RosterHandler struct {
	svc rosterService
	log *slog.Logger
}

// NewRosterHandler creates a RosterHandler.
func NewRosterHandler(svc rosterService, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{svc: svc, log: logger.With("handler", "roster")}
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type createStudentRequest struct {
	Name            string `json:"name"            validate:"required,max=200"`
	AccessType      string `json:"accessType"      validate:"omitempty,oneof=public password link"`
	Password        string `json:"password"        validate:"max=72"`
	ProfilePhotoURL string `json:"profilePhotoUrl" validate:"omitempty,url,max=2048"`
	CoverPhotoURL   string `json:"coverPhotoUrl"   validate:"omitempty,url,max=2048"`
	PDFURL          string `json:"pdfUrl"          validate:"omitempty,url,max=2048"`
	Speech          string `json:"speech"          validate:"max=20000"`
}

type updateStudentRequest struct {
	Name            *string `json:"name"            validate:"omitempty,max=200"`
	AccessType      *string `json:"accessType"      validate:"omitempty,oneof=public password link"`
	Password        *string `json:"password"        validate:"omitempty,max=72"`
	ProfilePhotoURL *string `json:"profilePhotoUrl" validate:"omitempty,max=2048"`
	CoverPhotoURL   *string `json:"coverPhotoUrl"   validate:"omitempty,max=2048"`
	PDFURL          *string `json:"pdfUrl"          validate:"omitempty,max=2048"`
	Speech          *string `json:"speech"          validate:"omitempty,max=20000"`
}

type reorderRequest struct {
	StudentIDs []string `json:"studentIds" validate:"required,unique,dive,required,max=64"`
}

type accessRequest struct {
	Password string `json:"password" validate:"max=72"`
	LinkID   string `json:"linkId"   validate:"max=64"`
}

type studentResponse struct {
	ID              string    `json:"id"`
	GraduationID    string    `json:"graduationId"`
	Name            string    `json:"name"`
	AccessType      string    `json:"accessType"`
	HasPassword     bool      `json:"hasPassword"`
	LinkID          *string   `json:"linkId,omitempty"`
	ProfilePhotoURL *string   `json:"profilePhotoUrl,omitempty"`
	CoverPhotoURL   *string   `json:"coverPhotoUrl,omitempty"`
	PDFURL          *string   `json:"pdfUrl,omitempty"`
	Speech          *string   `json:"speech,omitempty"`
	Order           *int      `json:"order,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toStudentResponse(s *domain.Student) studentResponse {
	return studentResponse{
		ID:              s.ID,
		GraduationID:    s.GraduationID,
		Name:            s.Name,
		AccessType:      s.AccessType.String(),
		HasPassword:     s.PasswordHash != nil && *s.PasswordHash != "",
		LinkID:          s.LinkID,
		ProfilePhotoURL: s.ProfilePhotoURL,
		CoverPhotoURL:   s.CoverPhotoURL,
		PDFURL:          s.PDFURL,
		Speech:          s.Speech,
		Order:           s.Order,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// linkedStudentResponse is the public view behind a shared link.
type linkedStudentResponse struct {
	ID              string  `json:"id"`
	GraduationID    string  `json:"graduationId"`
	Name            string  `json:"name"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
	CoverPhotoURL   *string `json:"coverPhotoUrl,omitempty"`
	PDFURL          *string `json:"pdfUrl,omitempty"`
	Speech          *string `json:"speech,omitempty"`
}

type pageRequest struct {
	Title          string   `json:"title"          validate:"required,max=300"`
	Author         string   `json:"author"         validate:"max=200"`
	AuthorPhotoURL string   `json:"authorPhotoUrl" validate:"omitempty,url,max=2048"`
	Type           string   `json:"type"           validate:"required,oneof=message speech poem other"`
	Body           string   `json:"body"           validate:"max=20000"`
	Images         []string `json:"images"         validate:"max=20,dive,url,max=2048"`
	VideoURL       string   `json:"videoUrl"       validate:"omitempty,url,max=2048"`
	Size           string   `json:"size"           validate:"omitempty,oneof=small medium large"`
}

type updatePageRequest struct {
	Title          *string   `json:"title"          validate:"omitempty,max=300"`
	Author         *string   `json:"author"         validate:"omitempty,max=200"`
	AuthorPhotoURL *string   `json:"authorPhotoUrl" validate:"omitempty,max=2048"`
	Type           *string   `json:"type"           validate:"omitempty,oneof=message speech poem other"`
	Body           *string   `json:"body"           validate:"omitempty,max=20000"`
	Images         *[]string `json:"images"         validate:"omitempty,max=20,dive,url,max=2048"`
	VideoURL       *string   `json:"videoUrl"       validate:"omitempty,max=2048"`
	Size           *string   `json:"size"           validate:"omitempty,oneof=small medium large"`
}

type pageResponse struct {
	ID             string    `json:"id"`
	GraduationID   string    `json:"graduationId"`
	Title          string    `json:"title"`
	Author         *string   `json:"author,omitempty"`
	AuthorPhotoURL *string   `json:"authorPhotoUrl,omitempty"`
	Type           string    `json:"type"`
	Body           string    `json:"body"`
	Images         []string  `json:"images"`
	VideoURL       *string   `json:"videoUrl,omitempty"`
	Size           string    `json:"size"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toPageResponse(p *domain.ContentPage) pageResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return pageResponse{
		ID:             p.ID,
		GraduationID:   p.GraduationID,
		Title:          p.Title,
		Author:         p.Author,
		AuthorPhotoURL: p.AuthorPhotoURL,
		Type:           p.Type.String(),
		Body:           p.Body,
		Images:         images,
		VideoURL:       p.VideoURL,
		Size:           string(p.Size),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func typed[T ~string](v *string) *T {
	if v == nil {
		return nil
	}
	t := T(*v)
	return &t
}

// ---------------------------------------------------------------------------
// Students
// ---------------------------------------------------------------------------

// ListStudents handles GET /api/graduations/{id}/students.
func (h *RosterHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListStudents(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]studentResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStudentResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateStudent handles POST /api/graduations/{id}/students.
func (h *RosterHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	s, err := h.svc.CreateStudent(r.Context(), roster.CreateStudentInput{
		GraduationID:    chi.URLParam(r, "id"),
		Name:            req.Name,
		AccessType:      domain.AccessType(req.AccessType),
		Password:        req.Password,
		ProfilePhotoURL: req.ProfilePhotoURL,
		CoverPhotoURL:   req.CoverPhotoURL,
		PDFURL:          req.PDFURL,
		Speech:          req.Speech,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStudentResponse(s))
}

// UpdateStudent handles PATCH /api/graduations/{id}/students/{studentId}.
func (h *RosterHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req updateStudentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	s, err := h.svc.UpdateStudent(r.Context(), roster.UpdateStudentInput{
		GraduationID:    chi.URLParam(r, "id"),
		StudentID:       chi.URLParam(r, "studentId"),
		Name:            req.Name,
		AccessType:      typed[domain.AccessType](req.AccessType),
		Password:        req.Password,
		ProfilePhotoURL: req.ProfilePhotoURL,
		CoverPhotoURL:   req.CoverPhotoURL,
		PDFURL:          req.PDFURL,
		Speech:          req.Speech,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentResponse(s))
}

// DeleteStudent handles DELETE /api/graduations/{id}/students/{studentId}.
func (h *RosterHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteStudent(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "studentId")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderStudents handles PUT /api/graduations/{id}/students/order.
func (h *RosterHandler) ReorderStudents(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.ReorderStudents(r.Context(), chi.URLParam(r, "id"), req.StudentIDs); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VerifyAccess handles POST /api/graduations/{id}/students/{studentId}/access.
// It needs no authentication.
func (h *RosterHandler) VerifyAccess(w http.ResponseWriter, r *http.Request) {
	var req accessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	ok, err := h.svc.VerifyAccess(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "studentId"), req.Password, req.LinkID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"granted": ok})
}

// ResolveLink handles GET /api/links/{linkId}. It needs no authentication.
func (h *RosterHandler) ResolveLink(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.ResolveLink(r.Context(), chi.URLParam(r, "linkId"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linkedStudentResponse{
		ID:              s.ID,
		GraduationID:    s.GraduationID,
		Name:            s.Name,
		ProfilePhotoURL: s.ProfilePhotoURL,
		CoverPhotoURL:   s.CoverPhotoURL,
		PDFURL:          s.PDFURL,
		Speech:          s.Speech,
	})
}

// ---------------------------------------------------------------------------
// Content pages
// ---------------------------------------------------------------------------

// ListPages handles GET /api/graduations/{id}/pages.
func (h *RosterHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListPages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]pageResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPageResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreatePage handles POST /api/graduations/{id}/pages.
func (h *RosterHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.svc.CreatePage(r.Context(), roster.CreatePageInput{
		GraduationID:   chi.URLParam(r, "id"),
		Title:          req.Title,
		Author:         req.Author,
		AuthorPhotoURL: req.AuthorPhotoURL,
		Type:           domain.PageType(req.Type),
		Body:           req.Body,
		Images:         req.Images,
		VideoURL:       req.VideoURL,
		Size:           domain.PageSize(req.Size),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPageResponse(p))
}

// UpdatePage handles PATCH /api/graduations/{id}/pages/{pageId}.
func (h *RosterHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var req updatePageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.svc.UpdatePage(r.Context(), roster.UpdatePageInput{
		GraduationID:   chi.URLParam(r, "id"),
		PageID:         chi.URLParam(r, "pageId"),
		Title:          req.Title,
		Author:         req.Author,
		AuthorPhotoURL: req.AuthorPhotoURL,
		Type:           typed[domain.PageType](req.Type),
		Body:           req.Body,
		Images:         req.Images,
		VideoURL:       req.VideoURL,
		Size:           typed[domain.PageSize](req.Size),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(p))
}

// DeletePage handles DELETE /api/graduations/{id}/pages/{pageId}.
func (h *RosterHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePage(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "pageId")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
