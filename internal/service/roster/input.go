package roster

import (
	"strings"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const (
	maxNameLen     = 200
	maxTitleLen    = 300
	maxBodyLen     = 20000
	maxImages      = 20
	minPasswordLen = 4
	maxPasswordLen = 72
)

// ---------------------------------------------------------------------------
// Students
// ---------------------------------------------------------------------------

// CreateStudentInput holds the data for a new student. Password is required
// for password access and hashed before storage.
type CreateStudentInput struct {
	GraduationID    string
	Name            string
	AccessType      domain.AccessType
	Password        string
	ProfilePhotoURL string
	CoverPhotoURL   string
	PDFURL          string
	Speech          string
}

func (i CreateStudentInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateGraduationID(i.GraduationID)...)
	errs = append(errs, validateName(i.Name)...)
	if i.AccessType != "" && !i.AccessType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "access_type", Message: "invalid value"})
	}
	if i.AccessType == domain.AccessPassword {
		errs = append(errs, validatePassword(i.Password)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateStudentInput holds a partial update. Empty strings clear optional
// fields. Switching to password access requires Password unless the student
// already has one.
type UpdateStudentInput struct {
	GraduationID    string
	StudentID       string
	Name            *string
	AccessType      *domain.AccessType
	Password        *string
	ProfilePhotoURL *string
	CoverPhotoURL   *string
	PDFURL          *string
	Speech          *string
}

func (i UpdateStudentInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateGraduationID(i.GraduationID)...)
	if !domain.ValidIdentifier(i.StudentID) {
		errs = append(errs, domain.FieldError{Field: "student_id", Message: "invalid identifier"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	if i.AccessType != nil && !i.AccessType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "access_type", Message: "invalid value"})
	}
	if i.Password != nil {
		errs = append(errs, validatePassword(*i.Password)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Content pages
// ---------------------------------------------------------------------------

// CreatePageInput holds the data for a new content page.
type CreatePageInput struct {
	GraduationID   string
	Title          string
	Author         string
	AuthorPhotoURL string
	Type           domain.PageType
	Body           string
	Images         []string
	VideoURL       string
	Size           domain.PageSize
}

func (i CreatePageInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateGraduationID(i.GraduationID)...)
	errs = append(errs, validateTitle(i.Title)...)
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value"})
	}
	if i.Size != "" && !i.Size.IsValid() {
		errs = append(errs, domain.FieldError{Field: "size", Message: "invalid value"})
	}
	errs = append(errs, validateBody(i.Body)...)
	errs = append(errs, validateImages(i.Images)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdatePageInput holds a partial content page update.
type UpdatePageInput struct {
	GraduationID   string
	PageID         string
	Title          *string
	Author         *string
	AuthorPhotoURL *string
	Type           *domain.PageType
	Body           *string
	Images         *[]string
	VideoURL       *string
	Size           *domain.PageSize
}

func (i UpdatePageInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateGraduationID(i.GraduationID)...)
	if !domain.ValidIdentifier(i.PageID) {
		errs = append(errs, domain.FieldError{Field: "page_id", Message: "invalid identifier"})
	}
	if i.Title != nil {
		errs = append(errs, validateTitle(*i.Title)...)
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value"})
	}
	if i.Size != nil && !i.Size.IsValid() {
		errs = append(errs, domain.FieldError{Field: "size", Message: "invalid value"})
	}
	if i.Body != nil {
		errs = append(errs, validateBody(*i.Body)...)
	}
	if i.Images != nil {
		errs = append(errs, validateImages(*i.Images)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validateGraduationID(id string) []domain.FieldError {
	if !domain.ValidIdentifier(id) {
		return []domain.FieldError{{Field: "graduation_id", Message: "invalid identifier"}}
	}
	return nil
}

func validateName(name string) []domain.FieldError {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return []domain.FieldError{{Field: "name", Message: "required"}}
	case len(name) > maxNameLen:
		return []domain.FieldError{{Field: "name", Message: "too long"}}
	}
	return nil
}

func validateTitle(title string) []domain.FieldError {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return []domain.FieldError{{Field: "title", Message: "required"}}
	case len(title) > maxTitleLen:
		return []domain.FieldError{{Field: "title", Message: "too long"}}
	}
	return nil
}

func validateBody(body string) []domain.FieldError {
	if len(body) > maxBodyLen {
		return []domain.FieldError{{Field: "body", Message: "too long"}}
	}
	return nil
}

func validateImages(images []string) []domain.FieldError {
	if len(images) > maxImages {
		return []domain.FieldError{{Field: "images", Message: "too many images"}}
	}
	for _, u := range images {
		if strings.TrimSpace(u) == "" {
			return []domain.FieldError{{Field: "images", Message: "empty url"}}
		}
	}
	return nil
}

func validatePassword(password string) []domain.FieldError {
	switch {
	case len(password) < minPasswordLen:
		return []domain.FieldError{{Field: "password", Message: "too short"}}
	case len(password) > maxPasswordLen:
		return []domain.FieldError{{Field: "password", Message: "too long"}}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
