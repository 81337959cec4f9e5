package booklet

import (
	"errors"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// Request asks for one booklet generation.
type Request struct {
	GraduationID   string
	CustomCoverURL string
	PageOrder      []string
}

// Validate checks the request and returns the parsed page order, which is nil
// when the request does not set one.
func (r Request) Validate() ([]domain.Section, error) {
	var errs []domain.FieldError

	if !domain.ValidIdentifier(r.GraduationID) {
		errs = append(errs, domain.FieldError{Field: "graduationId", Message: "invalid identifier"})
	}

	var order []domain.Section
	if len(r.PageOrder) > 0 {
		parsed, err := domain.ParseSections(r.PageOrder)
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			errs = append(errs, ve.Errors...)
		case err != nil:
			errs = append(errs, domain.FieldError{Field: "pageOrder", Message: err.Error()})
		}
		order = parsed
	}

	if len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}
	return order, nil
}

// Result describes a generated booklet.
type Result struct {
	BookletURL        string
	PageCount         int
	StudentCount      int
	ProcessedStudents int
	SkippedStudents   []string
	SizeBytes         int64
}
