package graduation

import (
	"strings"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const (
	maxSchoolNameLen = 200
	minYear          = 1900
	maxYear          = 2200
	minPasswordLen   = 4
	maxPasswordLen   = 72 // bcrypt limit
)

// ---------------------------------------------------------------------------
// CreateInput
// ---------------------------------------------------------------------------

// CreateInput holds the data for a new graduation. An empty ID is generated.
type CreateInput struct {
	ID         string
	SchoolName string
	Year       int
	Config     *domain.GraduationConfig
}

func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID != "" && !domain.ValidIdentifier(i.ID) {
		errs = append(errs, domain.FieldError{Field: "id", Message: "invalid identifier"})
	}
	errs = append(errs, validateSchoolName(i.SchoolName)...)
	errs = append(errs, validateYear(i.Year)...)
	if i.Config != nil {
		errs = append(errs, validateConfig(*i.Config)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ---------------------------------------------------------------------------
// UpdateInput
// ---------------------------------------------------------------------------

// UpdateInput holds a partial update. Force overwrites a newer save by
// another editor instead of failing with domain.ErrConflict.
type UpdateInput struct {
	ID         string
	SchoolName *string
	Year       *int
	Config     *domain.GraduationConfig
	Force      bool
}

func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if !domain.ValidIdentifier(i.ID) {
		errs = append(errs, domain.FieldError{Field: "id", Message: "invalid identifier"})
	}
	if i.SchoolName == nil && i.Year == nil && i.Config == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.SchoolName != nil {
		errs = append(errs, validateSchoolName(*i.SchoolName)...)
	}
	if i.Year != nil {
		errs = append(errs, validateYear(*i.Year)...)
	}
	if i.Config != nil {
		errs = append(errs, validateConfig(*i.Config)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validateSchoolName(name string) []domain.FieldError {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return []domain.FieldError{{Field: "school_name", Message: "required"}}
	case len(name) > maxSchoolNameLen:
		return []domain.FieldError{{Field: "school_name", Message: "too long"}}
	}
	return nil
}

func validateYear(year int) []domain.FieldError {
	if year < minYear || year > maxYear {
		return []domain.FieldError{{Field: "year", Message: "out of range"}}
	}
	return nil
}

func validateConfig(cfg domain.GraduationConfig) []domain.FieldError {
	var errs []domain.FieldError
	seen := make(map[domain.Section]bool, len(cfg.PageOrder))
	for _, s := range cfg.PageOrder {
		if !s.IsValid() {
			errs = append(errs, domain.FieldError{Field: "config.pageOrder", Message: "unknown section " + s.String()})
			continue
		}
		if seen[s] {
			errs = append(errs, domain.FieldError{Field: "config.pageOrder", Message: "duplicate section " + s.String()})
		}
		seen[s] = true
	}
	return errs
}

func validatePassword(password string) error {
	switch {
	case len(password) < minPasswordLen:
		return domain.NewValidationError("password", "too short")
	case len(password) > maxPasswordLen:
		return domain.NewValidationError("password", "too long")
	}
	return nil
}

// BookletDownload is the gated view of a graduation's booklet.
// When Locked is true, URL is empty and the countdown fields are set.
type BookletDownload struct {
	URL         string
	Locked      bool
	AvailableAt time.Time
	Remaining   time.Duration
}
