package domain

import "time"

// AccessType controls how visitors reach a student's page.
type AccessType string

const (
	AccessPublic   AccessType = "public"
	AccessPassword AccessType = "password"
	AccessLink     AccessType = "link"
)

func (a AccessType) String() string { return string(a) }

func (a AccessType) IsValid() bool {
	switch a {
	case AccessPublic, AccessPassword, AccessLink:
		return true
	}
	return false
}

// Student belongs to exactly one graduation.
type Student struct {
	ID              string
	GraduationID    string
	Name            string
	AccessType      AccessType
	PasswordHash    *string
	LinkID          *string
	ProfilePhotoURL *string
	CoverPhotoURL   *string
	PDFURL          *string
	Speech          *string
	Order           *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPDF reports whether the student uploaded a booklet page.
func (s *Student) HasPDF() bool {
	return s.PDFURL != nil && *s.PDFURL != ""
}

// AssetURLs lists every uploaded asset the student references.
func (s *Student) AssetURLs() []string {
	var urls []string
	for _, u := range []*string{s.ProfilePhotoURL, s.CoverPhotoURL, s.PDFURL} {
		if u != nil && *u != "" {
			urls = append(urls, *u)
		}
	}
	return urls
}

// StudentUpdateParams holds optional fields for a student update.
// For pointer-to-string fields, ptr("") clears the value.
type StudentUpdateParams struct {
	Name            *string
	AccessType      *AccessType
	PasswordHash    *string
	LinkID          *string
	ProfilePhotoURL *string
	CoverPhotoURL   *string
	PDFURL          *string
	Speech          *string
}
