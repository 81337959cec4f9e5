package domain

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidIdentifier reports whether id is safe to use as a document identifier.
// Graduation, student and content page ids all share the same alphabet.
func ValidIdentifier(id string) bool {
	return identifierPattern.MatchString(id)
}

// Graduation is the root aggregate: one school's class output.
type Graduation struct {
	ID         string
	SchoolName string
	Year       int
	Editors    []string
	CreatedBy  string
	Config     GraduationConfig

	BookletURL         *string
	BookletGeneratedAt *time.Time
	BookletStats       *BookletStats

	// Transient collaboration state. Writes to these maps never advance UpdatedAt.
	ActiveEditors map[string]time.Time
	LockedFields  map[string]FieldLock

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GraduationConfig is the free-form site configuration edited by teachers.
type GraduationConfig struct {
	PrimaryColor       string         `json:"primaryColor,omitempty"`
	SecondaryColor     string         `json:"secondaryColor,omitempty"`
	Font               string         `json:"font,omitempty"`
	PageOrder          []Section      `json:"pageOrder,omitempty"`
	BookletAvailableAt *time.Time     `json:"bookletAvailableAt,omitempty"`
	SitePasswordHash   string         `json:"sitePasswordHash,omitempty"`
	Extra              map[string]any `json:"extra,omitempty"`
}

// BookletStats is the summary persisted after a successful booklet generation.
type BookletStats struct {
	PageCount         int   `json:"pageCount"`
	StudentsProcessed int   `json:"studentsProcessed"`
	StudentsTotal     int   `json:"studentsTotal"`
	SizeBytes         int64 `json:"sizeBytes"`
}

// IsEditor reports whether editorID may modify the graduation.
func (g *Graduation) IsEditor(editorID string) bool {
	return slices.Contains(g.Editors, editorID)
}

// BookletLockedUntil returns the availability time if the booklet is still gated at now.
func (g *Graduation) BookletLockedUntil(now time.Time) (time.Time, bool) {
	at := g.Config.BookletAvailableAt
	if at == nil || !at.After(now) {
		return time.Time{}, false
	}
	return *at, true
}

// GraduationUpdateParams holds optional fields for a content update.
// A nil field means "don't change".
type GraduationUpdateParams struct {
	SchoolName *string
	Year       *int
	Config     *GraduationConfig
}

// Section is one block of the booklet in page order.
type Section string

const (
	SectionStudents Section = "students"
	SectionMessages Section = "messages"
	SectionSpeeches Section = "speeches"
)

func (s Section) String() string { return string(s) }

func (s Section) IsValid() bool {
	switch s {
	case SectionStudents, SectionMessages, SectionSpeeches:
		return true
	}
	return false
}

// DefaultPageOrder is used when neither the request nor the graduation config sets one.
func DefaultPageOrder() []Section {
	return []Section{SectionStudents, SectionMessages, SectionSpeeches}
}

// ParseSections converts raw names into sections, rejecting unknown or duplicate entries.
func ParseSections(raw []string) ([]Section, error) {
	out := make([]Section, 0, len(raw))
	seen := make(map[Section]bool, len(raw))
	for _, r := range raw {
		s := Section(strings.ToLower(strings.TrimSpace(r)))
		if !s.IsValid() {
			return nil, NewValidationError("pageOrder", "unknown section "+r)
		}
		if seen[s] {
			return nil, NewValidationError("pageOrder", "duplicate section "+r)
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}
