package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedGraduation inserts a graduation edited by editorID.
func SeedGraduation(t *testing.T, pool *pgxpool.Pool, editorID string) domain.Graduation {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	g := domain.Graduation{
		ID:         "grad-" + uniqueSuffix(),
		SchoolName: "Test School",
		Year:       2025,
		Editors:    []string{editorID},
		CreatedBy:  editorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO graduations (id, school_name, year, editors, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.SchoolName, g.Year, g.Editors, g.CreatedBy, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed graduation: %v", err)
	}

	return g
}

// SeedStudent inserts a public student with an optional PDF URL and order.
func SeedStudent(t *testing.T, pool *pgxpool.Pool, graduationID, name string, pdfURL *string, order *int) domain.Student {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	s := domain.Student{
		ID:           uuid.NewString(),
		GraduationID: graduationID,
		Name:         name,
		AccessType:   domain.AccessPublic,
		PDFURL:       pdfURL,
		Order:        order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO students (id, graduation_id, name, access_type, pdf_url, sort_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.GraduationID, s.Name, string(s.AccessType), s.PDFURL, s.Order, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed student: %v", err)
	}

	return s
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
