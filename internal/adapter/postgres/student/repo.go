// Package student implements the student roster repository using PostgreSQL.
package student

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const entity = "student"

const columns = `id, graduation_id, name, access_type, password_hash, link_id,
    profile_photo_url, cover_photo_url, pdf_url, speech, sort_order, created_at, updated_at`

// Repo provides student persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new student repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID              string    `db:"id"`
	GraduationID    string    `db:"graduation_id"`
	Name            string    `db:"name"`
	AccessType      string    `db:"access_type"`
	PasswordHash    *string   `db:"password_hash"`
	LinkID          *string   `db:"link_id"`
	ProfilePhotoURL *string   `db:"profile_photo_url"`
	CoverPhotoURL   *string   `db:"cover_photo_url"`
	PDFURL          *string   `db:"pdf_url"`
	Speech          *string   `db:"speech"`
	SortOrder       *int      `db:"sort_order"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.Student {
	return &domain.Student{
		ID:              r.ID,
		GraduationID:    r.GraduationID,
		Name:            r.Name,
		AccessType:      domain.AccessType(r.AccessType),
		PasswordHash:    r.PasswordHash,
		LinkID:          r.LinkID,
		ProfilePhotoURL: r.ProfilePhotoURL,
		CoverPhotoURL:   r.CoverPhotoURL,
		PDFURL:          r.PDFURL,
		Speech:          r.Speech,
		Order:           r.SortOrder,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toDomainList(rows []row) []*domain.Student {
	out := make([]*domain.Student, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

// Create inserts a student. A nil Order appends the student after the current
// last position of the roster.
func (r *Repo) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	var order any = s.Order
	if s.Order == nil {
		order = sq.Expr(`(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM students WHERE graduation_id = ?)`, s.GraduationID)
	}

	query, args, err := postgres.Builder.
		Insert("students").
		Columns("id", "graduation_id", "name", "access_type", "password_hash",
			"link_id", "profile_photo_url", "cover_photo_url", "pdf_url", "speech", "sort_order").
		Values(s.ID, s.GraduationID, s.Name, string(s.AccessType), s.PasswordHash,
			s.LinkID, s.ProfilePhotoURL, s.CoverPhotoURL, s.PDFURL, s.Speech, order).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert student: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, s.ID)
	}
	return out.toDomain(), nil
}

// GetByID returns a student of the given graduation.
func (r *Repo) GetByID(ctx context.Context, graduationID, id string) (*domain.Student, error) {
	query, args, err := postgres.Builder.
		Select(columns).
		From("students").
		Where(sq.Eq{"id": id, "graduation_id": graduationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select student: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return out.toDomain(), nil
}

// GetByLinkID returns the student owning a share link.
func (r *Repo) GetByLinkID(ctx context.Context, linkID string) (*domain.Student, error) {
	query, args, err := postgres.Builder.
		Select(columns).
		From("students").
		Where(sq.Eq{"link_id": linkID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select student by link: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, "link:"+linkID)
	}
	return out.toDomain(), nil
}

// ListByGraduation returns the roster: explicit order first, then students
// without an order by creation time.
func (r *Repo) ListByGraduation(ctx context.Context, graduationID string) ([]*domain.Student, error) {
	query, args, err := postgres.Builder.
		Select(columns).
		From("students").
		Where(sq.Eq{"graduation_id": graduationID}).
		OrderBy("sort_order ASC NULLS LAST", "created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list students: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list students of %s: %w", graduationID, err)
	}
	return toDomainList(rows), nil
}

// Update applies the non-nil fields of params.
func (r *Repo) Update(ctx context.Context, graduationID, id string, params domain.StudentUpdateParams) (*domain.Student, error) {
	b := postgres.Builder.
		Update("students").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "graduation_id": graduationID}).
		Suffix("RETURNING " + columns)

	set := func(col string, v *string) {
		switch {
		case v == nil:
		case *v == "":
			b = b.Set(col, nil)
		default:
			b = b.Set(col, *v)
		}
	}
	set("name", params.Name)
	set("password_hash", params.PasswordHash)
	set("link_id", params.LinkID)
	set("profile_photo_url", params.ProfilePhotoURL)
	set("cover_photo_url", params.CoverPhotoURL)
	set("pdf_url", params.PDFURL)
	set("speech", params.Speech)
	if params.AccessType != nil {
		b = b.Set("access_type", string(*params.AccessType))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update student: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return out.toDomain(), nil
}

// Delete removes a student and returns the deleted row so callers can
// release its assets.
func (r *Repo) Delete(ctx context.Context, graduationID, id string) (*domain.Student, error) {
	var out row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out,
		`DELETE FROM students WHERE id = $1 AND graduation_id = $2 RETURNING `+columns,
		id, graduationID,
	)
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return out.toDomain(), nil
}

// SetOrder assigns dense positions 0..n-1 following ids. Must run inside a
// transaction so the roster never shows a half-applied order.
func (r *Repo) SetOrder(ctx context.Context, graduationID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, id := range ids {
		batch.Queue(
			`UPDATE students SET sort_order = $3, updated_at = now() WHERE id = $1 AND graduation_id = $2`,
			id, graduationID, i,
		)
	}

	br := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer br.Close()

	for _, id := range ids {
		tag, err := br.Exec()
		if err != nil {
			return postgres.MapError(err, entity, id)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		}
	}
	return nil
}

// BackfillOrder gives every student without an order a position after the
// ordered ones, following creation time. Returns the number of rows updated.
func (r *Repo) BackfillOrder(ctx context.Context) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, `
WITH base AS (
    SELECT graduation_id, COALESCE(MAX(sort_order) + 1, 0) AS next
    FROM students
    GROUP BY graduation_id
),
ranked AS (
    SELECT s.id, b.next + ROW_NUMBER() OVER (PARTITION BY s.graduation_id ORDER BY s.created_at, s.id) - 1 AS pos
    FROM students s
    JOIN base b ON b.graduation_id = s.graduation_id
    WHERE s.sort_order IS NULL
)
UPDATE students s
SET sort_order = ranked.pos
FROM ranked
WHERE s.id = ranked.id`)
	if err != nil {
		return 0, fmt.Errorf("backfill student order: %w", err)
	}
	return tag.RowsAffected(), nil
}
