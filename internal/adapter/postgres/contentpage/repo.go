// Package contentpage implements the content page repository using PostgreSQL.
package contentpage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const entity = "content_page"

const columns = `id, graduation_id, title, author, author_photo_url, type, body, images,
    video_url, size, created_at, updated_at`

// Repo provides content page persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new content page repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID             string    `db:"id"`
	GraduationID   string    `db:"graduation_id"`
	Title          string    `db:"title"`
	Author         *string   `db:"author"`
	AuthorPhotoURL *string   `db:"author_photo_url"`
	Type           string    `db:"type"`
	Body           string    `db:"body"`
	Images         []string  `db:"images"`
	VideoURL       *string   `db:"video_url"`
	Size           string    `db:"size"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.ContentPage {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return &domain.ContentPage{
		ID:             r.ID,
		GraduationID:   r.GraduationID,
		Title:          r.Title,
		Author:         r.Author,
		AuthorPhotoURL: r.AuthorPhotoURL,
		Type:           domain.PageType(r.Type),
		Body:           r.Body,
		Images:         images,
		VideoURL:       r.VideoURL,
		Size:           domain.PageSize(r.Size),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Create inserts a content page.
func (r *Repo) Create(ctx context.Context, p *domain.ContentPage) (*domain.ContentPage, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	query, args, err := postgres.Builder.
		Insert("content_pages").
		Columns("id", "graduation_id", "title", "author", "author_photo_url", "type", "body",
			"images", "video_url", "size").
		Values(p.ID, p.GraduationID, p.Title, p.Author, p.AuthorPhotoURL, string(p.Type), p.Body,
			images, p.VideoURL, string(p.Size)).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert content page: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, p.ID)
	}
	return out.toDomain(), nil
}

// GetByID returns a content page of the given graduation.
func (r *Repo) GetByID(ctx context.Context, graduationID, id string) (*domain.ContentPage, error) {
	query, args, err := postgres.Builder.
		Select(columns).
		From("content_pages").
		Where(sq.Eq{"id": id, "graduation_id": graduationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select content page: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return out.toDomain(), nil
}

// ListByGraduation returns pages in creation order.
func (r *Repo) ListByGraduation(ctx context.Context, graduationID string) ([]*domain.ContentPage, error) {
	query, args, err := postgres.Builder.
		Select(columns).
		From("content_pages").
		Where(sq.Eq{"graduation_id": graduationID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list content pages: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list content pages of %s: %w", graduationID, err)
	}

	out := make([]*domain.ContentPage, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.toDomain())
	}
	return out, nil
}

// Update applies the non-nil fields of params.
func (r *Repo) Update(ctx context.Context, graduationID, id string, params domain.ContentPageUpdateParams) (*domain.ContentPage, error) {
	b := postgres.Builder.
		Update("content_pages").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "graduation_id": graduationID}).
		Suffix("RETURNING " + columns)

	if params.Title != nil {
		b = b.Set("title", *params.Title)
	}
	if params.Author != nil {
		b = b.Set("author", *params.Author)
	}
	if params.AuthorPhotoURL != nil {
		b = b.Set("author_photo_url", *params.AuthorPhotoURL)
	}
	if params.Type != nil {
		b = b.Set("type", string(*params.Type))
	}
	if params.Body != nil {
		b = b.Set("body", *params.Body)
	}
	if params.Images != nil {
		b = b.Set("images", *params.Images)
	}
	if params.VideoURL != nil {
		b = b.Set("video_url", *params.VideoURL)
	}
	if params.Size != nil {
		b = b.Set("size", string(*params.Size))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update content page: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return out.toDomain(), nil
}

// Delete removes a page and returns it so callers can release its assets.
func (r *Repo) Delete(ctx context.Context, graduationID, id string) (*domain.ContentPage, error) {
	var out row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out,
		`DELETE FROM content_pages WHERE id = $1 AND graduation_id = $2 RETURNING `+columns,
		id, graduationID,
	)
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return out.toDomain(), nil
}
