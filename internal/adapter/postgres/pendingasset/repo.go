// Package pendingasset stores the deferred-deletion queue for uploaded assets.
package pendingasset

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const entity = "pending_deletion"

const columns = `id, url, storage_key, context, marked_at, status, attempts, processed_at, last_error`

// Repo provides pending deletion persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new pending deletion repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          int64      `db:"id"`
	URL         string     `db:"url"`
	StorageKey  string     `db:"storage_key"`
	Context     string     `db:"context"`
	MarkedAt    time.Time  `db:"marked_at"`
	Status      string     `db:"status"`
	Attempts    int        `db:"attempts"`
	ProcessedAt *time.Time `db:"processed_at"`
	LastError   *string    `db:"last_error"`
}

func (r row) toDomain() domain.PendingDeletion {
	return domain.PendingDeletion{
		ID:          r.ID,
		URL:         r.URL,
		StorageKey:  r.StorageKey,
		Context:     r.Context,
		MarkedAt:    r.MarkedAt,
		Status:      domain.DeletionStatus(r.Status),
		Attempts:    r.Attempts,
		ProcessedAt: r.ProcessedAt,
		LastError:   r.LastError,
	}
}

// Mark appends pending deletions in one statement. Returns how many were queued.
func (r *Repo) Mark(ctx context.Context, items []domain.PendingDeletion) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	b := postgres.Builder.Insert("pending_deletions").Columns("url", "storage_key", "context")
	for _, it := range items {
		b = b.Values(it.URL, it.StorageKey, it.Context)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert pending deletions: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark pending deletions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListPending returns up to limit pending rows, oldest first.
func (r *Repo) ListPending(ctx context.Context, limit int) ([]domain.PendingDeletion, error) {
	query, args, err := postgres.Builder.
		Select(columns).
		From("pending_deletions").
		Where(sq.Eq{"status": string(domain.DeletionPending)}).
		OrderBy("marked_at ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list pending deletions: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending deletions: %w", err)
	}

	out := make([]domain.PendingDeletion, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.toDomain())
	}
	return out, nil
}

// MarkDeleted records a successful deletion.
func (r *Repo) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE pending_deletions
		 SET status = 'deleted', processed_at = $2, attempts = attempts + 1, last_error = NULL
		 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return postgres.MapError(err, entity, strconv.FormatInt(id, 10))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// MarkFailed records a failed attempt. The row stays pending until
// maxAttempts is reached, after which it is marked failed for good.
func (r *Repo) MarkFailed(ctx context.Context, id int64, at time.Time, reason string, maxAttempts int) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE pending_deletions
		 SET attempts = attempts + 1,
		     last_error = $3,
		     processed_at = $2,
		     status = CASE WHEN attempts + 1 >= $4 THEN 'failed' ELSE 'pending' END
		 WHERE id = $1`,
		id, at, reason, maxAttempts,
	)
	if err != nil {
		return postgres.MapError(err, entity, strconv.FormatInt(id, 10))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
