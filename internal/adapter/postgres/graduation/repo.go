// Package graduation implements the graduation document store on PostgreSQL.
// Presence heartbeats and field locks live in JSONB columns on the same row and
// are written without touching updated_at, so they never register as content edits.
package graduation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const entity = "graduation"

const columns = `id, school_name, year, editors, created_by, config,
    booklet_url, booklet_generated_at, booklet_stats,
    active_editors, locked_fields, created_at, updated_at`

// Repo provides graduation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new graduation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID                 string                      `db:"id"`
	SchoolName         string                      `db:"school_name"`
	Year               int                         `db:"year"`
	Editors            []string                    `db:"editors"`
	CreatedBy          string                      `db:"created_by"`
	Config             domain.GraduationConfig     `db:"config"`
	BookletURL         *string                     `db:"booklet_url"`
	BookletGeneratedAt *time.Time                  `db:"booklet_generated_at"`
	BookletStats       *domain.BookletStats        `db:"booklet_stats"`
	ActiveEditors      map[string]time.Time        `db:"active_editors"`
	LockedFields       map[string]domain.FieldLock `db:"locked_fields"`
	CreatedAt          time.Time                   `db:"created_at"`
	UpdatedAt          time.Time                   `db:"updated_at"`
}

func (r row) toDomain() *domain.Graduation {
	g := &domain.Graduation{
		ID:                 r.ID,
		SchoolName:         r.SchoolName,
		Year:               r.Year,
		Editors:            r.Editors,
		CreatedBy:          r.CreatedBy,
		Config:             r.Config,
		BookletURL:         r.BookletURL,
		BookletGeneratedAt: r.BookletGeneratedAt,
		BookletStats:       r.BookletStats,
		ActiveEditors:      r.ActiveEditors,
		LockedFields:       r.LockedFields,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if g.Editors == nil {
		g.Editors = []string{}
	}
	if g.ActiveEditors == nil {
		g.ActiveEditors = map[string]time.Time{}
	}
	if g.LockedFields == nil {
		g.LockedFields = map[string]domain.FieldLock{}
	}
	return g
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

// Create inserts a new graduation. Returns domain.ErrAlreadyExists when the id is taken.
func (r *Repo) Create(ctx context.Context, g *domain.Graduation) (*domain.Graduation, error) {
	query, args, err := postgres.Builder.
		Insert("graduations").
		Columns("id", "school_name", "year", "editors", "created_by", "config").
		Values(g.ID, g.SchoolName, g.Year, g.Editors, g.CreatedBy, g.Config).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert graduation: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, g.ID)
	}
	return out.toDomain(), nil
}

// GetByID returns a graduation by id.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Graduation, error) {
	query, args, err := postgres.Builder.
		Select(columns).
		From("graduations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select graduation: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return out.toDomain(), nil
}

// ListByEditor returns graduations the editor may edit, newest class first.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByEditor(ctx context.Context, editorID string) ([]*domain.Graduation, error) {
	query, args, err := postgres.Builder.
		Select(columns).
		From("graduations").
		Where(sq.Expr("? = ANY(editors)", editorID)).
		OrderBy("year DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list graduations: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list graduations by editor %s: %w", editorID, err)
	}

	out := make([]*domain.Graduation, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.toDomain())
	}
	return out, nil
}

// UpdateDetails applies the non-nil fields of params and bumps updated_at.
func (r *Repo) UpdateDetails(ctx context.Context, id string, params domain.GraduationUpdateParams) (*domain.Graduation, error) {
	b := postgres.Builder.
		Update("graduations").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columns)

	if params.SchoolName != nil {
		b = b.Set("school_name", *params.SchoolName)
	}
	if params.Year != nil {
		b = b.Set("year", *params.Year)
	}
	if params.Config != nil {
		b = b.Set("config", *params.Config)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update graduation: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return out.toDomain(), nil
}

// GetUpdatedAt returns the last content write time.
func (r *Repo) GetUpdatedAt(ctx context.Context, id string) (time.Time, error) {
	var at time.Time
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT updated_at FROM graduations WHERE id = $1`, id).
		Scan(&at)
	if err != nil {
		return time.Time{}, postgres.MapError(err, entity, id)
	}
	return at, nil
}

// SaveBookletResult records the latest generated booklet. updated_at is left alone.
func (r *Repo) SaveBookletResult(ctx context.Context, id, url string, at time.Time, stats domain.BookletStats) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE graduations
		 SET booklet_url = $2, booklet_generated_at = $3, booklet_stats = $4
		 WHERE id = $1`,
		id, url, at, stats,
	)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a graduation together with its students and content pages.
func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM graduations WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Editors
// ---------------------------------------------------------------------------

// AddEditor appends editorID to the editor list. Adding an existing editor is a no-op.
func (r *Repo) AddEditor(ctx context.Context, id, editorID string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE graduations
		 SET editors = array_append(editors, $2), updated_at = now()
		 WHERE id = $1 AND NOT ($2 = ANY(editors))`,
		id, editorID,
	)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		_, err := r.editors(ctx, id)
		return err
	}
	return nil
}

// RemoveEditor removes editorID from the editor list.
// Returns domain.ErrLastEditor when editorID is the only editor left and
// domain.ErrNotFound when editorID is not an editor.
func (r *Repo) RemoveEditor(ctx context.Context, id, editorID string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE graduations
		 SET editors = array_remove(editors, $2), updated_at = now()
		 WHERE id = $1 AND $2 = ANY(editors) AND cardinality(editors) > 1`,
		id, editorID,
	)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	editors, err := r.editors(ctx, id)
	if err != nil {
		return err
	}
	for _, e := range editors {
		if e == editorID {
			return domain.ErrLastEditor
		}
	}
	return fmt.Errorf("editor %s on %s %s: %w", editorID, entity, id, domain.ErrNotFound)
}

func (r *Repo) editors(ctx context.Context, id string) ([]string, error) {
	var editors []string
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT editors FROM graduations WHERE id = $1`, id).
		Scan(&editors)
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return editors, nil
}

// ---------------------------------------------------------------------------
// Presence
// ---------------------------------------------------------------------------

// SetHeartbeat records that editorID was active at the given time.
func (r *Repo) SetHeartbeat(ctx context.Context, id, editorID string, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE graduations
		 SET active_editors = active_editors || jsonb_build_object($2::text, $3::text)
		 WHERE id = $1`,
		id, editorID, at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// RemoveHeartbeat drops editorID from the active editors map.
func (r *Repo) RemoveHeartbeat(ctx context.Context, id, editorID string) error {
	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE graduations SET active_editors = active_editors - $2::text WHERE id = $1`,
		id, editorID,
	)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}

// GetActiveEditors returns the raw heartbeat map, stale entries included.
func (r *Repo) GetActiveEditors(ctx context.Context, id string) (map[string]time.Time, error) {
	active := map[string]time.Time{}
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT active_editors FROM graduations WHERE id = $1`, id).
		Scan(&active)
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return active, nil
}

// ---------------------------------------------------------------------------
// Field locks
// ---------------------------------------------------------------------------

// acquireLockSQL takes the lock when the path is free, already held by the same
// editor, or held by a lock older than $5.
const acquireLockSQL = `
UPDATE graduations
SET locked_fields = locked_fields || jsonb_build_object($2::text, $3::jsonb)
WHERE id = $1
  AND (
        locked_fields -> $2::text IS NULL
     OR locked_fields -> $2::text ->> 'editorId' = $4
     OR (locked_fields -> $2::text ->> 'lockedAt')::timestamptz < $5
  )`

const maxAcquireAttempts = 3

// GetLocks returns the raw lock map, stale entries included.
func (r *Repo) GetLocks(ctx context.Context, id string) (map[string]domain.FieldLock, error) {
	locks := map[string]domain.FieldLock{}
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT locked_fields FROM graduations WHERE id = $1`, id).
		Scan(&locks)
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return locks, nil
}

// AcquireLock tries to take the lock on path in a single conditional write.
// It returns the lock now stored for path: lock itself when acquired, the
// current holder otherwise.
func (r *Repo) AcquireLock(ctx context.Context, id, path string, lock domain.FieldLock, staleBefore time.Time) (domain.FieldLock, bool, error) {
	payload, err := json.Marshal(lock)
	if err != nil {
		return domain.FieldLock{}, false, fmt.Errorf("marshal lock: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	for range maxAcquireAttempts {
		tag, err := q.Exec(ctx, acquireLockSQL, id, path, string(payload), lock.EditorID, staleBefore)
		if err != nil {
			return domain.FieldLock{}, false, postgres.MapError(err, entity, id)
		}
		if tag.RowsAffected() == 1 {
			return lock, true, nil
		}

		holder, found, err := r.lockHolder(ctx, id, path)
		if err != nil {
			return domain.FieldLock{}, false, err
		}
		if found {
			return holder, false, nil
		}
		// Released between the write and the read; try again.
	}

	return domain.FieldLock{}, false, fmt.Errorf("lock %s on %s %s: %w", path, entity, id, domain.ErrConflict)
}

func (r *Repo) lockHolder(ctx context.Context, id, path string) (domain.FieldLock, bool, error) {
	var holder *domain.FieldLock
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT locked_fields -> $2::text FROM graduations WHERE id = $1`, id, path).
		Scan(&holder)
	if err != nil {
		return domain.FieldLock{}, false, postgres.MapError(err, entity, id)
	}
	if holder == nil {
		return domain.FieldLock{}, false, nil
	}
	return *holder, true, nil
}

// ReleaseLock removes the lock on path only if editorID holds it.
func (r *Repo) ReleaseLock(ctx context.Context, id, path, editorID string) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE graduations
		 SET locked_fields = locked_fields - $2::text
		 WHERE id = $1 AND locked_fields -> $2::text ->> 'editorId' = $3`,
		id, path, editorID,
	)
	if err != nil {
		return false, postgres.MapError(err, entity, id)
	}
	return tag.RowsAffected() == 1, nil
}

// ForceReleaseLock removes the lock on path regardless of its holder.
func (r *Repo) ForceReleaseLock(ctx context.Context, id, path string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE graduations SET locked_fields = locked_fields - $2::text WHERE id = $1`,
		id, path,
	)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// freshLocksExpr and freshEditorsExpr rebuild the JSONB maps without entries older than $1.
const (
	freshLocksExpr = `COALESCE((
        SELECT jsonb_object_agg(l.key, l.value)
        FROM jsonb_each(locked_fields) AS l
        WHERE (l.value ->> 'lockedAt')::timestamptz >= $1
    ), '{}'::jsonb)`

	freshEditorsExpr = `COALESCE((
        SELECT jsonb_object_agg(e.key, e.value)
        FROM jsonb_each_text(active_editors) AS e
        WHERE e.value::timestamptz >= $1
    ), '{}'::jsonb)`
)

// PruneLocks removes locks older than staleBefore from one graduation and
// returns how many were removed.
func (r *Repo) PruneLocks(ctx context.Context, id string, staleBefore time.Time) (int, error) {
	var before, after int
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`WITH old AS (
            SELECT id, (SELECT count(*) FROM jsonb_object_keys(locked_fields)) AS n
            FROM graduations WHERE id = $2 FOR UPDATE
        )
        UPDATE graduations g
        SET locked_fields = `+freshLocksExpr+`
        FROM old
        WHERE g.id = old.id
        RETURNING old.n, (SELECT count(*) FROM jsonb_object_keys(g.locked_fields))`,
		staleBefore, id,
	).Scan(&before, &after)
	if err != nil {
		return 0, postgres.MapError(err, entity, id)
	}
	return before - after, nil
}

// PruneAllStale strips stale locks and stale heartbeats from every graduation
// and returns the number of graduations touched.
func (r *Repo) PruneAllStale(ctx context.Context, staleBefore time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE graduations
        SET locked_fields = `+freshLocksExpr+`,
            active_editors = `+freshEditorsExpr+`
        WHERE EXISTS (
                SELECT 1 FROM jsonb_each(locked_fields) AS l
                WHERE (l.value ->> 'lockedAt')::timestamptz < $1)
           OR EXISTS (
                SELECT 1 FROM jsonb_each_text(active_editors) AS e
                WHERE e.value::timestamptz < $1)`,
		staleBefore,
	)
	if err != nil {
		return 0, fmt.Errorf("prune stale locks: %w", err)
	}
	return tag.RowsAffected(), nil
}
