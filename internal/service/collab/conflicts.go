package collab

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// WriteFunc performs a content write and returns the stored updated_at.
type WriteFunc func(ctx context.Context) (time.Time, error)

// ConflictFunc is asked whether to overwrite a newer save by someone else.
// true proceeds with the write, false aborts it.
type ConflictFunc func(ctx context.Context) bool

// SaveResult is the outcome of SafeUpdate. A detected conflict is a normal
// outcome, not an error: callers check the flags.
type SaveResult struct {
	Success   bool
	Aborted   bool
	Conflict  bool
	UpdatedAt time.Time
	Err       error
}

// RecordSave remembers at as editorID's last known save of graduationID.
// Older timestamps never replace newer ones.
func (c *Coordinator) RecordSave(graduationID, editorID string, at time.Time) {
	key := saveKey{graduationID: graduationID, editorID: editorID}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.lastSaves[key]; ok && !at.After(prev) {
		return
	}
	c.lastSaves[key] = at
}

// LastSave returns the remembered save time, if any.
func (c *Coordinator) LastSave(graduationID, editorID string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	at, ok := c.lastSaves[saveKey{graduationID: graduationID, editorID: editorID}]
	return at, ok
}

// Forget drops every remembered save for graduationID.
func (c *Coordinator) Forget(graduationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.lastSaves {
		if k.graduationID == graduationID {
			delete(c.lastSaves, k)
		}
	}
}

// CheckForConflicts reports whether someone wrote the graduation after
// editorID's last remembered save. With no remembered save it is always false.
func (c *Coordinator) CheckForConflicts(ctx context.Context, graduationID, editorID string) (bool, error) {
	if err := validateGraduationID(graduationID); err != nil {
		return false, err
	}

	last, ok := c.LastSave(graduationID, editorID)
	if !ok {
		return false, nil
	}

	updatedAt, err := c.store.GetUpdatedAt(ctx, graduationID)
	if err != nil {
		return false, fmt.Errorf("get updated_at: %w", err)
	}
	return updatedAt.After(last), nil
}

// SafeUpdate runs check, ask, write, record. Nothing is propagated as an
// error: a failed check or write lands in SaveResult.Err.
func (c *Coordinator) SafeUpdate(
	ctx context.Context,
	graduationID, editorID string,
	write WriteFunc,
	onConflict ConflictFunc,
) SaveResult {
	var res SaveResult

	conflict, err := c.CheckForConflicts(ctx, graduationID, editorID)
	if err != nil {
		res.Err = err
		return res
	}

	if conflict {
		res.Conflict = true
		if onConflict == nil || !onConflict(ctx) {
			res.Aborted = true
			return res
		}
	}

	at, err := write(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "safe update write failed",
			slog.String("graduation_id", graduationID),
			slog.String("editor_id", editorID),
			slog.String("error", err.Error()),
		)
		res.Err = err
		return res
	}

	c.RecordSave(graduationID, editorID, at)
	c.publish(ctx, graduationID, domain.ChangeContent)

	res.Success = true
	res.UpdatedAt = at
	return res
}
