package collab

import (
	"context"
	"fmt"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

// LockResult is the outcome of LockField. When Acquired is false, Holder is
// the editor currently holding the field.
type LockResult struct {
	Acquired bool
	Path     string
	Holder   domain.FieldLock
}

func fieldPath(raw string) (string, error) {
	path := domain.SanitizeFieldPath(raw)
	if path == "" {
		return "", domain.NewValidationError("field_path", "required")
	}
	return path, nil
}

// LockField claims fieldPath for editor. A lock older than the staleness
// window counts as free; a lock already held by editor is refreshed.
func (c *Coordinator) LockField(ctx context.Context, graduationID, rawPath string, editor ctxutil.Editor) (LockResult, error) {
	if err := validateGraduationID(graduationID); err != nil {
		return LockResult{}, err
	}
	if err := validateEditorID(editor.ID); err != nil {
		return LockResult{}, err
	}
	path, err := fieldPath(rawPath)
	if err != nil {
		return LockResult{}, err
	}

	now := c.clock.Now()
	lock := domain.FieldLock{EditorID: editor.ID, Email: editor.Email, LockedAt: now}

	stored, acquired, err := c.store.AcquireLock(ctx, graduationID, path, lock, now.Add(-c.staleness))
	if err != nil {
		return LockResult{}, fmt.Errorf("acquire lock: %w", err)
	}

	if acquired {
		c.publish(ctx, graduationID, domain.ChangeLocks)
	}
	return LockResult{Acquired: acquired, Path: path, Holder: stored}, nil
}

// UnlockField releases fieldPath if editorID holds it. It reports whether a
// lock was removed.
func (c *Coordinator) UnlockField(ctx context.Context, graduationID, rawPath, editorID string) (bool, error) {
	if err := validateGraduationID(graduationID); err != nil {
		return false, err
	}
	path, err := fieldPath(rawPath)
	if err != nil {
		return false, err
	}

	released, err := c.store.ReleaseLock(ctx, graduationID, path, editorID)
	if err != nil {
		return false, fmt.Errorf("release lock: %w", err)
	}
	if released {
		c.publish(ctx, graduationID, domain.ChangeLocks)
	}
	return released, nil
}

// ForceUnlockField removes the lock on fieldPath whoever holds it.
func (c *Coordinator) ForceUnlockField(ctx context.Context, graduationID, rawPath string) error {
	if err := validateGraduationID(graduationID); err != nil {
		return err
	}
	path, err := fieldPath(rawPath)
	if err != nil {
		return err
	}

	if err := c.store.ForceReleaseLock(ctx, graduationID, path); err != nil {
		return fmt.Errorf("force release lock: %w", err)
	}
	c.publish(ctx, graduationID, domain.ChangeLocks)
	return nil
}

// GetLockHolder returns the fresh lock on fieldPath, or nil when the field is free.
func (c *Coordinator) GetLockHolder(ctx context.Context, graduationID, rawPath string) (*domain.FieldLock, error) {
	path, err := fieldPath(rawPath)
	if err != nil {
		return nil, err
	}
	locks, err := c.ListLocks(ctx, graduationID)
	if err != nil {
		return nil, err
	}
	l, ok := locks[path]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// ListLocks returns every lock still inside the staleness window.
func (c *Coordinator) ListLocks(ctx context.Context, graduationID string) (map[string]domain.FieldLock, error) {
	if err := validateGraduationID(graduationID); err != nil {
		return nil, err
	}
	locks, err := c.store.GetLocks(ctx, graduationID)
	if err != nil {
		return nil, fmt.Errorf("get locks: %w", err)
	}
	return domain.FreshLocks(locks, c.clock.Now(), c.staleness), nil
}
