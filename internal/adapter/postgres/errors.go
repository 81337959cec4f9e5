package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// SQLSTATE codes the repositories translate into domain errors.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNotNullViolation     = "23502"
	codeInvalidText          = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// pgCodeErrors maps constraint and concurrency failures to domain sentinels.
// Concurrent writers lose with ErrConflict so callers can retry.
var pgCodeErrors = map[string]error{
	codeUniqueViolation:      domain.ErrAlreadyExists,
	codeForeignKeyViolation:  domain.ErrNotFound,
	codeCheckViolation:       domain.ErrValidation,
	codeInvalidText:          domain.ErrValidation,
	codeSerializationFailure: domain.ErrConflict,
	codeDeadlockDetected:     domain.ErrConflict,
	codeLockNotAvailable:     domain.ErrConflict,
}

// MapError converts pgx/pgconn errors into domain errors prefixed with the
// entity and its id. Context cancellation passes through unmapped.
func MapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == codeNotNullViolation && pgErr.ColumnName != "" {
			return fmt.Errorf("%s %s: %w", entity, id,
				domain.NewValidationError(pgErr.ColumnName, "is required"))
		}
		if pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected {
			// Keep the driver error so TxManager can rerun the transaction.
			return fmt.Errorf("%s %s: %w: %w", entity, id, domain.ErrConflict, pgErr)
		}
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s %s (%s): %w", entity, id, pgErr.ConstraintName, mapped)
			}
			return fmt.Errorf("%s %s: %w", entity, id, mapped)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
