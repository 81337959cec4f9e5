package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const defaultTxAttempts = 3

// TxManager runs service operations inside a transaction carried by the
// context. Nested RunInTx calls join the outer transaction.
type TxManager struct {
	db       DB
	attempts int
}

// TxOption configures a TxManager.
type TxOption func(*TxManager)

// WithMaxAttempts sets how many times a transaction that lost a
// serialization race or a deadlock is run in total. Values below 1 are ignored.
func WithMaxAttempts(n int) TxOption {
	return func(m *TxManager) {
		if n >= 1 {
			m.attempts = n
		}
	}
}

// NewTxManager creates a new TxManager.
func NewTxManager(db DB, opts ...TxOption) *TxManager {
	m := &TxManager{db: db, attempts: defaultTxAttempts}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunInTx executes fn within a Read Committed transaction, committing when fn
// succeeds and rolling back otherwise. A panic in fn rolls back and re-panics.
// The whole transaction is rerun when PostgreSQL aborts it with a
// serialization failure or a deadlock.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return fmt.Errorf("transaction gave up after %d attempts: %w", m.attempts, err)
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}
