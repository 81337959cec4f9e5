// Package assets decouples "stop referencing an uploaded file" from actually
// deleting it: producers mark URLs, a scheduled reaper removes the objects.
package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/storage"
	"github.com/heartmarshall/gradbook-backend/internal/config"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

type pendingRepo interface {
	Mark(ctx context.Context, items []domain.PendingDeletion) (int64, error)
	ListPending(ctx context.Context, limit int) ([]domain.PendingDeletion, error)
	MarkDeleted(ctx context.Context, id int64, at time.Time) error
	MarkFailed(ctx context.Context, id int64, at time.Time, reason string, maxAttempts int) error
}

type objectStore interface {
	Delete(ctx context.Context, key string) error
	KeyFromURL(publicURL string) (string, error)
}

// Service marks and reaps unreferenced assets.
type Service struct {
	pending pendingRepo
	store   objectStore
	cfg     config.AssetsConfig
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new assets service.
func NewService(log *slog.Logger, pending pendingRepo, store objectStore, cfg config.AssetsConfig) *Service {
	if cfg.ReaperBatchSize <= 0 {
		cfg.ReaperBatchSize = 100
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &Service{
		pending: pending,
		store:   store,
		cfg:     cfg,
		log:     log.With("service", "assets"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// MarkForDeletion queues urls for deletion under a context tag such as
// "student:<id>". Empty and duplicate URLs are ignored; URLs that do not
// belong to the asset store are skipped. Returns how many were queued.
func (s *Service) MarkForDeletion(ctx context.Context, contextTag string, urls ...string) (int64, error) {
	seen := make(map[string]bool, len(urls))
	items := make([]domain.PendingDeletion, 0, len(urls))

	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true

		key, err := s.store.KeyFromURL(u)
		if err != nil {
			if errors.Is(err, storage.ErrForeignURL) {
				s.log.DebugContext(ctx, "skip foreign asset url", slog.String("url", u))
			} else {
				s.log.WarnContext(ctx, "skip unparsable asset url",
					slog.String("url", u),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		items = append(items, domain.PendingDeletion{URL: u, StorageKey: key, Context: contextTag})
	}

	if len(items) == 0 {
		return 0, nil
	}

	n, err := s.pending.Mark(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("mark assets for deletion: %w", err)
	}
	return n, nil
}

// ReapResult summarises one reaper pass.
type ReapResult struct {
	Deleted int
	Failed  int
}

// Reap deletes up to one batch of pending assets from the object store.
// Individual failures are recorded on the row and retried on later passes.
func (s *Service) Reap(ctx context.Context) (ReapResult, error) {
	var res ReapResult

	items, err := s.pending.ListPending(ctx, s.cfg.ReaperBatchSize)
	if err != nil {
		return res, fmt.Errorf("list pending deletions: %w", err)
	}

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if s.cfg.DryRun {
			s.log.InfoContext(ctx, "dry run: would delete asset",
				slog.Int64("id", it.ID),
				slog.String("key", it.StorageKey),
			)
			continue
		}

		if delErr := s.store.Delete(ctx, it.StorageKey); delErr != nil {
			res.Failed++
			s.log.WarnContext(ctx, "delete asset",
				slog.Int64("id", it.ID),
				slog.String("key", it.StorageKey),
				slog.Int("attempts", it.Attempts+1),
				slog.String("error", delErr.Error()),
			)
			if err := s.pending.MarkFailed(ctx, it.ID, s.now(), delErr.Error(), s.cfg.MaxAttempts); err != nil {
				return res, fmt.Errorf("mark deletion %d failed: %w", it.ID, err)
			}
			continue
		}

		if err := s.pending.MarkDeleted(ctx, it.ID, s.now()); err != nil {
			return res, fmt.Errorf("mark deletion %d done: %w", it.ID, err)
		}
		res.Deleted++
	}

	if res.Deleted > 0 || res.Failed > 0 {
		s.log.InfoContext(ctx, "asset reaper pass",
			slog.Int("deleted", res.Deleted),
			slog.Int("failed", res.Failed),
		)
	}
	return res, nil
}
