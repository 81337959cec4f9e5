package collab

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// PruneLocks strips stale locks from one graduation and returns how many went.
func (c *Coordinator) PruneLocks(ctx context.Context, graduationID string) (int, error) {
	if err := validateGraduationID(graduationID); err != nil {
		return 0, err
	}

	n, err := c.store.PruneLocks(ctx, graduationID, c.clock.Now().Add(-c.staleness))
	if err != nil {
		return 0, fmt.Errorf("prune locks: %w", err)
	}
	if n > 0 {
		c.publish(ctx, graduationID, domain.ChangeLocks)
	}
	return n, nil
}

// PruneAllLocks strips stale locks and stale heartbeats from every graduation.
// It is run on a schedule.
func (c *Coordinator) PruneAllLocks(ctx context.Context) (int64, error) {
	n, err := c.store.PruneAllStale(ctx, c.clock.Now().Add(-c.staleness))
	if err != nil {
		return 0, fmt.Errorf("prune stale collaboration state: %w", err)
	}
	if n > 0 {
		c.log.InfoContext(ctx, "pruned stale collaboration state", slog.Int64("graduations", n))
	}
	return n, nil
}
