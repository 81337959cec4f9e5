// Package collab coordinates concurrent editors of one graduation: presence
// heartbeats, last-write-wins conflict detection and advisory field locks.
package collab

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/config"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type graduationStore interface {
	GetUpdatedAt(ctx context.Context, id string) (time.Time, error)

	SetHeartbeat(ctx context.Context, id, editorID string, at time.Time) error
	RemoveHeartbeat(ctx context.Context, id, editorID string) error
	GetActiveEditors(ctx context.Context, id string) (map[string]time.Time, error)

	GetLocks(ctx context.Context, id string) (map[string]domain.FieldLock, error)
	AcquireLock(ctx context.Context, id, path string, lock domain.FieldLock, staleBefore time.Time) (domain.FieldLock, bool, error)
	ReleaseLock(ctx context.Context, id, path, editorID string) (bool, error)
	ForceReleaseLock(ctx context.Context, id, path string) error
	PruneLocks(ctx context.Context, id string, staleBefore time.Time) (int, error)
	PruneAllStale(ctx context.Context, staleBefore time.Time) (int64, error)
}

type changeBroker interface {
	Publish(ctx context.Context, graduationID string, kind domain.ChangeKind) error
	Subscribe(ctx context.Context, graduationID string) (<-chan domain.ChangeEvent, func(), error)
}

// Clock returns the current time. Tests pin it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock is the wall clock in UTC.
var SystemClock Clock = systemClock{}

// ---------------------------------------------------------------------------
// Coordinator
// ---------------------------------------------------------------------------

type saveKey struct {
	graduationID string
	editorID     string
}

// Coordinator is safe for concurrent use. Each instance keeps its own
// last-save memory; nothing is shared between instances.
type Coordinator struct {
	store  graduationStore
	broker changeBroker
	clock  Clock
	log    *slog.Logger

	heartbeatInterval time.Duration
	staleness         time.Duration

	mu        sync.Mutex
	lastSaves map[saveKey]time.Time
}

// NewCoordinator creates a Coordinator. A nil clock means SystemClock.
func NewCoordinator(
	log *slog.Logger,
	store graduationStore,
	broker changeBroker,
	clock Clock,
	cfg config.CollabConfig,
) *Coordinator {
	if clock == nil {
		clock = SystemClock
	}
	staleness := cfg.StalenessWindow
	if staleness <= 0 {
		staleness = domain.StalenessWindow
	}
	heartbeat := cfg.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = time.Minute
	}
	return &Coordinator{
		store:             store,
		broker:            broker,
		clock:             clock,
		log:               log.With("service", "collab"),
		heartbeatInterval: heartbeat,
		staleness:         staleness,
		lastSaves:         make(map[saveKey]time.Time),
	}
}

// StalenessWindow returns the age after which heartbeats and locks are ignored.
func (c *Coordinator) StalenessWindow() time.Duration {
	return c.staleness
}

// publish notifies listeners. Notifications are advisory, so failures are logged only.
func (c *Coordinator) publish(ctx context.Context, graduationID string, kind domain.ChangeKind) {
	if err := c.broker.Publish(ctx, graduationID, kind); err != nil {
		c.log.WarnContext(ctx, "publish change",
			slog.String("graduation_id", graduationID),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
}

func validateGraduationID(id string) error {
	if !domain.ValidIdentifier(id) {
		return domain.NewValidationError("graduation_id", "invalid identifier")
	}
	return nil
}

func validateEditorID(id string) error {
	if id == "" {
		return domain.NewValidationError("editor_id", "required")
	}
	return nil
}
