package collab

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const cleanupTimeout = 5 * time.Second

// Tracker keeps one editor's heartbeat alive on a graduation until stopped.
type Tracker struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Stop removes the editor's heartbeat and releases the subscription.
// It blocks until the tracking goroutine has exited and is safe to call twice.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		t.cancel()
		<-t.done
	})
}

// Done is closed once tracking has ended, either through Stop or because the
// context passed to StartTracking was cancelled.
func (t *Tracker) Done() <-chan struct{} {
	return t.done
}

// StartTracking writes a heartbeat for editorID, refreshes it every heartbeat
// interval and calls onChange with the other active editors whenever the
// graduation changes. onChange runs on the tracker goroutine.
func (c *Coordinator) StartTracking(
	ctx context.Context,
	graduationID, editorID string,
	onChange func(editorIDs []string),
) (*Tracker, error) {
	if err := validateGraduationID(graduationID); err != nil {
		return nil, err
	}
	if err := validateEditorID(editorID); err != nil {
		return nil, err
	}

	if err := c.store.SetHeartbeat(ctx, graduationID, editorID, c.clock.Now()); err != nil {
		return nil, fmt.Errorf("write heartbeat: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	events, closeSub, err := c.broker.Subscribe(loopCtx, graduationID)
	if err != nil {
		cancel()
		c.removeHeartbeat(ctx, graduationID, editorID)
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	t := &Tracker{cancel: cancel, done: make(chan struct{})}

	c.publish(ctx, graduationID, domain.ChangePresence)
	c.notify(loopCtx, graduationID, editorID, onChange)

	go c.track(loopCtx, t, graduationID, editorID, events, closeSub, onChange)

	return t, nil
}

func (c *Coordinator) track(
	ctx context.Context,
	t *Tracker,
	graduationID, editorID string,
	events <-chan domain.ChangeEvent,
	closeSub func(),
	onChange func([]string),
) {
	ticker := time.NewTicker(c.heartbeatInterval)
	defer func() {
		ticker.Stop()
		closeSub()
		c.removeHeartbeat(ctx, graduationID, editorID)
		close(t.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.store.SetHeartbeat(ctx, graduationID, editorID, c.clock.Now()); err != nil {
				c.log.WarnContext(ctx, "refresh heartbeat",
					slog.String("graduation_id", graduationID),
					slog.String("editor_id", editorID),
					slog.String("error", err.Error()),
				)
				continue
			}
			c.publish(ctx, graduationID, domain.ChangePresence)
		case _, ok := <-events:
			if !ok {
				return
			}
			c.notify(ctx, graduationID, editorID, onChange)
		}
	}
}

func (c *Coordinator) notify(ctx context.Context, graduationID, editorID string, onChange func([]string)) {
	if onChange == nil {
		return
	}
	ids, err := c.ActiveEditors(ctx, graduationID, editorID)
	if err != nil {
		if ctx.Err() == nil {
			c.log.WarnContext(ctx, "read active editors",
				slog.String("graduation_id", graduationID),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	onChange(ids)
}

// removeHeartbeat is best-effort: presence is not critical and a stale entry
// ages out after the staleness window anyway.
func (c *Coordinator) removeHeartbeat(ctx context.Context, graduationID, editorID string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := c.store.RemoveHeartbeat(cleanupCtx, graduationID, editorID); err != nil {
		c.log.WarnContext(cleanupCtx, "remove heartbeat",
			slog.String("graduation_id", graduationID),
			slog.String("editor_id", editorID),
			slog.String("error", err.Error()),
		)
		return
	}
	c.publish(cleanupCtx, graduationID, domain.ChangePresence)
}

// Heartbeat refreshes editorID's presence without starting a tracker.
func (c *Coordinator) Heartbeat(ctx context.Context, graduationID, editorID string) error {
	if err := validateGraduationID(graduationID); err != nil {
		return err
	}
	if err := validateEditorID(editorID); err != nil {
		return err
	}
	if err := c.store.SetHeartbeat(ctx, graduationID, editorID, c.clock.Now()); err != nil {
		return fmt.Errorf("write heartbeat: %w", err)
	}
	c.publish(ctx, graduationID, domain.ChangePresence)
	return nil
}

// ActiveEditors returns the editors with a fresh heartbeat, excluding self, sorted.
func (c *Coordinator) ActiveEditors(ctx context.Context, graduationID, self string) ([]string, error) {
	if err := validateGraduationID(graduationID); err != nil {
		return nil, err
	}
	heartbeats, err := c.store.GetActiveEditors(ctx, graduationID)
	if err != nil {
		return nil, fmt.Errorf("get active editors: %w", err)
	}
	return domain.ActiveEditorsExcept(heartbeats, self, c.clock.Now(), c.staleness), nil
}
