// Package redis publishes and receives graduation change notifications over
// Redis pub/sub. Events carry no document data; subscribers re-read the store.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/gradbook-backend/internal/config"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const subscriberBuffer = 16

// NewClient connects to Redis and pings it for fail-fast validation.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Broker fans out change events per graduation.
type Broker struct {
	client *goredis.Client
	prefix string
	log    *slog.Logger
	now    func() time.Time
}

// NewBroker creates a Broker publishing on channels named prefix+graduationID.
func NewBroker(client *goredis.Client, prefix string, log *slog.Logger) *Broker {
	return &Broker{
		client: client,
		prefix: prefix,
		log:    log.With("adapter", "redis_broker"),
		now:    time.Now,
	}
}

// Channel returns the pub/sub channel for a graduation.
func (b *Broker) Channel(graduationID string) string {
	return b.prefix + graduationID
}

// Publish announces that a graduation changed.
func (b *Broker) Publish(ctx context.Context, graduationID string, kind domain.ChangeKind) error {
	payload, err := json.Marshal(domain.ChangeEvent{
		GraduationID: graduationID,
		Kind:         kind,
		At:           b.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}

	if err := b.client.Publish(ctx, b.Channel(graduationID), payload).Err(); err != nil {
		return fmt.Errorf("publish %s change for %s: %w", kind, graduationID, err)
	}
	return nil
}

// Subscribe listens for changes of one graduation. The returned channel is
// closed when ctx is done or the returned cancel func is called.
func (b *Broker) Subscribe(ctx context.Context, graduationID string) (<-chan domain.ChangeEvent, func(), error) {
	sub := b.client.Subscribe(ctx, b.Channel(graduationID))

	// Events published after Subscribe returns must be delivered.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe to %s: %w", graduationID, err)
	}

	out := make(chan domain.ChangeEvent, subscriberBuffer)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			if err := sub.Close(); err != nil {
				b.log.Warn("close subscription", slog.String("graduation_id", graduationID), slog.String("error", err.Error()))
			}
		})
	}

	msgs := sub.Channel()
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev domain.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.log.Warn("drop malformed change event",
						slog.String("channel", msg.Channel),
						slog.String("error", err.Error()),
					)
					continue
				}
				select {
				case out <- ev:
				default:
					// Consumer is behind and will re-read on the queued event.
				}
			}
		}
	}()

	return out, cancel, nil
}
