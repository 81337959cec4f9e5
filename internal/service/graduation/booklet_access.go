package graduation

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// SetBookletAvailability gates the booklet download until at. A nil at opens
// the download immediately.
func (s *Service) SetBookletAvailability(ctx context.Context, id string, at *time.Time) (*domain.Graduation, error) {
	if at != nil {
		utc := at.UTC()
		at = &utc
	}
	return s.updateConfig(ctx, id, func(cfg *domain.GraduationConfig) {
		cfg.BookletAvailableAt = at
	})
}

// BookletDownload returns the booklet URL, or the countdown while the booklet
// is gated. It needs no authentication.
func (s *Service) BookletDownload(ctx context.Context, id string) (*BookletDownload, error) {
	if !domain.ValidIdentifier(id) {
		return nil, domain.NewValidationError("id", "invalid identifier")
	}

	g, err := s.graduations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.BookletURL == nil || *g.BookletURL == "" {
		return nil, fmt.Errorf("booklet for graduation %s: %w", id, domain.ErrNotFound)
	}

	now := s.now()
	if until, locked := g.BookletLockedUntil(now); locked {
		return &BookletDownload{
			Locked:      true,
			AvailableAt: until,
			Remaining:   until.Sub(now),
		}, nil
	}
	return &BookletDownload{URL: *g.BookletURL}, nil
}
