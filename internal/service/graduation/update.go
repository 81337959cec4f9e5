package graduation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// Update changes school name, year or config. If another editor saved since
// the caller last loaded or saved, it fails with domain.ErrConflict unless
// input.Force is set.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Graduation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, editor, err := s.loadForEditor(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	params := domain.GraduationUpdateParams{Year: input.Year}
	if input.SchoolName != nil {
		trimmed := strings.TrimSpace(*input.SchoolName)
		params.SchoolName = &trimmed
	}
	if input.Config != nil {
		cfg := *input.Config
		cfg.SitePasswordHash = current.Config.SitePasswordHash
		cfg.BookletAvailableAt = current.Config.BookletAvailableAt
		params.Config = &cfg
	}

	var updated *domain.Graduation
	res := s.collab.SafeUpdate(ctx, current.ID, editor.ID,
		func(ctx context.Context) (time.Time, error) {
			g, err := s.graduations.UpdateDetails(ctx, current.ID, params)
			if err != nil {
				return time.Time{}, err
			}
			updated = g
			return g.UpdatedAt, nil
		},
		func(context.Context) bool { return input.Force },
	)
	if err := saveResultErr(res); err != nil {
		return nil, fmt.Errorf("update graduation %s: %w", current.ID, err)
	}
	return updated, nil
}

// updateConfig rewrites one part of the config for a dedicated operation.
// These writes never conflict: they touch fields the general update preserves.
func (s *Service) updateConfig(
	ctx context.Context,
	id string,
	mutate func(cfg *domain.GraduationConfig),
) (*domain.Graduation, error) {
	current, editor, err := s.loadForEditor(ctx, id)
	if err != nil {
		return nil, err
	}

	cfg := current.Config
	mutate(&cfg)

	var updated *domain.Graduation
	res := s.collab.SafeUpdate(ctx, current.ID, editor.ID,
		func(ctx context.Context) (time.Time, error) {
			g, err := s.graduations.UpdateDetails(ctx, current.ID, domain.GraduationUpdateParams{Config: &cfg})
			if err != nil {
				return time.Time{}, err
			}
			updated = g
			return g.UpdatedAt, nil
		},
		alwaysProceed,
	)
	if err := saveResultErr(res); err != nil {
		return nil, fmt.Errorf("update graduation %s config: %w", current.ID, err)
	}
	return updated, nil
}
