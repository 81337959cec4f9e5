package graduation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// AddEditor grants editorID edit rights on the graduation.
func (s *Service) AddEditor(ctx context.Context, id, editorID string) error {
	editorID = strings.TrimSpace(editorID)
	if editorID == "" {
		return domain.NewValidationError("editor_id", "required")
	}
	return s.changeEditors(ctx, id, "add", func(ctx context.Context) error {
		return s.graduations.AddEditor(ctx, id, editorID)
	}, editorID)
}

// RemoveEditor revokes editorID's edit rights. The last editor cannot be removed.
func (s *Service) RemoveEditor(ctx context.Context, id, editorID string) error {
	if editorID == "" {
		return domain.NewValidationError("editor_id", "required")
	}
	return s.changeEditors(ctx, id, "remove", func(ctx context.Context) error {
		return s.graduations.RemoveEditor(ctx, id, editorID)
	}, editorID)
}

func (s *Service) changeEditors(
	ctx context.Context,
	id, action string,
	change func(ctx context.Context) error,
	target string,
) error {
	current, editor, err := s.loadForEditor(ctx, id)
	if err != nil {
		return err
	}

	res := s.collab.SafeUpdate(ctx, current.ID, editor.ID,
		func(ctx context.Context) (time.Time, error) {
			if err := change(ctx); err != nil {
				return time.Time{}, err
			}
			return s.graduations.GetUpdatedAt(ctx, current.ID)
		},
		alwaysProceed,
	)
	if err := saveResultErr(res); err != nil {
		return fmt.Errorf("%s editor %s: %w", action, target, err)
	}

	s.log.InfoContext(ctx, "graduation editors changed",
		slog.String("graduation_id", current.ID),
		slog.String("action", action),
		slog.String("target", target),
		slog.String("by", editor.ID),
	)
	return nil
}
