package graduation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

// Create creates a graduation owned by the caller, who becomes its first editor.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Graduation, error) {
	editor, ok := ctxutil.EditorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	g := &domain.Graduation{
		ID:         id,
		SchoolName: strings.TrimSpace(input.SchoolName),
		Year:       input.Year,
		Editors:    []string{editor.ID},
		CreatedBy:  editor.ID,
	}
	if input.Config != nil {
		g.Config = *input.Config
		// Set through the dedicated operations only.
		g.Config.SitePasswordHash = ""
		g.Config.BookletAvailableAt = nil
	}

	created, err := s.graduations.Create(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("create graduation: %w", err)
	}
	s.collab.RecordSave(created.ID, editor.ID, created.UpdatedAt)

	s.log.InfoContext(ctx, "graduation created",
		slog.String("graduation_id", created.ID),
		slog.String("editor_id", editor.ID),
	)
	return created, nil
}
