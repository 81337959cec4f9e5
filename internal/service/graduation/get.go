package graduation

import (
	"context"
	"fmt"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

// Get returns a graduation to one of its editors. The returned version becomes
// the editor's baseline for conflict detection.
func (s *Service) Get(ctx context.Context, id string) (*domain.Graduation, error) {
	g, editor, err := s.loadForEditor(ctx, id)
	if err != nil {
		return nil, err
	}
	s.collab.RecordSave(g.ID, editor.ID, g.UpdatedAt)
	return g, nil
}

// ListMine returns the graduations the caller edits.
func (s *Service) ListMine(ctx context.Context) ([]*domain.Graduation, error) {
	editor, ok := ctxutil.EditorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	list, err := s.graduations.ListByEditor(ctx, editor.ID)
	if err != nil {
		return nil, fmt.Errorf("list graduations: %w", err)
	}
	return list, nil
}

// CheckEditor returns nil if the caller edits the graduation. It has no side
// effects, unlike Get.
func (s *Service) CheckEditor(ctx context.Context, id string) error {
	_, _, err := s.loadForEditor(ctx, id)
	return err
}
