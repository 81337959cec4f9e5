package graduation

import (
	"context"
	"fmt"
	"log/slog"
)

// Delete removes the graduation with its students and content pages and
// queues every referenced upload for deletion.
func (s *Service) Delete(ctx context.Context, id string) error {
	g, editor, err := s.loadForEditor(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		students, err := s.students.ListByGraduation(txCtx, g.ID)
		if err != nil {
			return fmt.Errorf("list students: %w", err)
		}
		pages, err := s.pages.ListByGraduation(txCtx, g.ID)
		if err != nil {
			return fmt.Errorf("list content pages: %w", err)
		}

		var urls []string
		if g.BookletURL != nil {
			urls = append(urls, *g.BookletURL)
		}
		for _, st := range students {
			urls = append(urls, st.AssetURLs()...)
		}
		for _, p := range pages {
			urls = append(urls, p.AssetURLs()...)
		}

		if _, err := s.assets.MarkForDeletion(txCtx, "graduation:"+g.ID, urls...); err != nil {
			return err
		}
		if err := s.graduations.Delete(txCtx, g.ID); err != nil {
			return fmt.Errorf("delete graduation: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.collab.Forget(g.ID)
	s.log.InfoContext(ctx, "graduation deleted",
		slog.String("graduation_id", g.ID),
		slog.String("editor_id", editor.ID),
	)
	return nil
}
