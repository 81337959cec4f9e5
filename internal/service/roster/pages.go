package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// ListPages returns the content pages of a graduation.
func (s *Service) ListPages(ctx context.Context, graduationID string) ([]*domain.ContentPage, error) {
	if _, err := s.authorize(ctx, graduationID); err != nil {
		return nil, err
	}
	list, err := s.pages.ListByGraduation(ctx, graduationID)
	if err != nil {
		return nil, fmt.Errorf("list content pages: %w", err)
	}
	return list, nil
}

// CreatePage adds a content page.
func (s *Service) CreatePage(ctx context.Context, input CreatePageInput) (*domain.ContentPage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	editor, err := s.authorize(ctx, input.GraduationID)
	if err != nil {
		return nil, err
	}

	p := &domain.ContentPage{
		ID:             uuid.NewString(),
		GraduationID:   input.GraduationID,
		Title:          strings.TrimSpace(input.Title),
		Author:         optional(input.Author),
		AuthorPhotoURL: optional(input.AuthorPhotoURL),
		Type:           input.Type,
		Body:           input.Body,
		Images:         trimAll(input.Images),
		VideoURL:       optional(input.VideoURL),
		Size:           input.Size,
	}
	if p.Size == "" {
		p.Size = domain.PageSizeMedium
	}

	created, err := s.pages.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create content page: %w", err)
	}
	s.changed(ctx, input.GraduationID)

	s.log.InfoContext(ctx, "content page created",
		slog.String("graduation_id", input.GraduationID),
		slog.String("page_id", created.ID),
		slog.String("type", created.Type.String()),
		slog.String("editor_id", editor.ID),
	)
	return created, nil
}

// UpdatePage applies a partial update. Images and media dropped by the update
// are queued for deletion.
func (s *Service) UpdatePage(ctx context.Context, input UpdatePageInput) (*domain.ContentPage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, input.GraduationID); err != nil {
		return nil, err
	}

	current, err := s.pages.GetByID(ctx, input.GraduationID, input.PageID)
	if err != nil {
		return nil, err
	}

	params := domain.ContentPageUpdateParams{
		Title:          trimmed(input.Title),
		Author:         trimmed(input.Author),
		AuthorPhotoURL: trimmed(input.AuthorPhotoURL),
		Type:           input.Type,
		Body:           input.Body,
		VideoURL:       trimmed(input.VideoURL),
		Size:           input.Size,
	}
	if input.Images != nil {
		images := trimAll(*input.Images)
		params.Images = &images
	}

	updated, err := s.pages.Update(ctx, input.GraduationID, input.PageID, params)
	if err != nil {
		return nil, fmt.Errorf("update content page %s: %w", input.PageID, err)
	}

	s.release(ctx, "page:"+current.ID, dropped(current.AssetURLs(), updated.AssetURLs()))
	s.changed(ctx, input.GraduationID)
	return updated, nil
}

// DeletePage removes a content page and queues its media for deletion.
func (s *Service) DeletePage(ctx context.Context, graduationID, pageID string) error {
	editor, err := s.authorize(ctx, graduationID)
	if err != nil {
		return err
	}
	if !domain.ValidIdentifier(pageID) {
		return domain.NewValidationError("page_id", "invalid identifier")
	}

	deleted, err := s.pages.Delete(ctx, graduationID, pageID)
	if err != nil {
		return fmt.Errorf("delete content page %s: %w", pageID, err)
	}

	s.release(ctx, "page:"+deleted.ID, deleted.AssetURLs())
	s.changed(ctx, graduationID)

	s.log.InfoContext(ctx, "content page deleted",
		slog.String("graduation_id", graduationID),
		slog.String("page_id", pageID),
		slog.String("editor_id", editor.ID),
	)
	return nil
}

func trimAll(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, strings.TrimSpace(u))
	}
	return out
}
