// Package roster manages the students and content pages of a graduation.
package roster

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type graduationReader interface {
	GetByID(ctx context.Context, id string) (*domain.Graduation, error)
}

type studentRepo interface {
	Create(ctx context.Context, s *domain.Student) (*domain.Student, error)
	GetByID(ctx context.Context, graduationID, id string) (*domain.Student, error)
	GetByLinkID(ctx context.Context, linkID string) (*domain.Student, error)
	ListByGraduation(ctx context.Context, graduationID string) ([]*domain.Student, error)
	Update(ctx context.Context, graduationID, id string, params domain.StudentUpdateParams) (*domain.Student, error)
	Delete(ctx context.Context, graduationID, id string) (*domain.Student, error)
	SetOrder(ctx context.Context, graduationID string, ids []string) error
}

type pageRepo interface {
	Create(ctx context.Context, p *domain.ContentPage) (*domain.ContentPage, error)
	GetByID(ctx context.Context, graduationID, id string) (*domain.ContentPage, error)
	ListByGraduation(ctx context.Context, graduationID string) ([]*domain.ContentPage, error)
	Update(ctx context.Context, graduationID, id string, params domain.ContentPageUpdateParams) (*domain.ContentPage, error)
	Delete(ctx context.Context, graduationID, id string) (*domain.ContentPage, error)
}

type assetMarker interface {
	MarkForDeletion(ctx context.Context, contextTag string, urls ...string) (int64, error)
}

type changeBroker interface {
	Publish(ctx context.Context, graduationID string, kind domain.ChangeKind) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements roster management.
type Service struct {
	graduations graduationReader
	students    studentRepo
	pages       pageRepo
	assets      assetMarker
	broker      changeBroker
	tx          txManager
	log         *slog.Logger
	bcryptCost  int
}

// NewService creates a new roster service.
func NewService(
	log *slog.Logger,
	graduations graduationReader,
	students studentRepo,
	pages pageRepo,
	assets assetMarker,
	broker changeBroker,
	tx txManager,
	bcryptCost int,
) *Service {
	return &Service{
		graduations: graduations,
		students:    students,
		pages:       pages,
		assets:      assets,
		broker:      broker,
		tx:          tx,
		log:         log.With("service", "roster"),
		bcryptCost:  bcryptCost,
	}
}

// authorize checks that the caller edits the graduation.
func (s *Service) authorize(ctx context.Context, graduationID string) (ctxutil.Editor, error) {
	editor, ok := ctxutil.EditorFromCtx(ctx)
	if !ok {
		return ctxutil.Editor{}, domain.ErrUnauthorized
	}
	if !domain.ValidIdentifier(graduationID) {
		return editor, domain.NewValidationError("graduation_id", "invalid identifier")
	}

	g, err := s.graduations.GetByID(ctx, graduationID)
	if err != nil {
		return editor, err
	}
	if !g.IsEditor(editor.ID) {
		return editor, domain.ErrForbidden
	}
	return editor, nil
}

func (s *Service) changed(ctx context.Context, graduationID string) {
	if err := s.broker.Publish(ctx, graduationID, domain.ChangeContent); err != nil {
		s.log.WarnContext(ctx, "publish roster change",
			slog.String("graduation_id", graduationID),
			slog.String("error", err.Error()),
		)
	}
}

// release queues urls for deletion. Failures are logged, not returned.
func (s *Service) release(ctx context.Context, contextTag string, urls []string) {
	if len(urls) == 0 {
		return
	}
	if _, err := s.assets.MarkForDeletion(ctx, contextTag, urls...); err != nil {
		s.log.WarnContext(ctx, "mark assets for deletion",
			slog.String("context", contextTag),
			slog.Int("count", len(urls)),
			slog.String("error", err.Error()),
		)
	}
}

// dropped returns the entries of before that are missing from after.
func dropped(before, after []string) []string {
	keep := make(map[string]bool, len(after))
	for _, u := range after {
		keep[u] = true
	}
	var out []string
	for _, u := range before {
		if u != "" && !keep[u] {
			out = append(out, u)
		}
	}
	return out
}
