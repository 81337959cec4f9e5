// Package graduation manages graduation documents: details, editors, booklet
// availability and the public site password.
package graduation

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/collab"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type graduationRepo interface {
	Create(ctx context.Context, g *domain.Graduation) (*domain.Graduation, error)
	GetByID(ctx context.Context, id string) (*domain.Graduation, error)
	ListByEditor(ctx context.Context, editorID string) ([]*domain.Graduation, error)
	UpdateDetails(ctx context.Context, id string, params domain.GraduationUpdateParams) (*domain.Graduation, error)
	GetUpdatedAt(ctx context.Context, id string) (time.Time, error)
	Delete(ctx context.Context, id string) error
	AddEditor(ctx context.Context, id, editorID string) error
	RemoveEditor(ctx context.Context, id, editorID string) error
}

type studentRepo interface {
	ListByGraduation(ctx context.Context, graduationID string) ([]*domain.Student, error)
}

type pageRepo interface {
	ListByGraduation(ctx context.Context, graduationID string) ([]*domain.ContentPage, error)
}

type assetMarker interface {
	MarkForDeletion(ctx context.Context, contextTag string, urls ...string) (int64, error)
}

type coordinator interface {
	SafeUpdate(ctx context.Context, graduationID, editorID string, write collab.WriteFunc, onConflict collab.ConflictFunc) collab.SaveResult
	RecordSave(graduationID, editorID string, at time.Time)
	Forget(graduationID string)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements graduation management.
type Service struct {
	graduations graduationRepo
	students    studentRepo
	pages       pageRepo
	assets      assetMarker
	collab      coordinator
	tx          txManager
	log         *slog.Logger
	bcryptCost  int
	now         func() time.Time
}

// NewService creates a new graduation service.
func NewService(
	log *slog.Logger,
	graduations graduationRepo,
	students studentRepo,
	pages pageRepo,
	assets assetMarker,
	collab coordinator,
	tx txManager,
	bcryptCost int,
) *Service {
	return &Service{
		graduations: graduations,
		students:    students,
		pages:       pages,
		assets:      assets,
		collab:      collab,
		tx:          tx,
		log:         log.With("service", "graduation"),
		bcryptCost:  bcryptCost,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// loadForEditor returns the graduation if the caller is one of its editors.
func (s *Service) loadForEditor(ctx context.Context, id string) (*domain.Graduation, ctxutil.Editor, error) {
	editor, ok := ctxutil.EditorFromCtx(ctx)
	if !ok {
		return nil, ctxutil.Editor{}, domain.ErrUnauthorized
	}
	if !domain.ValidIdentifier(id) {
		return nil, editor, domain.NewValidationError("id", "invalid identifier")
	}

	g, err := s.graduations.GetByID(ctx, id)
	if err != nil {
		return nil, editor, err
	}
	if !g.IsEditor(editor.ID) {
		return nil, editor, domain.ErrForbidden
	}
	return g, editor, nil
}

// alwaysProceed is the conflict answer for granular writes that cannot
// clobber anyone else's changes.
func alwaysProceed(context.Context) bool { return true }

// saveResultErr turns an unsuccessful SaveResult into an error.
func saveResultErr(res collab.SaveResult) error {
	switch {
	case res.Success:
		return nil
	case res.Aborted:
		return domain.ErrConflict
	default:
		return res.Err
	}
}
