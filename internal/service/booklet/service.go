// Package booklet assembles a graduation's cover, content sections and
// student PDFs into one document and publishes it to the asset store.
package booklet

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/config"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/pdf"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type graduationRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Graduation, error)
	SaveBookletResult(ctx context.Context, id, url string, at time.Time, stats domain.BookletStats) error
}

type studentRepo interface {
	ListByGraduation(ctx context.Context, graduationID string) ([]*domain.Student, error)
}

type pageRepo interface {
	ListByGraduation(ctx context.Context, graduationID string) ([]*domain.ContentPage, error)
}

type fetcher interface {
	Fetch(ctx context.Context, url string, maxBytes int64) ([]byte, error)
}

type assetStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type pageRenderer interface {
	Cover(in pdf.CoverInput) ([]byte, error)
	SectionTitle(title, color string) ([]byte, error)
	ContentPage(in pdf.ContentInput) ([]byte, error)
}

type pdfEngine interface {
	PageCount(data []byte) (int, error)
	Merge(parts [][]byte) ([]byte, error)
}

type changeBroker interface {
	Publish(ctx context.Context, graduationID string, kind domain.ChangeKind) error
}

// photoMaxPx bounds author photos before they are embedded.
const photoMaxPx = 600

// ---------------------------------------------------------------------------
// Assembler
// ---------------------------------------------------------------------------

// Assembler builds booklets. It holds no per-request state.
type Assembler struct {
	graduations graduationRepo
	students    studentRepo
	pages       pageRepo
	fetch       fetcher
	store       assetStore
	render      pageRenderer
	engine      pdfEngine
	broker      changeBroker
	metrics     *Metrics
	log         *slog.Logger
	now         func() time.Time

	cfg          config.BookletConfig
	defaultOrder []domain.Section
}

// NewAssembler creates an Assembler. cfg.PageOrder, when set, replaces the
// built-in default section order. metrics may be nil.
func NewAssembler(
	log *slog.Logger,
	graduations graduationRepo,
	students studentRepo,
	pages pageRepo,
	fetch fetcher,
	store assetStore,
	render pageRenderer,
	engine pdfEngine,
	broker changeBroker,
	metrics *Metrics,
	cfg config.BookletConfig,
) *Assembler {
	order := domain.DefaultPageOrder()
	if len(cfg.PageOrder) > 0 {
		if parsed, err := domain.ParseSections(cfg.PageOrder); err == nil {
			order = parsed
		}
	}
	if cfg.FetchConcurrency < 1 {
		cfg.FetchConcurrency = 1
	}

	return &Assembler{
		graduations:  graduations,
		students:     students,
		pages:        pages,
		fetch:        fetch,
		store:        store,
		render:       render,
		engine:       engine,
		broker:       broker,
		metrics:      metrics,
		log:          log.With("service", "booklet"),
		now:          func() time.Time { return time.Now().UTC() },
		cfg:          cfg,
		defaultOrder: order,
	}
}
