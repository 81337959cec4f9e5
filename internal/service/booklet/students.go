package booklet

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

type fetched struct {
	part part
	err  error
}

// studentParts fetches every student PDF with bounded concurrency and returns
// the usable ones in roster order together with the names of the students
// that had to be skipped.
func (a *Assembler) studentParts(ctx context.Context, log *slog.Logger, students []*domain.Student) ([]part, []string, error) {
	results := make([]fetched, len(students))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.FetchConcurrency)

	for i, s := range students {
		g.Go(func() error {
			results[i] = a.fetchStudent(gctx, s)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	parts := make([]part, 0, len(students))
	skipped := []string{}
	for i, r := range results {
		s := students[i]
		if r.err != nil {
			log.WarnContext(ctx, "student pdf skipped",
				slog.String("student_id", s.ID),
				slog.String("student", s.Name),
				slog.String("error", r.err.Error()),
			)
			skipped = append(skipped, s.Name)
			continue
		}
		parts = append(parts, r.part)
	}
	return parts, skipped, nil
}

func (a *Assembler) fetchStudent(ctx context.Context, s *domain.Student) fetched {
	data, err := a.fetch.Fetch(ctx, *s.PDFURL, a.cfg.MaxPDFBytes)
	if err != nil {
		return fetched{err: fmt.Errorf("fetch: %w", err)}
	}
	n, err := a.engine.PageCount(data)
	if err != nil {
		return fetched{err: err}
	}
	return fetched{part: part{data: data, pages: n}}
}
