package booklet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const pdfContentType = "application/pdf"

// part is one rendered or fetched chunk of the booklet with its page count.
type part struct {
	data  []byte
	pages int
}

// Generate builds and uploads the booklet for req.GraduationID. Every hard
// failure is a *domain.BookletError; individual student PDF failures are not
// errors and show up in Result.SkippedStudents.
func (a *Assembler) Generate(ctx context.Context, req Request) (res *Result, err error) {
	start := time.Now()
	defer func() {
		a.metrics.observe(err, time.Since(start))
		a.metrics.observeResult(res)
	}()

	order, err := req.Validate()
	if err != nil {
		return nil, domain.NewBookletError(domain.BookletInvalidRequest, "invalid request", err)
	}

	g, err := a.graduations.GetByID(ctx, req.GraduationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewBookletError(domain.BookletNotFound, "graduation "+req.GraduationID+" not found", err)
		}
		return nil, domain.NewBookletError(domain.BookletInternal, "load graduation", err)
	}

	if len(order) == 0 {
		order = a.configuredOrder(g)
	}

	pages, err := a.pages.ListByGraduation(ctx, g.ID)
	if err != nil {
		return nil, domain.NewBookletError(domain.BookletInternal, "load content pages", err)
	}
	slices.SortStableFunc(pages, func(x, y *domain.ContentPage) int {
		return x.CreatedAt.Compare(y.CreatedAt)
	})

	roster, err := a.students.ListByGraduation(ctx, g.ID)
	if err != nil {
		return nil, domain.NewBookletError(domain.BookletInternal, "load students", err)
	}
	withPDF := make([]*domain.Student, 0, len(roster))
	for _, s := range roster {
		if s.HasPDF() {
			withPDF = append(withPDF, s)
		}
	}
	if len(withPDF) == 0 {
		return nil, domain.NewBookletError(domain.BookletNoStudentPDFs,
			"no student has uploaded a PDF yet", nil)
	}

	log := a.log.With(slog.String("graduation_id", g.ID))
	color := g.Config.PrimaryColor

	cover, err := a.cover(ctx, log, g, req.CustomCoverURL)
	if err != nil {
		return nil, domain.NewBookletError(domain.BookletInternal, "render cover", err)
	}
	parts := []part{cover}

	res = &Result{StudentCount: len(roster), SkippedStudents: []string{}}
	studentsSection := false

	for _, section := range order {
		switch section {
		case domain.SectionStudents:
			studentsSection = true
			merged, skipped, err := a.studentParts(ctx, log, withPDF)
			if err != nil {
				return nil, domain.NewBookletError(domain.BookletInternal, "fetch student pdfs", err)
			}
			parts = append(parts, merged...)
			res.ProcessedStudents += len(merged)
			res.SkippedStudents = append(res.SkippedStudents, skipped...)
		default:
			rendered, err := a.contentSection(ctx, log, section, pages, color)
			if err != nil {
				return nil, domain.NewBookletError(domain.BookletInternal, "render "+section.String(), err)
			}
			parts = append(parts, rendered...)
		}
	}

	if studentsSection && res.ProcessedStudents == 0 {
		return nil, domain.NewBookletError(domain.BookletNoPDFsMerged,
			fmt.Sprintf("none of the %d student PDFs could be merged", len(withPDF)), nil)
	}

	raw := make([][]byte, len(parts))
	for i, p := range parts {
		raw[i] = p.data
		res.PageCount += p.pages
	}

	merged, err := a.engine.Merge(raw)
	if err != nil {
		return nil, domain.NewBookletError(domain.BookletInternal, "merge", err)
	}
	res.SizeBytes = int64(len(merged))
	if res.SizeBytes > a.cfg.MaxOutputBytes {
		return nil, domain.NewBookletError(domain.BookletTooLarge,
			fmt.Sprintf("booklet is %d bytes, limit is %d", res.SizeBytes, a.cfg.MaxOutputBytes), nil)
	}

	url, err := a.store.Upload(ctx, a.objectKey(g.ID), merged, pdfContentType)
	if err != nil {
		return nil, domain.NewBookletError(domain.BookletUploadFailed, "upload booklet", err)
	}

	now := a.now()
	res.BookletURL = versioned(url, now)

	stats := domain.BookletStats{
		PageCount:         res.PageCount,
		StudentsProcessed: res.ProcessedStudents,
		StudentsTotal:     res.StudentCount,
		SizeBytes:         res.SizeBytes,
	}
	if err := a.graduations.SaveBookletResult(ctx, g.ID, res.BookletURL, now, stats); err != nil {
		log.WarnContext(ctx, "persist booklet result", slog.String("error", err.Error()))
	} else if a.broker != nil {
		if err := a.broker.Publish(ctx, g.ID, domain.ChangeBooklet); err != nil {
			log.WarnContext(ctx, "publish booklet change", slog.String("error", err.Error()))
		}
	}

	log.InfoContext(ctx, "booklet generated",
		slog.Int("pages", res.PageCount),
		slog.Int("students_processed", res.ProcessedStudents),
		slog.Int("students_total", res.StudentCount),
		slog.Int("students_skipped", len(res.SkippedStudents)),
		slog.Int64("bytes", res.SizeBytes),
	)
	return res, nil
}

func (a *Assembler) configuredOrder(g *domain.Graduation) []domain.Section {
	if len(g.Config.PageOrder) == 0 {
		return a.defaultOrder
	}
	raw := make([]string, len(g.Config.PageOrder))
	for i, s := range g.Config.PageOrder {
		raw[i] = s.String()
	}
	order, err := domain.ParseSections(raw)
	if err != nil {
		a.log.Warn("ignoring invalid stored page order",
			slog.String("graduation_id", g.ID),
			slog.String("error", err.Error()),
		)
		return a.defaultOrder
	}
	return order
}

// objectKey is deterministic per graduation so a new generation replaces the
// previous object.
func (a *Assembler) objectKey(graduationID string) string {
	return path.Join(a.cfg.KeyPrefix, graduationID, "booklet.pdf")
}

// versioned appends a cache-busting version to the stable object URL.
func versioned(url string, at time.Time) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "v=" + strconv.FormatInt(at.Unix(), 10)
}
