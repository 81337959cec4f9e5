package booklet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/pdf"
)

var sectionTitles = map[domain.Section]string{
	domain.SectionMessages: "Messages",
	domain.SectionSpeeches: "Speeches",
}

// cover returns the custom cover when it can be fetched and parsed, and the
// generated text cover otherwise.
func (a *Assembler) cover(ctx context.Context, log *slog.Logger, g *domain.Graduation, customURL string) (part, error) {
	if customURL = strings.TrimSpace(customURL); customURL != "" {
		data, err := a.fetch.Fetch(ctx, customURL, a.cfg.MaxPDFBytes)
		if err == nil {
			var n int
			n, err = a.engine.PageCount(data)
			if err == nil {
				return part{data: data, pages: n}, nil
			}
		}
		log.WarnContext(ctx, "custom cover unusable, using generated cover",
			slog.String("url", customURL),
			slog.String("error", err.Error()),
		)
	}

	data, err := a.render.Cover(pdf.CoverInput{
		SchoolName: g.SchoolName,
		Year:       g.Year,
		Label:      a.cfg.CoverLabel,
		Color:      g.Config.PrimaryColor,
	})
	if err != nil {
		return part{}, err
	}
	return part{data: data, pages: 1}, nil
}

// contentSection renders a title page plus one page per item of section.
// A section without items renders nothing.
func (a *Assembler) contentSection(
	ctx context.Context,
	log *slog.Logger,
	section domain.Section,
	pages []*domain.ContentPage,
	color string,
) ([]part, error) {
	var items []*domain.ContentPage
	for _, p := range pages {
		if s, ok := p.Type.Section(); ok && s == section {
			items = append(items, p)
		}
	}
	if len(items) == 0 {
		return nil, nil
	}

	title, err := a.render.SectionTitle(sectionTitles[section], color)
	if err != nil {
		return nil, err
	}
	out := make([]part, 0, len(items)+1)
	out = append(out, part{data: title, pages: 1})

	for _, p := range items {
		in := pdf.ContentInput{
			Title: p.Title,
			Body:  p.Body,
			Color: color,
			Photo: a.authorPhoto(ctx, log, p),
		}
		if p.Author != nil {
			in.Author = *p.Author
		}
		data, err := a.render.ContentPage(in)
		if err != nil {
			return nil, err
		}
		out = append(out, part{data: data, pages: 1})
	}
	return out, nil
}

// authorPhoto is best-effort: any failure renders the page without a photo.
func (a *Assembler) authorPhoto(ctx context.Context, log *slog.Logger, p *domain.ContentPage) []byte {
	if p.AuthorPhotoURL == nil || *p.AuthorPhotoURL == "" {
		return nil
	}
	raw, err := a.fetch.Fetch(ctx, *p.AuthorPhotoURL, a.cfg.MaxPhotoBytes)
	if err == nil {
		var photo []byte
		photo, err = pdf.PreparePhoto(raw, photoMaxPx)
		if err == nil {
			return photo
		}
	}
	log.WarnContext(ctx, "author photo skipped",
		slog.String("page_id", p.ID),
		slog.String("error", err.Error()),
	)
	return nil
}
