// Package pdf renders booklet pages with fpdf and validates and merges PDF
// documents with pdfcpu.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// A4 portrait, millimetres.
const (
	pageW  = 210.0
	pageH  = 297.0
	margin = 20.0

	bodyFontSize = 11.0
	lineHeight   = 5.5
)

// DefaultThemeColor is used when a graduation has no valid primary colour.
const DefaultThemeColor = "#1E3A8A"

type rgb struct{ r, g, b int }

// parseColor accepts #RRGGBB or #RGB. ok is false for anything else.
func parseColor(s string) (rgb, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, true
}

func themeColor(s string) rgb {
	if c, ok := parseColor(s); ok {
		return c
	}
	c, _ := parseColor(DefaultThemeColor)
	return c
}

// Renderer produces single-page PDFs for the generated parts of a booklet.
type Renderer struct {
	charsPerLine int
}

// NewRenderer creates a Renderer wrapping body text at charsPerLine characters.
func NewRenderer(charsPerLine int) *Renderer {
	return &Renderer{charsPerLine: charsPerLine}
}

// CoverInput is the data printed on the generated cover.
type CoverInput struct {
	SchoolName string
	Year       int
	Label      string
	Color      string
}

// ContentInput is one message or speech page.
type ContentInput struct {
	Title  string
	Author string
	Body   string
	// Photo is an optional JPEG already sized by PreparePhoto.
	Photo []byte
	Color string
}

func newDoc() (*fpdf.Fpdf, func(string) string) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(margin, margin, margin)
	doc.AddPage()
	return doc, doc.UnicodeTranslatorFromDescriptor("")
}

func output(doc *fpdf.Fpdf, what string) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", what, err)
	}
	return buf.Bytes(), nil
}

// Cover renders a full-bleed cover in the theme colour with the school name,
// class year and label.
func (r *Renderer) Cover(in CoverInput) ([]byte, error) {
	doc, tr := newDoc()
	c := themeColor(in.Color)

	doc.SetFillColor(c.r, c.g, c.b)
	doc.Rect(0, 0, pageW, pageH, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 30)
	doc.SetXY(margin, 100)
	doc.MultiCell(pageW-2*margin, 13, tr(in.SchoolName), "", "C", false)

	doc.SetFont("Helvetica", "", 22)
	doc.SetX(margin)
	doc.CellFormat(pageW-2*margin, 16, tr("Class of "+strconv.Itoa(in.Year)), "", 1, "C", false, 0, "")

	doc.SetDrawColor(255, 255, 255)
	doc.SetLineWidth(0.6)
	doc.Line(pageW/2-30, doc.GetY()+4, pageW/2+30, doc.GetY()+4)

	doc.SetFont("Helvetica", "I", 16)
	doc.SetXY(margin, doc.GetY()+10)
	doc.CellFormat(pageW-2*margin, 10, tr(in.Label), "", 1, "C", false, 0, "")

	return output(doc, "cover")
}

// SectionTitle renders a divider page for a booklet section.
func (r *Renderer) SectionTitle(title, color string) ([]byte, error) {
	doc, tr := newDoc()
	c := themeColor(color)

	doc.SetFillColor(c.r, c.g, c.b)
	doc.Rect(0, pageH/2-25, pageW, 50, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 32)
	doc.SetXY(margin, pageH/2-8)
	doc.CellFormat(pageW-2*margin, 16, tr(title), "", 0, "C", false, 0, "")

	return output(doc, "section title")
}

// ContentPage renders one content item on exactly one page. Body text is
// wrapped at a fixed character width and truncated when it would overflow.
func (r *Renderer) ContentPage(in ContentInput) ([]byte, error) {
	doc, tr := newDoc()
	c := themeColor(in.Color)

	doc.SetFillColor(c.r, c.g, c.b)
	doc.Rect(0, 0, pageW, 8, "F")

	y := margin + 4.0

	if len(in.Photo) > 0 {
		const size = 40.0
		name := "author-photo"
		opts := fpdf.ImageOptions{ImageType: "JPG"}
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(in.Photo))
		if doc.Ok() {
			doc.ImageOptions(name, pageW/2-size/2, y, size, size, false, opts, 0, "")
			y += size + 6
		} else {
			// Undecodable photo: render the page without it.
			doc.ClearError()
		}
	}

	doc.SetTextColor(c.r, c.g, c.b)
	doc.SetFont("Helvetica", "B", 20)
	doc.SetXY(margin, y)
	doc.MultiCell(pageW-2*margin, 9, tr(in.Title), "", "C", false)
	y = doc.GetY()

	if in.Author != "" {
		doc.SetTextColor(90, 90, 90)
		doc.SetFont("Helvetica", "I", 12)
		doc.SetXY(margin, y+1)
		doc.CellFormat(pageW-2*margin, 7, tr(in.Author), "", 1, "C", false, 0, "")
		y = doc.GetY()
	}

	y += 6
	maxLines := int((pageH - margin - y) / lineHeight)
	lines := truncateLines(wrapText(in.Body, r.charsPerLine), maxLines)

	doc.SetTextColor(30, 30, 30)
	doc.SetFont("Helvetica", "", bodyFontSize)
	for _, line := range lines {
		doc.SetXY(margin, y)
		doc.CellFormat(pageW-2*margin, lineHeight, tr(line), "", 0, "L", false, 0, "")
		y += lineHeight
	}

	return output(doc, "content page")
}
