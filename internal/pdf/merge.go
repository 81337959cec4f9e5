package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoPages is returned for documents that parse but contain no pages.
var ErrNoPages = errors.New("pdf has no pages")

// ErrNothingToMerge is returned by Merge when called without parts.
var ErrNothingToMerge = errors.New("no pdf parts to merge")

// Engine validates and merges PDF documents.
type Engine struct {
	conf *model.Configuration
}

// NewEngine creates an Engine with relaxed validation, which accepts the
// slightly malformed files produced by many scanners and office suites.
func NewEngine() *Engine {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Engine{conf: conf}
}

// PageCount parses data and returns its page count. Unparseable data and
// documents without pages are errors.
func (e *Engine) PageCount(data []byte) (n int, err error) {
	defer func() {
		// pdfcpu panics on some corrupt inputs.
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("parse pdf: %v", r)
		}
	}()

	n, err = api.PageCount(bytes.NewReader(data), e.conf)
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	if n < 1 {
		return 0, ErrNoPages
	}
	return n, nil
}

// Merge concatenates parts in order. A single part is returned unchanged.
func (e *Engine) Merge(parts [][]byte) (out []byte, err error) {
	switch len(parts) {
	case 0:
		return nil, ErrNothingToMerge
	case 1:
		return parts[0], nil
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("merge pdf: %v", r)
		}
	}()

	readers := make([]io.ReadSeeker, len(parts))
	for i, p := range parts {
		readers[i] = bytes.NewReader(p)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, e.conf); err != nil {
		return nil, fmt.Errorf("merge pdf: %w", err)
	}
	return buf.Bytes(), nil
}
