package booklet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/pdf"
)

// Fake documents are "PDF|<label>|<pages>". Merge joins them with newlines so
// tests can read the merged order back.

func fakeDoc(label string, pages int) []byte {
	return []byte("PDF|" + label + "|" + strconv.Itoa(pages))
}

func mergedLabels(data []byte) []string {
	var labels []string
	for _, doc := range strings.Split(string(data), "\n") {
		fields := strings.Split(doc, "|")
		if len(fields) == 3 {
			labels = append(labels, fields[1])
		}
	}
	return labels
}

type fakeEngine struct{}

func (fakeEngine) PageCount(data []byte) (int, error) {
	fields := strings.Split(string(data), "|")
	if len(fields) != 3 || fields[0] != "PDF" {
		return 0, errors.New("parse pdf: not a pdf")
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	if n < 1 {
		return 0, pdf.ErrNoPages
	}
	return n, nil
}

func (fakeEngine) Merge(parts [][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, pdf.ErrNothingToMerge
	}
	docs := make([]string, len(parts))
	for i, p := range parts {
		docs[i] = string(p)
	}
	return []byte(strings.Join(docs, "\n")), nil
}

type fakeRenderer struct{}

func (fakeRenderer) Cover(in pdf.CoverInput) ([]byte, error) {
	return fakeDoc("cover:"+in.SchoolName, 1), nil
}

func (fakeRenderer) SectionTitle(title, color string) ([]byte, error) {
	return fakeDoc("title:"+title, 1), nil
}

func (fakeRenderer) ContentPage(in pdf.ContentInput) ([]byte, error) {
	return fakeDoc("page:"+in.Title, 1), nil
}

type fetchResponse struct {
	data  []byte
	err   error
	delay time.Duration
}

// fakeFetcher serves canned responses and records the peak number of
// concurrent fetches.
type fakeFetcher struct {
	responses map[string]fetchResponse

	mu       sync.Mutex
	inFlight int
	peak     int
	urls     []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, maxBytes int64) ([]byte, error) {
	f.mu.Lock()
	f.inFlight++
	f.peak = max(f.peak, f.inFlight)
	f.urls = append(f.urls, url)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	r, ok := f.responses[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.data, r.err
}

func (f *fakeFetcher) fetched(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.urls {
		if u == url {
			return true
		}
	}
	return false
}

type fakeStudents struct {
	list []*domain.Student
	err  error
}

func (f fakeStudents) ListByGraduation(ctx context.Context, graduationID string) ([]*domain.Student, error) {
	return f.list, f.err
}

type fakePages struct {
	list []*domain.ContentPage
	err  error
}

func (f fakePages) ListByGraduation(ctx context.Context, graduationID string) ([]*domain.ContentPage, error) {
	return f.list, f.err
}

type fakeBroker struct {
	mu    sync.Mutex
	kinds []domain.ChangeKind
}

func (b *fakeBroker) Publish(ctx context.Context, graduationID string, kind domain.ChangeKind) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kinds = append(b.kinds, kind)
	return nil
}
