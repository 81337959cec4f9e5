package roster

import (
	"context"
	"sort"
	"sync"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

type fakeGraduations map[string]*domain.Graduation

func (f fakeGraduations) GetByID(ctx context.Context, id string) (*domain.Graduation, error) {
	g, ok := f[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

// memStudents is an in-memory student repository.
type memStudents struct {
	mu   sync.Mutex
	rows map[string]*domain.Student
	next int
}

func newMemStudents(list ...*domain.Student) *memStudents {
	m := &memStudents{rows: map[string]*domain.Student{}}
	for _, s := range list {
		_, _ = m.Create(context.Background(), s)
	}
	return m
}

func (m *memStudents) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	if cp.Order == nil {
		n := m.next
		cp.Order = &n
	}
	m.next++
	m.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStudents) GetByID(ctx context.Context, graduationID, id string) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok || s.GraduationID != graduationID {
		return nil, domain.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (m *memStudents) GetByLinkID(ctx context.Context, linkID string) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.LinkID != nil && *s.LinkID == linkID {
			out := *s
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStudents) ListByGraduation(ctx context.Context, graduationID string) ([]*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Student
	for _, s := range m.rows {
		if s.GraduationID == graduationID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].Order < *out[j].Order })
	return out, nil
}

func (m *memStudents) Update(ctx context.Context, graduationID, id string, p domain.StudentUpdateParams) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok || s.GraduationID != graduationID {
		return nil, domain.ErrNotFound
	}
	set := func(dst **string, v *string) {
		switch {
		case v == nil:
		case *v == "":
			*dst = nil
		default:
			val := *v
			*dst = &val
		}
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.AccessType != nil {
		s.AccessType = *p.AccessType
	}
	set(&s.PasswordHash, p.PasswordHash)
	set(&s.LinkID, p.LinkID)
	set(&s.ProfilePhotoURL, p.ProfilePhotoURL)
	set(&s.CoverPhotoURL, p.CoverPhotoURL)
	set(&s.PDFURL, p.PDFURL)
	set(&s.Speech, p.Speech)
	out := *s
	return &out, nil
}

func (m *memStudents) Delete(ctx context.Context, graduationID, id string) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok || s.GraduationID != graduationID {
		return nil, domain.ErrNotFound
	}
	delete(m.rows, id)
	return s, nil
}

func (m *memStudents) SetOrder(ctx context.Context, graduationID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, id := range ids {
		n := i
		m.rows[id].Order = &n
	}
	return nil
}

// memPages is an in-memory content page repository.
type memPages struct {
	mu   sync.Mutex
	rows map[string]*domain.ContentPage
}

func newMemPages(list ...*domain.ContentPage) *memPages {
	m := &memPages{rows: map[string]*domain.ContentPage{}}
	for _, p := range list {
		_, _ = m.Create(context.Background(), p)
	}
	return m
}

func (m *memPages) Create(ctx context.Context, p *domain.ContentPage) (*domain.ContentPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memPages) GetByID(ctx context.Context, graduationID, id string) (*domain.ContentPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || p.GraduationID != graduationID {
		return nil, domain.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *memPages) ListByGraduation(ctx context.Context, graduationID string) ([]*domain.ContentPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ContentPage
	for _, p := range m.rows {
		if p.GraduationID == graduationID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memPages) Update(ctx context.Context, graduationID, id string, params domain.ContentPageUpdateParams) (*domain.ContentPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || p.GraduationID != graduationID {
		return nil, domain.ErrNotFound
	}
	if params.Title != nil {
		p.Title = *params.Title
	}
	if params.Images != nil {
		p.Images = *params.Images
	}
	if params.VideoURL != nil {
		v := *params.VideoURL
		p.VideoURL = &v
	}
	if params.Type != nil {
		p.Type = *params.Type
	}
	out := *p
	return &out, nil
}

func (m *memPages) Delete(ctx context.Context, graduationID, id string) (*domain.ContentPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || p.GraduationID != graduationID {
		return nil, domain.ErrNotFound
	}
	delete(m.rows, id)
	return p, nil
}

type markCall struct {
	tag  string
	urls []string
}

type fakeAssets struct {
	mu    sync.Mutex
	calls []markCall
	err   error
}

func (f *fakeAssets) MarkForDeletion(ctx context.Context, contextTag string, urls ...string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, markCall{tag: contextTag, urls: urls})
	return int64(len(urls)), f.err
}

type fakeBroker struct {
	mu     sync.Mutex
	events []domain.ChangeKind
}

func (f *fakeBroker) Publish(ctx context.Context, graduationID string, kind domain.ChangeKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, kind)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
