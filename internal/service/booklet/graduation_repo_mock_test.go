package booklet

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

var _ graduationRepo = &graduationRepoMock{}

type graduationRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Graduation, error)
	SaveBookletResultFunc func(ctx context.Context, id string, url string, at time.Time, stats domain.BookletStats) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
		SaveBookletResult []struct {
			Ctx   context.Context
			ID    string
			URL   string
			At    time.Time
			Stats domain.BookletStats
		}
	}
	lockGetByID           sync.RWMutex
	lockSaveBookletResult sync.RWMutex
}

func (mock *graduationRepoMock) GetByID(ctx context.Context, id string) (*domain.Graduation, error) {
	if mock.GetByIDFunc == nil {
		panic("graduationRepoMock.GetByIDFunc: method is nil but graduationRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *graduationRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *graduationRepoMock) SaveBookletResult(ctx context.Context, id string, url string, at time.Time, stats domain.BookletStats) error {
	if mock.SaveBookletResultFunc == nil {
		panic("graduationRepoMock.SaveBookletResultFunc: method is nil but graduationRepo.SaveBookletResult was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    string
		URL   string
		At    time.Time
		Stats domain.BookletStats
	}{Ctx: ctx, ID: id, URL: url, At: at, Stats: stats}
	mock.lockSaveBookletResult.Lock()
	mock.calls.SaveBookletResult = append(mock.calls.SaveBookletResult, callInfo)
	mock.lockSaveBookletResult.Unlock()
	return mock.SaveBookletResultFunc(ctx, id, url, at, stats)
}

func (mock *graduationRepoMock) SaveBookletResultCalls() []struct {
	Ctx   context.Context
	ID    string
	URL   string
	At    time.Time
	Stats domain.BookletStats
} {
	mock.lockSaveBookletResult.RLock()
	calls := mock.calls.SaveBookletResult
	mock.lockSaveBookletResult.RUnlock()
	return calls
}
