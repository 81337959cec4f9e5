package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/gradbook-backend/internal/service/booklet"
)

var _ bookletGenerator = &bookletGeneratorMock{}

type bookletGeneratorMock struct {
	GenerateFunc func(ctx context.Context, req booklet.Request) (*booklet.Result, error)

	calls struct {
		Generate []struct {
			Ctx context.Context
			Req booklet.Request
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *bookletGeneratorMock) Generate(ctx context.Context, req booklet.Request) (*booklet.Result, error) {
	if mock.GenerateFunc == nil {
		panic("bookletGeneratorMock.GenerateFunc: method is nil but bookletGenerator.Generate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req booklet.Request
	}{Ctx: ctx, Req: req}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, req)
}

func (mock *bookletGeneratorMock) GenerateCalls() []struct {
	Ctx context.Context
	Req booklet.Request
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
