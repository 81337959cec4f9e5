package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/gradbook-backend/internal/service/graduation"
)

var _ bookletGate = &bookletGateMock{}

type bookletGateMock struct {
	CheckEditorFunc     func(ctx context.Context, id string) error
	BookletDownloadFunc func(ctx context.Context, id string) (*graduation.BookletDownload, error)

	calls struct {
		CheckEditor []struct {
			Ctx context.Context
			ID  string
		}
		BookletDownload []struct {
			Ctx context.Context
			ID  string
		}
	}
	lockCheckEditor     sync.RWMutex
	lockBookletDownload sync.RWMutex
}

func (mock *bookletGateMock) CheckEditor(ctx context.Context, id string) error {
	if mock.CheckEditorFunc == nil {
		panic("bookletGateMock.CheckEditorFunc: method is nil but bookletGate.CheckEditor was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockCheckEditor.Lock()
	mock.calls.CheckEditor = append(mock.calls.CheckEditor, callInfo)
	mock.lockCheckEditor.Unlock()
	return mock.CheckEditorFunc(ctx, id)
}

func (mock *bookletGateMock) CheckEditorCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockCheckEditor.RLock()
	calls := mock.calls.CheckEditor
	mock.lockCheckEditor.RUnlock()
	return calls
}

func (mock *bookletGateMock) BookletDownload(ctx context.Context, id string) (*graduation.BookletDownload, error) {
	if mock.BookletDownloadFunc == nil {
		panic("bookletGateMock.BookletDownloadFunc: method is nil but bookletGate.BookletDownload was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockBookletDownload.Lock()
	mock.calls.BookletDownload = append(mock.calls.BookletDownload, callInfo)
	mock.lockBookletDownload.Unlock()
	return mock.BookletDownloadFunc(ctx, id)
}

func (mock *bookletGateMock) BookletDownloadCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockBookletDownload.RLock()
	calls := mock.calls.BookletDownload
	mock.lockBookletDownload.RUnlock()
	return calls
}
