package rest

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/graduation"
)

var _ graduationService = &graduationServiceMock{}

type graduationServiceMock struct {
	CreateFunc                 func(ctx context.Context, input graduation.CreateInput) (*domain.Graduation, error)
	GetFunc                    func(ctx context.Context, id string) (*domain.Graduation, error)
	ListMineFunc               func(ctx context.Context) ([]*domain.Graduation, error)
	UpdateFunc                 func(ctx context.Context, input graduation.UpdateInput) (*domain.Graduation, error)
	DeleteFunc                 func(ctx context.Context, id string) error
	AddEditorFunc              func(ctx context.Context, id string, editorID string) error
	RemoveEditorFunc           func(ctx context.Context, id string, editorID string) error
	SetBookletAvailabilityFunc func(ctx context.Context, id string, at *time.Time) (*domain.Graduation, error)
	SetSitePasswordFunc        func(ctx context.Context, id string, password string) error
	VerifySitePasswordFunc     func(ctx context.Context, id string, password string) (bool, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input graduation.CreateInput
		}
		Get []struct {
			Ctx context.Context
			ID  string
		}
		ListMine []struct {
			Ctx context.Context
		}
		Update []struct {
			Ctx   context.Context
			Input graduation.UpdateInput
		}
		Delete []struct {
			Ctx context.Context
			ID  string
		}
		AddEditor []struct {
			Ctx      context.Context
			ID       string
			EditorID string
		}
		RemoveEditor []struct {
			Ctx      context.Context
			ID       string
			EditorID string
		}
		SetBookletAvailability []struct {
			Ctx context.Context
			ID  string
			At  *time.Time
		}
		SetSitePassword []struct {
			Ctx      context.Context
			ID       string
			Password string
		}
		VerifySitePassword []struct {
			Ctx      context.Context
			ID       string
			Password string
		}
	}
	lockCreate                 sync.RWMutex
	lockGet                    sync.RWMutex
	lockListMine               sync.RWMutex
	lockUpdate                 sync.RWMutex
	lockDelete                 sync.RWMutex
	lockAddEditor              sync.RWMutex
	lockRemoveEditor           sync.RWMutex
	lockSetBookletAvailability sync.RWMutex
	lockSetSitePassword        sync.RWMutex
	lockVerifySitePassword     sync.RWMutex
}

func (mock *graduationServiceMock) Create(ctx context.Context, input graduation.CreateInput) (*domain.Graduation, error) {
	if mock.CreateFunc == nil {
		panic("graduationServiceMock.CreateFunc: method is nil but graduationService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input graduation.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *graduationServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input graduation.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *graduationServiceMock) Get(ctx context.Context, id string) (*domain.Graduation, error) {
	if mock.GetFunc == nil {
		panic("graduationServiceMock.GetFunc: method is nil but graduationService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *graduationServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *graduationServiceMock) ListMine(ctx context.Context) ([]*domain.Graduation, error) {
	if mock.ListMineFunc == nil {
		panic("graduationServiceMock.ListMineFunc: method is nil but graduationService.ListMine was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListMine.Lock()
	mock.calls.ListMine = append(mock.calls.ListMine, callInfo)
	mock.lockListMine.Unlock()
	return mock.ListMineFunc(ctx)
}

func (mock *graduationServiceMock) ListMineCalls() []struct {
	Ctx context.Context
} {
	mock.lockListMine.RLock()
	calls := mock.calls.ListMine
	mock.lockListMine.RUnlock()
	return calls
}

func (mock *graduationServiceMock) Update(ctx context.Context, input graduation.UpdateInput) (*domain.Graduation, error) {
	if mock.UpdateFunc == nil {
		panic("graduationServiceMock.UpdateFunc: method is nil but graduationService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input graduation.UpdateInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *graduationServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input graduation.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *graduationServiceMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("graduationServiceMock.DeleteFunc: method is nil but graduationService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *graduationServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *graduationServiceMock) AddEditor(ctx context.Context, id string, editorID string) error {
	if mock.AddEditorFunc == nil {
		panic("graduationServiceMock.AddEditorFunc: method is nil but graduationService.AddEditor was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       string
		EditorID string
	}{Ctx: ctx, ID: id, EditorID: editorID}
	mock.lockAddEditor.Lock()
	mock.calls.AddEditor = append(mock.calls.AddEditor, callInfo)
	mock.lockAddEditor.Unlock()
	return mock.AddEditorFunc(ctx, id, editorID)
}

func (mock *graduationServiceMock) AddEditorCalls() []struct {
	Ctx      context.Context
	ID       string
	EditorID string
} {
	mock.lockAddEditor.RLock()
	calls := mock.calls.AddEditor
	mock.lockAddEditor.RUnlock()
	return calls
}

func (mock *graduationServiceMock) RemoveEditor(ctx context.Context, id string, editorID string) error {
	if mock.RemoveEditorFunc == nil {
		panic("graduationServiceMock.RemoveEditorFunc: method is nil but graduationService.RemoveEditor was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       string
		EditorID string
	}{Ctx: ctx, ID: id, EditorID: editorID}
	mock.lockRemoveEditor.Lock()
	mock.calls.RemoveEditor = append(mock.calls.RemoveEditor, callInfo)
	mock.lockRemoveEditor.Unlock()
	return mock.RemoveEditorFunc(ctx, id, editorID)
}

func (mock *graduationServiceMock) RemoveEditorCalls() []struct {
	Ctx      context.Context
	ID       string
	EditorID string
} {
	mock.lockRemoveEditor.RLock()
	calls := mock.calls.RemoveEditor
	mock.lockRemoveEditor.RUnlock()
	return calls
}

func (mock *graduationServiceMock) SetBookletAvailability(ctx context.Context, id string, at *time.Time) (*domain.Graduation, error) {
	if mock.SetBookletAvailabilityFunc == nil {
		panic("graduationServiceMock.SetBookletAvailabilityFunc: method is nil but graduationService.SetBookletAvailability was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
		At  *time.Time
	}{Ctx: ctx, ID: id, At: at}
	mock.lockSetBookletAvailability.Lock()
	mock.calls.SetBookletAvailability = append(mock.calls.SetBookletAvailability, callInfo)
	mock.lockSetBookletAvailability.Unlock()
	return mock.SetBookletAvailabilityFunc(ctx, id, at)
}

func (mock *graduationServiceMock) SetBookletAvailabilityCalls() []struct {
	Ctx context.Context
	ID  string
	At  *time.Time
} {
	mock.lockSetBookletAvailability.RLock()
	calls := mock.calls.SetBookletAvailability
	mock.lockSetBookletAvailability.RUnlock()
	return calls
}

func (mock *graduationServiceMock) SetSitePassword(ctx context.Context, id string, password string) error {
	if mock.SetSitePasswordFunc == nil {
		panic("graduationServiceMock.SetSitePasswordFunc: method is nil but graduationService.SetSitePassword was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       string
		Password string
	}{Ctx: ctx, ID: id, Password: password}
	mock.lockSetSitePassword.Lock()
	mock.calls.SetSitePassword = append(mock.calls.SetSitePassword, callInfo)
	mock.lockSetSitePassword.Unlock()
	return mock.SetSitePasswordFunc(ctx, id, password)
}

func (mock *graduationServiceMock) SetSitePasswordCalls() []struct {
	Ctx      context.Context
	ID       string
	Password string
} {
	mock.lockSetSitePassword.RLock()
	calls := mock.calls.SetSitePassword
	mock.lockSetSitePassword.RUnlock()
	return calls
}

func (mock *graduationServiceMock) VerifySitePassword(ctx context.Context, id string, password string) (bool, error) {
	if mock.VerifySitePasswordFunc == nil {
		panic("graduationServiceMock.VerifySitePasswordFunc: method is nil but graduationService.VerifySitePassword was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       string
		Password string
	}{Ctx: ctx, ID: id, Password: password}
	mock.lockVerifySitePassword.Lock()
	mock.calls.VerifySitePassword = append(mock.calls.VerifySitePassword, callInfo)
	mock.lockVerifySitePassword.Unlock()
	return mock.VerifySitePasswordFunc(ctx, id, password)
}

func (mock *graduationServiceMock) VerifySitePasswordCalls() []struct {
	Ctx      context.Context
	ID       string
	Password string
} {
	mock.lockVerifySitePassword.RLock()
	calls := mock.calls.VerifySitePassword
	mock.lockVerifySitePassword.RUnlock()
	return calls
}
