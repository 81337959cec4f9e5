package collab

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

var _ graduationStore = &graduationStoreMock{}

type graduationStoreMock struct {
	GetUpdatedAtFunc     func(ctx context.Context, id string) (time.Time, error)
	SetHeartbeatFunc     func(ctx context.Context, id string, editorID string, at time.Time) error
	RemoveHeartbeatFunc  func(ctx context.Context, id string, editorID string) error
	GetActiveEditorsFunc func(ctx context.Context, id string) (map[string]time.Time, error)
	GetLocksFunc         func(ctx context.Context, id string) (map[string]domain.FieldLock, error)
	AcquireLockFunc      func(ctx context.Context, id string, path string, lock domain.FieldLock, staleBefore time.Time) (domain.FieldLock, bool, error)
	ReleaseLockFunc      func(ctx context.Context, id string, path string, editorID string) (bool, error)
	ForceReleaseLockFunc func(ctx context.Context, id string, path string) error
	PruneLocksFunc       func(ctx context.Context, id string, staleBefore time.Time) (int, error)
	PruneAllStaleFunc    func(ctx context.Context, staleBefore time.Time) (int64, error)

	calls struct {
		GetUpdatedAt []struct {
			Ctx context.Context
			ID  string
		}
		SetHeartbeat []struct {
			Ctx      context.Context
			ID       string
			EditorID string
			At       time.Time
		}
		RemoveHeartbeat []struct {
			Ctx      context.Context
			ID       string
			EditorID string
		}
		GetActiveEditors []struct {
			Ctx context.Context
			ID  string
		}
		GetLocks []struct {
			Ctx context.Context
			ID  string
		}
		AcquireLock []struct {
			Ctx         context.Context
			ID          string
			Path        string
			Lock        domain.FieldLock
			StaleBefore time.Time
		}
		ReleaseLock []struct {
			Ctx      context.Context
			ID       string
			Path     string
			EditorID string
		}
		ForceReleaseLock []struct {
			Ctx  context.Context
			ID   string
			Path string
		}
		PruneLocks []struct {
			Ctx         context.Context
			ID          string
			StaleBefore time.Time
		}
		PruneAllStale []struct {
			Ctx         context.Context
			StaleBefore time.Time
		}
	}
	lockGetUpdatedAt     sync.RWMutex
	lockSetHeartbeat     sync.RWMutex
	lockRemoveHeartbeat  sync.RWMutex
	lockGetActiveEditors sync.RWMutex
	lockGetLocks         sync.RWMutex
	lockAcquireLock      sync.RWMutex
	lockReleaseLock      sync.RWMutex
	lockForceReleaseLock sync.RWMutex
	lockPruneLocks       sync.RWMutex
	lockPruneAllStale    sync.RWMutex
}

func (mock *graduationStoreMock) GetUpdatedAt(ctx context.Context, id string) (time.Time, error) {
	if mock.GetUpdatedAtFunc == nil {
		panic("graduationStoreMock.GetUpdatedAtFunc: method is nil but graduationStore.GetUpdatedAt was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGetUpdatedAt.Lock()
	mock.calls.GetUpdatedAt = append(mock.calls.GetUpdatedAt, callInfo)
	mock.lockGetUpdatedAt.Unlock()
	return mock.GetUpdatedAtFunc(ctx, id)
}

func (mock *graduationStoreMock) GetUpdatedAtCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetUpdatedAt.RLock()
	calls := mock.calls.GetUpdatedAt
	mock.lockGetUpdatedAt.RUnlock()
	return calls
}

func (mock *graduationStoreMock) SetHeartbeat(ctx context.Context, id string, editorID string, at time.Time) error {
	if mock.SetHeartbeatFunc == nil {
		panic("graduationStoreMock.SetHeartbeatFunc: method is nil but graduationStore.SetHeartbeat was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       string
		EditorID string
		At       time.Time
	}{Ctx: ctx, ID: id, EditorID: editorID, At: at}
	mock.lockSetHeartbeat.Lock()
	mock.calls.SetHeartbeat = append(mock.calls.SetHeartbeat, callInfo)
	mock.lockSetHeartbeat.Unlock()
	return mock.SetHeartbeatFunc(ctx, id, editorID, at)
}

func (mock *graduationStoreMock) SetHeartbeatCalls() []struct {
	Ctx      context.Context
	ID       string
	EditorID string
	At       time.Time
} {
	mock.lockSetHeartbeat.RLock()
	calls := mock.calls.SetHeartbeat
	mock.lockSetHeartbeat.RUnlock()
	return calls
}

func (mock *graduationStoreMock) RemoveHeartbeat(ctx context.Context, id string, editorID string) error {
	if mock.RemoveHeartbeatFunc == nil {
		panic("graduationStoreMock.RemoveHeartbeatFunc: method is nil but graduationStore.RemoveHeartbeat was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       string
		EditorID string
	}{Ctx: ctx, ID: id, EditorID: editorID}
	mock.lockRemoveHeartbeat.Lock()
	mock.calls.RemoveHeartbeat = append(mock.calls.RemoveHeartbeat, callInfo)
	mock.lockRemoveHeartbeat.Unlock()
	return mock.RemoveHeartbeatFunc(ctx, id, editorID)
}

func (mock *graduationStoreMock) RemoveHeartbeatCalls() []struct {
	Ctx      context.Context
	ID       string
	EditorID string
} {
	mock.lockRemoveHeartbeat.RLock()
	calls := mock.calls.RemoveHeartbeat
	mock.lockRemoveHeartbeat.RUnlock()
	return calls
}

func (mock *graduationStoreMock) GetActiveEditors(ctx context.Context, id string) (map[string]time.Time, error) {
	if mock.GetActiveEditorsFunc == nil {
		panic("graduationStoreMock.GetActiveEditorsFunc: method is nil but graduationStore.GetActiveEditors was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGetActiveEditors.Lock()
	mock.calls.GetActiveEditors = append(mock.calls.GetActiveEditors, callInfo)
	mock.lockGetActiveEditors.Unlock()
	return mock.GetActiveEditorsFunc(ctx, id)
}

func (mock *graduationStoreMock) GetActiveEditorsCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetActiveEditors.RLock()
	calls := mock.calls.GetActiveEditors
	mock.lockGetActiveEditors.RUnlock()
	return calls
}

func (mock *graduationStoreMock) GetLocks(ctx context.Context, id string) (map[string]domain.FieldLock, error) {
	if mock.GetLocksFunc == nil {
		panic("graduationStoreMock.GetLocksFunc: method is nil but graduationStore.GetLocks was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGetLocks.Lock()
	mock.calls.GetLocks = append(mock.calls.GetLocks, callInfo)
	mock.lockGetLocks.Unlock()
	return mock.GetLocksFunc(ctx, id)
}

func (mock *graduationStoreMock) GetLocksCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetLocks.RLock()
	calls := mock.calls.GetLocks
	mock.lockGetLocks.RUnlock()
	return calls
}

func (mock *graduationStoreMock) AcquireLock(ctx context.Context, id string, path string, lock domain.FieldLock, staleBefore time.Time) (domain.FieldLock, bool, error) {
	if mock.AcquireLockFunc == nil {
		panic("graduationStoreMock.AcquireLockFunc: method is nil but graduationStore.AcquireLock was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ID          string
		Path        string
		Lock        domain.FieldLock
		StaleBefore time.Time
	}{Ctx: ctx, ID: id, Path: path, Lock: lock, StaleBefore: staleBefore}
	mock.lockAcquireLock.Lock()
	mock.calls.AcquireLock = append(mock.calls.AcquireLock, callInfo)
	mock.lockAcquireLock.Unlock()
	return mock.AcquireLockFunc(ctx, id, path, lock, staleBefore)
}

func (mock *graduationStoreMock) AcquireLockCalls() []struct {
	Ctx         context.Context
	ID          string
	Path        string
	Lock        domain.FieldLock
	StaleBefore time.Time
} {
	mock.lockAcquireLock.RLock()
	calls := mock.calls.AcquireLock
	mock.lockAcquireLock.RUnlock()
	return calls
}

func (mock *graduationStoreMock) ReleaseLock(ctx context.Context, id string, path string, editorID string) (bool, error) {
	if mock.ReleaseLockFunc == nil {
		panic("graduationStoreMock.ReleaseLockFunc: method is nil but graduationStore.ReleaseLock was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       string
		Path     string
		EditorID string
	}{Ctx: ctx, ID: id, Path: path, EditorID: editorID}
	mock.lockReleaseLock.Lock()
	mock.calls.ReleaseLock = append(mock.calls.ReleaseLock, callInfo)
	mock.lockReleaseLock.Unlock()
	return mock.ReleaseLockFunc(ctx, id, path, editorID)
}

func (mock *graduationStoreMock) ReleaseLockCalls() []struct {
	Ctx      context.Context
	ID       string
	Path     string
	EditorID string
} {
	mock.lockReleaseLock.RLock()
	calls := mock.calls.ReleaseLock
	mock.lockReleaseLock.RUnlock()
	return calls
}

func (mock *graduationStoreMock) ForceReleaseLock(ctx context.Context, id string, path string) error {
	if mock.ForceReleaseLockFunc == nil {
		panic("graduationStoreMock.ForceReleaseLockFunc: method is nil but graduationStore.ForceReleaseLock was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   string
		Path string
	}{Ctx: ctx, ID: id, Path: path}
	mock.lockForceReleaseLock.Lock()
	mock.calls.ForceReleaseLock = append(mock.calls.ForceReleaseLock, callInfo)
	mock.lockForceReleaseLock.Unlock()
	return mock.ForceReleaseLockFunc(ctx, id, path)
}

func (mock *graduationStoreMock) ForceReleaseLockCalls() []struct {
	Ctx  context.Context
	ID   string
	Path string
} {
	mock.lockForceReleaseLock.RLock()
	calls := mock.calls.ForceReleaseLock
	mock.lockForceReleaseLock.RUnlock()
	return calls
}

func (mock *graduationStoreMock) PruneLocks(ctx context.Context, id string, staleBefore time.Time) (int, error) {
	if mock.PruneLocksFunc == nil {
		panic("graduationStoreMock.PruneLocksFunc: method is nil but graduationStore.PruneLocks was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ID          string
		StaleBefore time.Time
	}{Ctx: ctx, ID: id, StaleBefore: staleBefore}
	mock.lockPruneLocks.Lock()
	mock.calls.PruneLocks = append(mock.calls.PruneLocks, callInfo)
	mock.lockPruneLocks.Unlock()
	return mock.PruneLocksFunc(ctx, id, staleBefore)
}

func (mock *graduationStoreMock) PruneLocksCalls() []struct {
	Ctx         context.Context
	ID          string
	StaleBefore time.Time
} {
	mock.lockPruneLocks.RLock()
	calls := mock.calls.PruneLocks
	mock.lockPruneLocks.RUnlock()
	return calls
}

func (mock *graduationStoreMock) PruneAllStale(ctx context.Context, staleBefore time.Time) (int64, error) {
	if mock.PruneAllStaleFunc == nil {
		panic("graduationStoreMock.PruneAllStaleFunc: method is nil but graduationStore.PruneAllStale was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		StaleBefore time.Time
	}{Ctx: ctx, StaleBefore: staleBefore}
	mock.lockPruneAllStale.Lock()
	mock.calls.PruneAllStale = append(mock.calls.PruneAllStale, callInfo)
	mock.lockPruneAllStale.Unlock()
	return mock.PruneAllStaleFunc(ctx, staleBefore)
}

func (mock *graduationStoreMock) PruneAllStaleCalls() []struct {
	Ctx         context.Context
	StaleBefore time.Time
} {
	mock.lockPruneAllStale.RLock()
	calls := mock.calls.PruneAllStale
	mock.lockPruneAllStale.RUnlock()
	return calls
}
