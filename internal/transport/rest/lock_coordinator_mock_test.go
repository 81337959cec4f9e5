package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/collab"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

var _ lockCoordinator = &lockCoordinatorMock{}

type lockCoordinatorMock struct {
	LockFieldFunc        func(ctx context.Context, graduationID string, rawPath string, editor ctxutil.Editor) (collab.LockResult, error)
	UnlockFieldFunc      func(ctx context.Context, graduationID string, rawPath string, editorID string) (bool, error)
	ForceUnlockFieldFunc func(ctx context.Context, graduationID string, rawPath string) error
	ListLocksFunc        func(ctx context.Context, graduationID string) (map[string]domain.FieldLock, error)
	ActiveEditorsFunc    func(ctx context.Context, graduationID string, self string) ([]string, error)
	HeartbeatFunc        func(ctx context.Context, graduationID string, editorID string) error

	calls struct {
		LockField []struct {
			Ctx          context.Context
			GraduationID string
			RawPath      string
			Editor       ctxutil.Editor
		}
		UnlockField []struct {
			Ctx          context.Context
			GraduationID string
			RawPath      string
			EditorID     string
		}
		ForceUnlockField []struct {
			Ctx          context.Context
			GraduationID string
			RawPath      string
		}
		ListLocks []struct {
			Ctx          context.Context
			GraduationID string
		}
		ActiveEditors []struct {
			Ctx          context.Context
			GraduationID string
			Self         string
		}
		Heartbeat []struct {
			Ctx          context.Context
			GraduationID string
			EditorID     string
		}
	}
	lockLockField        sync.RWMutex
	lockUnlockField      sync.RWMutex
	lockForceUnlockField sync.RWMutex
	lockListLocks        sync.RWMutex
	lockActiveEditors    sync.RWMutex
	lockHeartbeat        sync.RWMutex
}

func (mock *lockCoordinatorMock) LockField(ctx context.Context, graduationID string, rawPath string, editor ctxutil.Editor) (collab.LockResult, error) {
	if mock.LockFieldFunc == nil {
		panic("lockCoordinatorMock.LockFieldFunc: method is nil but lockCoordinator.LockField was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		RawPath      string
		Editor       ctxutil.Editor
	}{Ctx: ctx, GraduationID: graduationID, RawPath: rawPath, Editor: editor}
	mock.lockLockField.Lock()
	mock.calls.LockField = append(mock.calls.LockField, callInfo)
	mock.lockLockField.Unlock()
	return mock.LockFieldFunc(ctx, graduationID, rawPath, editor)
}

func (mock *lockCoordinatorMock) LockFieldCalls() []struct {
	Ctx          context.Context
	GraduationID string
	RawPath      string
	Editor       ctxutil.Editor
} {
	mock.lockLockField.RLock()
	calls := mock.calls.LockField
	mock.lockLockField.RUnlock()
	return calls
}

func (mock *lockCoordinatorMock) UnlockField(ctx context.Context, graduationID string, rawPath string, editorID string) (bool, error) {
	if mock.UnlockFieldFunc == nil {
		panic("lockCoordinatorMock.UnlockFieldFunc: method is nil but lockCoordinator.UnlockField was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		RawPath      string
		EditorID     string
	}{Ctx: ctx, GraduationID: graduationID, RawPath: rawPath, EditorID: editorID}
	mock.lockUnlockField.Lock()
	mock.calls.UnlockField = append(mock.calls.UnlockField, callInfo)
	mock.lockUnlockField.Unlock()
	return mock.UnlockFieldFunc(ctx, graduationID, rawPath, editorID)
}

func (mock *lockCoordinatorMock) UnlockFieldCalls() []struct {
	Ctx          context.Context
	GraduationID string
	RawPath      string
	EditorID     string
} {
	mock.lockUnlockField.RLock()
	calls := mock.calls.UnlockField
	mock.lockUnlockField.RUnlock()
	return calls
}

func (mock *lockCoordinatorMock) ForceUnlockField(ctx context.Context, graduationID string, rawPath string) error {
	if mock.ForceUnlockFieldFunc == nil {
		panic("lockCoordinatorMock.ForceUnlockFieldFunc: method is nil but lockCoordinator.ForceUnlockField was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		RawPath      string
	}{Ctx: ctx, GraduationID: graduationID, RawPath: rawPath}
	mock.lockForceUnlockField.Lock()
	mock.calls.ForceUnlockField = append(mock.calls.ForceUnlockField, callInfo)
	mock.lockForceUnlockField.Unlock()
	return mock.ForceUnlockFieldFunc(ctx, graduationID, rawPath)
}

func (mock *lockCoordinatorMock) ForceUnlockFieldCalls() []struct {
	Ctx          context.Context
	GraduationID string
	RawPath      string
} {
	mock.lockForceUnlockField.RLock()
	calls := mock.calls.ForceUnlockField
	mock.lockForceUnlockField.RUnlock()
	return calls
}

func (mock *lockCoordinatorMock) ListLocks(ctx context.Context, graduationID string) (map[string]domain.FieldLock, error) {
	if mock.ListLocksFunc == nil {
		panic("lockCoordinatorMock.ListLocksFunc: method is nil but lockCoordinator.ListLocks was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
	}{Ctx: ctx, GraduationID: graduationID}
	mock.lockListLocks.Lock()
	mock.calls.ListLocks = append(mock.calls.ListLocks, callInfo)
	mock.lockListLocks.Unlock()
	return mock.ListLocksFunc(ctx, graduationID)
}

func (mock *lockCoordinatorMock) ListLocksCalls() []struct {
	Ctx          context.Context
	GraduationID string
} {
	mock.lockListLocks.RLock()
	calls := mock.calls.ListLocks
	mock.lockListLocks.RUnlock()
	return calls
}

func (mock *lockCoordinatorMock) ActiveEditors(ctx context.Context, graduationID string, self string) ([]string, error) {
	if mock.ActiveEditorsFunc == nil {
		panic("lockCoordinatorMock.ActiveEditorsFunc: method is nil but lockCoordinator.ActiveEditors was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		Self         string
	}{Ctx: ctx, GraduationID: graduationID, Self: self}
	mock.lockActiveEditors.Lock()
	mock.calls.ActiveEditors = append(mock.calls.ActiveEditors, callInfo)
	mock.lockActiveEditors.Unlock()
	return mock.ActiveEditorsFunc(ctx, graduationID, self)
}

func (mock *lockCoordinatorMock) ActiveEditorsCalls() []struct {
	Ctx          context.Context
	GraduationID string
	Self         string
} {
	mock.lockActiveEditors.RLock()
	calls := mock.calls.ActiveEditors
	mock.lockActiveEditors.RUnlock()
	return calls
}

func (mock *lockCoordinatorMock) Heartbeat(ctx context.Context, graduationID string, editorID string) error {
	if mock.HeartbeatFunc == nil {
		panic("lockCoordinatorMock.HeartbeatFunc: method is nil but lockCoordinator.Heartbeat was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		EditorID     string
	}{Ctx: ctx, GraduationID: graduationID, EditorID: editorID}
	mock.lockHeartbeat.Lock()
	mock.calls.Heartbeat = append(mock.calls.Heartbeat, callInfo)
	mock.lockHeartbeat.Unlock()
	return mock.HeartbeatFunc(ctx, graduationID, editorID)
}

func (mock *lockCoordinatorMock) HeartbeatCalls() []struct {
	Ctx          context.Context
	GraduationID string
	EditorID     string
} {
	mock.lockHeartbeat.RLock()
	calls := mock.calls.Heartbeat
	mock.lockHeartbeat.RUnlock()
	return calls
}
