package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/roster"
)

var _ rosterService = &rosterServiceMock{}

type rosterServiceMock struct {
	ListStudentsFunc    func(ctx context.Context, graduationID string) ([]*domain.Student, error)
	CreateStudentFunc   func(ctx context.Context, input roster.CreateStudentInput) (*domain.Student, error)
	UpdateStudentFunc   func(ctx context.Context, input roster.UpdateStudentInput) (*domain.Student, error)
	DeleteStudentFunc   func(ctx context.Context, graduationID string, studentID string) error
	ReorderStudentsFunc func(ctx context.Context, graduationID string, ids []string) error
	VerifyAccessFunc    func(ctx context.Context, graduationID string, studentID string, password string, linkID string) (bool, error)
	ResolveLinkFunc     func(ctx context.Context, linkID string) (*domain.Student, error)
	ListPagesFunc       func(ctx context.Context, graduationID string) ([]*domain.ContentPage, error)
	CreatePageFunc      func(ctx context.Context, input roster.CreatePageInput) (*domain.ContentPage, error)
	UpdatePageFunc      func(ctx context.Context, input roster.UpdatePageInput) (*domain.ContentPage, error)
	DeletePageFunc      func(ctx context.Context, graduationID string, pageID string) error

	calls struct {
		ListStudents []struct {
			Ctx          context.Context
			GraduationID string
		}
		CreateStudent []struct {
			Ctx   context.Context
			Input roster.CreateStudentInput
		}
		UpdateStudent []struct {
			Ctx   context.Context
			Input roster.UpdateStudentInput
		}
		DeleteStudent []struct {
			Ctx          context.Context
			GraduationID string
			StudentID    string
		}
		ReorderStudents []struct {
			Ctx          context.Context
			GraduationID string
			Ids          []string
		}
		VerifyAccess []struct {
			Ctx          context.Context
			GraduationID string
			StudentID    string
			Password     string
			LinkID       string
		}
		ResolveLink []struct {
			Ctx    context.Context
			LinkID string
		}
		ListPages []struct {
			Ctx          context.Context
			GraduationID string
		}
		CreatePage []struct {
			Ctx   context.Context
			Input roster.CreatePageInput
		}
		UpdatePage []struct {
			Ctx   context.Context
			Input roster.UpdatePageInput
		}
		DeletePage []struct {
			Ctx          context.Context
			GraduationID string
			PageID       string
		}
	}
	lockListStudents    sync.RWMutex
	lockCreateStudent   sync.RWMutex
	lockUpdateStudent   sync.RWMutex
	lockDeleteStudent   sync.RWMutex
	lockReorderStudents sync.RWMutex
	lockVerifyAccess    sync.RWMutex
	lockResolveLink     sync.RWMutex
	lockListPages       sync.RWMutex
	lockCreatePage      sync.RWMutex
	lockUpdatePage      sync.RWMutex
	lockDeletePage      sync.RWMutex
}

func (mock *rosterServiceMock) ListStudents(ctx context.Context, graduationID string) ([]*domain.Student, error) {
	if mock.ListStudentsFunc == nil {
		panic("rosterServiceMock.ListStudentsFunc: method is nil but rosterService.ListStudents was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
	}{Ctx: ctx, GraduationID: graduationID}
	mock.lockListStudents.Lock()
	mock.calls.ListStudents = append(mock.calls.ListStudents, callInfo)
	mock.lockListStudents.Unlock()
	return mock.ListStudentsFunc(ctx, graduationID)
}

func (mock *rosterServiceMock) ListStudentsCalls() []struct {
	Ctx          context.Context
	GraduationID string
} {
	mock.lockListStudents.RLock()
	calls := mock.calls.ListStudents
	mock.lockListStudents.RUnlock()
	return calls
}

func (mock *rosterServiceMock) CreateStudent(ctx context.Context, input roster.CreateStudentInput) (*domain.Student, error) {
	if mock.CreateStudentFunc == nil {
		panic("rosterServiceMock.CreateStudentFunc: method is nil but rosterService.CreateStudent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input roster.CreateStudentInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateStudent.Lock()
	mock.calls.CreateStudent = append(mock.calls.CreateStudent, callInfo)
	mock.lockCreateStudent.Unlock()
	return mock.CreateStudentFunc(ctx, input)
}

func (mock *rosterServiceMock) CreateStudentCalls() []struct {
	Ctx   context.Context
	Input roster.CreateStudentInput
} {
	mock.lockCreateStudent.RLock()
	calls := mock.calls.CreateStudent
	mock.lockCreateStudent.RUnlock()
	return calls
}

func (mock *rosterServiceMock) UpdateStudent(ctx context.Context, input roster.UpdateStudentInput) (*domain.Student, error) {
	if mock.UpdateStudentFunc == nil {
		panic("rosterServiceMock.UpdateStudentFunc: method is nil but rosterService.UpdateStudent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input roster.UpdateStudentInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdateStudent.Lock()
	mock.calls.UpdateStudent = append(mock.calls.UpdateStudent, callInfo)
	mock.lockUpdateStudent.Unlock()
	return mock.UpdateStudentFunc(ctx, input)
}

func (mock *rosterServiceMock) UpdateStudentCalls() []struct {
	Ctx   context.Context
	Input roster.UpdateStudentInput
} {
	mock.lockUpdateStudent.RLock()
	calls := mock.calls.UpdateStudent
	mock.lockUpdateStudent.RUnlock()
	return calls
}

func (mock *rosterServiceMock) DeleteStudent(ctx context.Context, graduationID string, studentID string) error {
	if mock.DeleteStudentFunc == nil {
		panic("rosterServiceMock.DeleteStudentFunc: method is nil but rosterService.DeleteStudent was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		StudentID    string
	}{Ctx: ctx, GraduationID: graduationID, StudentID: studentID}
	mock.lockDeleteStudent.Lock()
	mock.calls.DeleteStudent = append(mock.calls.DeleteStudent, callInfo)
	mock.lockDeleteStudent.Unlock()
	return mock.DeleteStudentFunc(ctx, graduationID, studentID)
}

func (mock *rosterServiceMock) DeleteStudentCalls() []struct {
	Ctx          context.Context
	GraduationID string
	StudentID    string
} {
	mock.lockDeleteStudent.RLock()
	calls := mock.calls.DeleteStudent
	mock.lockDeleteStudent.RUnlock()
	return calls
}

func (mock *rosterServiceMock) ReorderStudents(ctx context.Context, graduationID string, ids []string) error {
	if mock.ReorderStudentsFunc == nil {
		panic("rosterServiceMock.ReorderStudentsFunc: method is nil but rosterService.ReorderStudents was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		Ids          []string
	}{Ctx: ctx, GraduationID: graduationID, Ids: ids}
	mock.lockReorderStudents.Lock()
	mock.calls.ReorderStudents = append(mock.calls.ReorderStudents, callInfo)
	mock.lockReorderStudents.Unlock()
	return mock.ReorderStudentsFunc(ctx, graduationID, ids)
}

func (mock *rosterServiceMock) ReorderStudentsCalls() []struct {
	Ctx          context.Context
	GraduationID string
	Ids          []string
} {
	mock.lockReorderStudents.RLock()
	calls := mock.calls.ReorderStudents
	mock.lockReorderStudents.RUnlock()
	return calls
}

func (mock *rosterServiceMock) VerifyAccess(ctx context.Context, graduationID string, studentID string, password string, linkID string) (bool, error) {
	if mock.VerifyAccessFunc == nil {
		panic("rosterServiceMock.VerifyAccessFunc: method is nil but rosterService.VerifyAccess was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		StudentID    string
		Password     string
		LinkID       string
	}{Ctx: ctx, GraduationID: graduationID, StudentID: studentID, Password: password, LinkID: linkID}
	mock.lockVerifyAccess.Lock()
	mock.calls.VerifyAccess = append(mock.calls.VerifyAccess, callInfo)
	mock.lockVerifyAccess.Unlock()
	return mock.VerifyAccessFunc(ctx, graduationID, studentID, password, linkID)
}

func (mock *rosterServiceMock) VerifyAccessCalls() []struct {
	Ctx          context.Context
	GraduationID string
	StudentID    string
	Password     string
	LinkID       string
} {
	mock.lockVerifyAccess.RLock()
	calls := mock.calls.VerifyAccess
	mock.lockVerifyAccess.RUnlock()
	return calls
}

func (mock *rosterServiceMock) ResolveLink(ctx context.Context, linkID string) (*domain.Student, error) {
	if mock.ResolveLinkFunc == nil {
		panic("rosterServiceMock.ResolveLinkFunc: method is nil but rosterService.ResolveLink was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		LinkID string
	}{Ctx: ctx, LinkID: linkID}
	mock.lockResolveLink.Lock()
	mock.calls.ResolveLink = append(mock.calls.ResolveLink, callInfo)
	mock.lockResolveLink.Unlock()
	return mock.ResolveLinkFunc(ctx, linkID)
}

func (mock *rosterServiceMock) ResolveLinkCalls() []struct {
	Ctx    context.Context
	LinkID string
} {
	mock.lockResolveLink.RLock()
	calls := mock.calls.ResolveLink
	mock.lockResolveLink.RUnlock()
	return calls
}

func (mock *rosterServiceMock) ListPages(ctx context.Context, graduationID string) ([]*domain.ContentPage, error) {
	if mock.ListPagesFunc == nil {
		panic("rosterServiceMock.ListPagesFunc: method is nil but rosterService.ListPages was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
	}{Ctx: ctx, GraduationID: graduationID}
	mock.lockListPages.Lock()
	mock.calls.ListPages = append(mock.calls.ListPages, callInfo)
	mock.lockListPages.Unlock()
	return mock.ListPagesFunc(ctx, graduationID)
}

func (mock *rosterServiceMock) ListPagesCalls() []struct {
	Ctx          context.Context
	GraduationID string
} {
	mock.lockListPages.RLock()
	calls := mock.calls.ListPages
	mock.lockListPages.RUnlock()
	return calls
}

func (mock *rosterServiceMock) CreatePage(ctx context.Context, input roster.CreatePageInput) (*domain.ContentPage, error) {
	if mock.CreatePageFunc == nil {
		panic("rosterServiceMock.CreatePageFunc: method is nil but rosterService.CreatePage was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input roster.CreatePageInput
	}{Ctx: ctx, Input: input}
	mock.lockCreatePage.Lock()
	mock.calls.CreatePage = append(mock.calls.CreatePage, callInfo)
	mock.lockCreatePage.Unlock()
	return mock.CreatePageFunc(ctx, input)
}

func (mock *rosterServiceMock) CreatePageCalls() []struct {
	Ctx   context.Context
	Input roster.CreatePageInput
} {
	mock.lockCreatePage.RLock()
	calls := mock.calls.CreatePage
	mock.lockCreatePage.RUnlock()
	return calls
}

func (mock *rosterServiceMock) UpdatePage(ctx context.Context, input roster.UpdatePageInput) (*domain.ContentPage, error) {
	if mock.UpdatePageFunc == nil {
		panic("rosterServiceMock.UpdatePageFunc: method is nil but rosterService.UpdatePage was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input roster.UpdatePageInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdatePage.Lock()
	mock.calls.UpdatePage = append(mock.calls.UpdatePage, callInfo)
	mock.lockUpdatePage.Unlock()
	return mock.UpdatePageFunc(ctx, input)
}

func (mock *rosterServiceMock) UpdatePageCalls() []struct {
	Ctx   context.Context
	Input roster.UpdatePageInput
} {
	mock.lockUpdatePage.RLock()
	calls := mock.calls.UpdatePage
	mock.lockUpdatePage.RUnlock()
	return calls
}

func (mock *rosterServiceMock) DeletePage(ctx context.Context, graduationID string, pageID string) error {
	if mock.DeletePageFunc == nil {
		panic("rosterServiceMock.DeletePageFunc: method is nil but rosterService.DeletePage was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		PageID       string
	}{Ctx: ctx, GraduationID: graduationID, PageID: pageID}
	mock.lockDeletePage.Lock()
	mock.calls.DeletePage = append(mock.calls.DeletePage, callInfo)
	mock.lockDeletePage.Unlock()
	return mock.DeletePageFunc(ctx, graduationID, pageID)
}

func (mock *rosterServiceMock) DeletePageCalls() []struct {
	Ctx          context.Context
	GraduationID string
	PageID       string
} {
	mock.lockDeletePage.RLock()
	calls := mock.calls.DeletePage
	mock.lockDeletePage.RUnlock()
	return calls
}
