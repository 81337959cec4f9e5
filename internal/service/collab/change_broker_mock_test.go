package collab

import (
	"context"
	"sync"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

var _ changeBroker = &changeBrokerMock{}

type changeBrokerMock struct {
	PublishFunc   func(ctx context.Context, graduationID string, kind domain.ChangeKind) error
	SubscribeFunc func(ctx context.Context, graduationID string) (<-chan domain.ChangeEvent, func(), error)

	calls struct {
		Publish []struct {
			Ctx          context.Context
			GraduationID string
			Kind         domain.ChangeKind
		}
		Subscribe []struct {
			Ctx          context.Context
			GraduationID string
		}
	}
	lockPublish   sync.RWMutex
	lockSubscribe sync.RWMutex
}

func (mock *changeBrokerMock) Publish(ctx context.Context, graduationID string, kind domain.ChangeKind) error {
	if mock.PublishFunc == nil {
		panic("changeBrokerMock.PublishFunc: method is nil but changeBroker.Publish was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
		Kind         domain.ChangeKind
	}{Ctx: ctx, GraduationID: graduationID, Kind: kind}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, graduationID, kind)
}

func (mock *changeBrokerMock) PublishCalls() []struct {
	Ctx          context.Context
	GraduationID string
	Kind         domain.ChangeKind
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}

func (mock *changeBrokerMock) Subscribe(ctx context.Context, graduationID string) (<-chan domain.ChangeEvent, func(), error) {
	if mock.SubscribeFunc == nil {
		panic("changeBrokerMock.SubscribeFunc: method is nil but changeBroker.Subscribe was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		GraduationID string
	}{Ctx: ctx, GraduationID: graduationID}
	mock.lockSubscribe.Lock()
	mock.calls.Subscribe = append(mock.calls.Subscribe, callInfo)
	mock.lockSubscribe.Unlock()
	return mock.SubscribeFunc(ctx, graduationID)
}

func (mock *changeBrokerMock) SubscribeCalls() []struct {
	Ctx          context.Context
	GraduationID string
} {
	mock.lockSubscribe.RLock()
	calls := mock.calls.Subscribe
	mock.lockSubscribe.RUnlock()
	return calls
}
