package booklet

import (
	"context"
	"sync"
)

var _ assetStore = &assetStoreMock{}

type assetStoreMock struct {
	UploadFunc func(ctx context.Context, key string, data []byte, contentType string) (string, error)

	calls struct {
		Upload []struct {
			Ctx         context.Context
			Key         string
			Data        []byte
			ContentType string
		}
	}
	lockUpload sync.RWMutex
}

func (mock *assetStoreMock) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if mock.UploadFunc == nil {
		panic("assetStoreMock.UploadFunc: method is nil but assetStore.Upload was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Key         string
		Data        []byte
		ContentType string
	}{Ctx: ctx, Key: key, Data: data, ContentType: contentType}
	mock.lockUpload.Lock()
	mock.calls.Upload = append(mock.calls.Upload, callInfo)
	mock.lockUpload.Unlock()
	return mock.UploadFunc(ctx, key, data, contentType)
}

func (mock *assetStoreMock) UploadCalls() []struct {
	Ctx         context.Context
	Key         string
	Data        []byte
	ContentType string
} {
	mock.lockUpload.RLock()
	calls := mock.calls.Upload
	mock.lockUpload.RUnlock()
	return calls
}
