package rest

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/storage"
)

var _ uploadPresigner = &uploadPresignerMock{}

type uploadPresignerMock struct {
	PresignUploadFunc func(ctx context.Context, prefix string, ext string, contentType string, ttl time.Duration) (storage.PresignedUpload, error)

	calls struct {
		PresignUpload []struct {
			Ctx         context.Context
			Prefix      string
			Ext         string
			ContentType string
			Ttl         time.Duration
		}
	}
	lockPresignUpload sync.RWMutex
}

func (mock *uploadPresignerMock) PresignUpload(ctx context.Context, prefix string, ext string, contentType string, ttl time.Duration) (storage.PresignedUpload, error) {
	if mock.PresignUploadFunc == nil {
		panic("uploadPresignerMock.PresignUploadFunc: method is nil but uploadPresigner.PresignUpload was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Prefix      string
		Ext         string
		ContentType string
		Ttl         time.Duration
	}{Ctx: ctx, Prefix: prefix, Ext: ext, ContentType: contentType, Ttl: ttl}
	mock.lockPresignUpload.Lock()
	mock.calls.PresignUpload = append(mock.calls.PresignUpload, callInfo)
	mock.lockPresignUpload.Unlock()
	return mock.PresignUploadFunc(ctx, prefix, ext, contentType, ttl)
}

func (mock *uploadPresignerMock) PresignUploadCalls() []struct {
	Ctx         context.Context
	Prefix      string
	Ext         string
	ContentType string
	Ttl         time.Duration
} {
	mock.lockPresignUpload.RLock()
	calls := mock.calls.PresignUpload
	mock.lockPresignUpload.RUnlock()
	return calls
}
