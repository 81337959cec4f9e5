package ctxutil

import (
	"context"
	"strings"
)

type ctxKey string

const (
	editorKey    ctxKey = "editor"
	requestIDKey ctxKey = "request_id"
)

// Editor identifies the authenticated teacher behind a request.
type Editor struct {
	ID    string
	Email string
}

// WithEditor stores the editor identity in the context.
func WithEditor(ctx context.Context, e Editor) context.Context {
	return context.WithValue(ctx, editorKey, e)
}

// EditorFromCtx extracts the editor identity from the context.
// Returns a zero Editor and false if the value is missing, blank, or of the wrong type.
func EditorFromCtx(ctx context.Context) (Editor, bool) {
	e, ok := ctx.Value(editorKey).(Editor)
	if !ok || strings.TrimSpace(e.ID) == "" {
		return Editor{}, false
	}
	return e, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
