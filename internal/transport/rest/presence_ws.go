package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/gradbook-backend/internal/service/collab"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

type presenceTracker interface {
	StartTracking(ctx context.Context, graduationID, editorID string, onChange func(editorIDs []string)) (*collab.Tracker, error)
	Heartbeat(ctx context.Context, graduationID, editorID string) error
}

// PresenceSocket streams the active editors of a graduation over a websocket.
// The client may send {"type":"heartbeat"}; every other message is ignored.
type PresenceSocket struct {
	tracker   presenceTracker
	access    editorChecker
	upgrader  websocket.Upgrader
	readLimit int64
	log       *slog.Logger
}

// NewPresenceSocket creates a PresenceSocket. checkOrigin decides which
// browser origins may connect.
func NewPresenceSocket(
	tracker presenceTracker,
	access editorChecker,
	checkOrigin func(origin string) bool,
	readLimit int64,
	logger *slog.Logger,
) *PresenceSocket {
	return &PresenceSocket{
		tracker: tracker,
		access:  access,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return checkOrigin(r.Header.Get("Origin"))
			},
		},
		readLimit: readLimit,
		log:       logger.With("handler", "presence_ws"),
	}
}

type clientMessage struct {
	Type string `json:"type"`
}

// wsConn serializes writes; gorilla connections allow one concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

// ServeHTTP handles GET /api/graduations/{id}/presence/ws.
func (h *PresenceSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.access.CheckEditor(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	editor, _ := ctxutil.EditorFromCtx(r.Context())

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.DebugContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	conn := &wsConn{conn: raw}
	defer raw.Close()

	// The request context is not cancelled by a websocket close, so the
	// session gets its own.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	tracker, err := h.tracker.StartTracking(ctx, id, editor.ID, func(ids []string) {
		msg := presenceMessage{Type: "presence", ActiveEditors: ids, At: time.Now().UTC()}
		if err := conn.writeJSON(msg); err != nil {
			cancel()
		}
	})
	if err != nil {
		h.log.ErrorContext(ctx, "start presence tracking",
			slog.String("graduation_id", id),
			slog.String("error", err.Error()),
		)
		_ = raw.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "presence unavailable"),
			time.Now().Add(wsWriteWait))
		return
	}
	defer tracker.Stop()

	h.log.InfoContext(ctx, "presence session opened",
		slog.String("graduation_id", id),
		slog.String("editor_id", editor.ID),
	)

	go h.keepAlive(ctx, cancel, conn, tracker)
	h.readLoop(ctx, raw, id, editor.ID)

	h.log.InfoContext(ctx, "presence session closed",
		slog.String("graduation_id", id),
		slog.String("editor_id", editor.ID),
	)
}

func (h *PresenceSocket) keepAlive(ctx context.Context, cancel context.CancelFunc, conn *wsConn, tracker *collab.Tracker) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// Closing the socket unblocks the read loop.
			_ = conn.conn.Close()
			return
		case <-tracker.Done():
			cancel()
			_ = conn.conn.Close()
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				cancel()
				return
			}
		}
	}
}

func (h *PresenceSocket) readLoop(ctx context.Context, raw *websocket.Conn, graduationID, editorID string) {
	if h.readLimit > 0 {
		raw.SetReadLimit(h.readLimit)
	}
	_ = raw.SetReadDeadline(time.Now().Add(wsPongWait))
	raw.SetPongHandler(func(string) error {
		return raw.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := raw.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.DebugContext(ctx, "presence read", slog.String("error", err.Error()))
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		_ = raw.SetReadDeadline(time.Now().Add(wsPongWait))

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "heartbeat" {
			continue
		}
		if err := h.tracker.Heartbeat(ctx, graduationID, editorID); err != nil {
			h.log.WarnContext(ctx, "presence heartbeat",
				slog.String("graduation_id", graduationID),
				slog.String("error", err.Error()),
			)
		}
	}
}
