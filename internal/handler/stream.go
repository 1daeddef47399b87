package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"signalx/internal/broadcast"
)

const defaultWriteTimeout = 5 * time.Second

// StreamHandler pushes broadcast events to connected viewers over a
// websocket. Viewers only listen; no client-to-server messages exist beyond
// connect and disconnect.
type StreamHandler struct {
	Hub              *broadcast.Hub
	Logger           *zap.Logger
	SubscriberBuffer int
	WriteTimeout     time.Duration
}

func (h *StreamHandler) Register(r *gin.Engine) {
	r.GET("/ws", h.serve)
}

func (h *StreamHandler) serve(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		// Accept has already written the handshake failure.
		if h.Logger != nil {
			h.Logger.Debug("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	// CloseRead surfaces client disconnects through ctx; we never expect
	// inbound frames.
	ctx := conn.CloseRead(c.Request.Context())

	events, cancel := h.Hub.Subscribe(h.SubscriberBuffer)
	defer cancel()

	if h.Logger != nil {
		h.Logger.Info("viewer connected", zap.Int("subscribers", h.Hub.Subscribers()))
		defer func() {
			h.Logger.Info("viewer disconnected", zap.Int("subscribers", h.Hub.Subscribers()-1))
		}()
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case ev, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := h.write(ctx, conn, ev); err != nil {
				// A dead viewer only tears down its own subscription.
				if h.Logger != nil {
					h.Logger.Debug("viewer write failed", zap.Error(err))
				}
				return
			}
		}
	}
}

func (h *StreamHandler) write(ctx context.Context, conn *websocket.Conn, ev broadcast.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	timeout := h.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return conn.Write(wctx, websocket.MessageText, payload)
}
