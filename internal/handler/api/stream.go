package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"MarketPulse/internal/middleware"
	xlogger "MarketPulse/pkg/logger"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// StreamHandler upgrades clients onto the overview broadcast.
type StreamHandler struct {
	logger      *xlogger.Logger
	broadcaster *middleware.OverviewBroadcaster
	upgrader    websocket.Upgrader
}

func NewStreamHandler(logger *xlogger.Logger, broadcaster *middleware.OverviewBroadcaster) *StreamHandler {
	return &StreamHandler{
		logger:      logger,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/overview", h.Overview)
}

// Overview streams dashboard snapshots until the client disconnects.
func (h *StreamHandler) Overview(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	frames, cancel := h.broadcaster.Subscribe()
	defer cancel()
	h.logger.Debug("ws client connected", xlogger.String("remote", conn.RemoteAddr().String()))

	// drain reads so close frames and pongs are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case frame, ok := <-frames:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.logger.Debug("ws write failed", xlogger.Error(err))
				return nil
			}
		}
	}
}
