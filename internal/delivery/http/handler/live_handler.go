package handler

import (
	"net/http"

	"cargo-inspection-dashboard/internal/live"
	"cargo-inspection-dashboard/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type LiveHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser dashboards connect cross-origin in development;
			// origin policy is enforced by the CORS middleware.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *LiveHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/live/incidents", h.Subscribe)
}

// Subscribe upgrades the connection and attaches it to the incident feed.
func (h *LiveHandler) Subscribe(c *gin.Context) {
	// The upgrader writes its own HTTP error reply on failure.
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(conn)
}
