package realtime

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts same-origin upgrades plus the given origins. "*"
// allows any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed["*"] || allowed[origin] {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

// Reservations handles GET /ws/reservations
func (h *Handler) Reservations(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Serve(conn)
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws/reservations", h.Reservations)
}
