// Package health serves liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	checks map[string]Check
}

func NewHandler(checks map[string]Check) *Handler {
	return &Handler{checks: checks}
}

// Live handles GET /health
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Status: "UP"})
}

// Ready handles GET /ready. It answers 503 when any dependency fails.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "UP", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "DOWN"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "UP"
	}
	c.JSON(status, resp)
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Live)
	r.GET("/ready", h.Ready)
}
