package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vexport/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	newEngine port.EngineFactory
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(newEngine port.EngineFactory) *HealthHandler {
	return &HealthHandler{newEngine: newEngine}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Ready means an engine handle can be built:
// the binary resolves, or the remote endpoint is configured.
func (h *HealthHandler) Readiness(c *gin.Context) {
	eng, err := h.newEngine()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	// Providers that can cheaply probe their backend do so here.
	if p, ok := eng.(interface{ Ping(ctx context.Context) error }); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
