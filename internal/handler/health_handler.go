package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docbridge/internal/node"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// The service holds no connections of its own; it is ready once the node
// registry is populated.
func (h *HealthHandler) Readiness(c *gin.Context) {
	nodes := node.Names()
	if len(nodes) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "no nodes registered"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "nodes": nodes})
}
