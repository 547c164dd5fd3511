package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wassimajzoub/saveclip/internal/app"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	manager *app.Manager
	sweeper *app.Sweeper
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(manager *app.Manager, sweeper *app.Sweeper) *HealthHandler {
	return &HealthHandler{
		manager: manager,
		sweeper: sweeper,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"tasks":            h.manager.TaskCount(),
		"active_downloads": h.manager.ActiveCount(),
		"sweeper_running":  h.sweeper.IsRunning(),
	})
}
