package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/internal/app"
	"github.com/wassimajzoub/saveclip/internal/domain"
)

// DownloadHandler handles download-related HTTP requests
type DownloadHandler struct {
	manager *app.Manager
	logger  *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(manager *app.Manager, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		manager: manager,
		logger:  logger,
	}
}

// SubmitRequest represents a request to start a download
type SubmitRequest struct {
	URL string `json:"url"`
}

// Submit handles POST /api/download. It validates the URL, creates the task
// and returns its id for polling; the download itself runs in the background.
func (h *DownloadHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a URL."})
		return
	}

	task, err := h.manager.Submit(req.URL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a URL."})
		case errors.Is(err, domain.ErrUnsupportedURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid TikTok or Instagram URL."})
		default:
			h.logger.Error("Failed to submit download", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task_id":  task.ID,
		"platform": task.Platform,
	})
}

// Status handles GET /api/status/:task_id
func (h *DownloadHandler) Status(c *gin.Context) {
	id := c.Param("task_id")

	task, ok := h.manager.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found."})
		return
	}

	c.JSON(http.StatusOK, task)
}

// File handles GET /api/file/:task_id. The artifact is served as an
// attachment with the task-id prefix stripped from the suggested name.
func (h *DownloadHandler) File(c *gin.Context) {
	id := c.Param("task_id")

	task, ok := h.manager.Get(id)
	if !ok || task.Status != domain.StatusComplete {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not ready."})
		return
	}

	path := h.manager.ArtifactPath(task.Filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found."})
		return
	}

	cleanName := strings.TrimPrefix(task.Filename, task.ID+"_")
	if cleanName == "" {
		cleanName = task.Filename
	}

	c.FileAttachment(path, cleanName)
}
