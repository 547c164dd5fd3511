package api

import (
	"io/fs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/api/handlers"
	"github.com/wassimajzoub/saveclip/api/middleware"
	"github.com/wassimajzoub/saveclip/internal/app"
	"github.com/wassimajzoub/saveclip/web"
)

// SetupRouter sets up the HTTP router
func SetupRouter(manager *app.Manager, sweeper *app.Sweeper, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Health endpoint
	healthHandler := handlers.NewHealthHandler(manager, sweeper)
	router.GET("/health", healthHandler.Health)

	// API routes
	downloadHandler := handlers.NewDownloadHandler(manager, log)
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/download", downloadHandler.Submit)
		apiGroup.GET("/status/:task_id", downloadHandler.Status)
		apiGroup.GET("/file/:task_id", downloadHandler.File)
	}

	// Serve the embedded single-page client
	staticFS := web.GetStaticFS()
	router.GET("/", func(c *gin.Context) {
		serveIndexHTML(c, staticFS)
	})

	return router
}

// serveIndexHTML serves the index.html file from the embedded filesystem
func serveIndexHTML(c *gin.Context, staticFS fs.FS) {
	content, err := fs.ReadFile(staticFS, "index.html")
	if err != nil {
		c.String(404, "File not found: %v", err)
		return
	}
	c.Data(200, "text/html; charset=utf-8", content)
}
