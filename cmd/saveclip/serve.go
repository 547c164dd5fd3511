package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/api"
	"github.com/wassimajzoub/saveclip/internal/app"
	"github.com/wassimajzoub/saveclip/internal/infrastructure"
	"github.com/wassimajzoub/saveclip/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func runServe(configPath string) error {
	// Load configuration
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting saveclip server",
		zap.String("version", version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("download_dir", config.Download.Dir))

	// Ensure the storage directory exists
	if err := os.MkdirAll(config.Download.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire components
	store := app.NewTaskStore()
	extractor := infrastructure.NewYTDLPExtractor(&config.Download, log)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)

	manager := app.NewManager(store, extractor, &config.Download, notifier, log)
	manager.SetBaseContext(ctx)

	sweeper := app.NewSweeper(config.Download.Dir, &config.Retention, log)
	if err := sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sweeper: %w", err)
	}

	// Setup HTTP router and server
	router := api.SetupRouter(manager, sweeper, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Stop the sweeper and abandon in-flight downloads
	if err := sweeper.Stop(); err != nil {
		log.Error("Error stopping sweeper", zap.Error(err))
	}
	cancel()
	if !manager.Wait(shutdownCtx) {
		log.Warn("Timed out waiting for in-flight downloads")
	}

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
