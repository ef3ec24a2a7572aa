package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chatia-cau/ofertas/config"
	"github.com/chatia-cau/ofertas/handler"
	"github.com/chatia-cau/ofertas/middleware"
	"github.com/chatia-cau/ofertas/pkg/logger"
	"github.com/chatia-cau/ofertas/pkg/metrics"
	"github.com/chatia-cau/ofertas/service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully",
		"chunk_size", cfg.Chunking.Size,
		"chunk_overlap", cfg.Chunking.Overlap,
		"storage", cfg.Storage.Enabled,
	)

	// Initialize services
	files, err := newFileLocator(&cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize file storage", "error", err)
		os.Exit(1)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Setup Gin router
	gin.SetMode(cfg.Server.Mode)
	handler.RegisterValidation()
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(m.Middleware())
	router.Use(middleware.CORS())
	router.Use(middleware.NoCache())
	router.Use(middleware.RateLimit(cfg.RateLimit))

	metricsURL := ""
	if m != nil {
		metricsURL = cfg.Metrics.Path
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	handler.RegisterRoutes(router, handler.Handlers{
		System:  handler.NewSystemHandler(cfg.Server.Platform, metricsURL),
		Faiss:   handler.NewFaissHandler(),
		Ofertas: handler.NewOfertasHandler(cfg.Chunking, files, m),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port, "platform", cfg.Server.Platform)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// newFileLocator returns a MinIO-backed locator when storage is enabled and
// the static one otherwise.
func newFileLocator(cfg *config.StorageConfig) (service.FileLocator, error) {
	if !cfg.Enabled {
		return service.NewStaticFileLocator(), nil
	}

	minioSvc, err := service.NewMinioService(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := minioSvc.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	slog.Info("file storage ready", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return service.NewMinioFileLocator(minioSvc), nil
}
