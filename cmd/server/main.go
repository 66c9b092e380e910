package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/cache"
	"supermandi/pos-core/internal/config"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/httpapi"
	"supermandi/pos-core/internal/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer logger.Sync()

	database, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	redisCache, err := cache.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, continuing without it", zap.Error(err))
	}
	defer redisCache.Close()

	dedup := cache.NewScanDedup(cfg.ScanDedupWindow)
	resolver := auth.NewResolver(database.Gorm)

	router := httpapi.NewServer(cfg, database.Gorm, resolver, dedup, logger)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	startServer(server, cfg, logger)
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*db.DB, error) {
	database, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(); err != nil {
		return nil, err
	}

	if err := database.RunMigrations(cfg, "internal/db/migrations"); err != nil {
		logger.Warn("versioned migration run skipped", zap.Error(err))
	}

	logger.Info("database initialized successfully")
	return database, nil
}

// startServer runs the HTTP server in a goroutine and blocks until a
// shutdown signal arrives, then drains in-flight requests, following
// services/order_service/main.go:startServer's shape.
func startServer(server *http.Server, cfg *config.Config, logger *zap.Logger) {
	go func() {
		logger.Info("starting HTTP server",
			zap.String("port", cfg.ServerPort),
			zap.String("environment", cfg.Environment))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server shutdown complete")
}
