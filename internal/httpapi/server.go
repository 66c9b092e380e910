package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/cache"
	"supermandi/pos-core/internal/config"
)

// Server bundles the dependencies every handler needs. It carries no
// business logic of its own — it exists so route registration can close
// over a single value instead of a long parameter list.
type Server struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Resolver *auth.Resolver
	Dedup    *cache.ScanDedup
	Log      *zap.Logger
}

// NewServer wires a Gin engine the same way
// services/order_service/main.go:initHTTPServer does: gin.New() plus
// Recovery, CORS, and request-logging middleware, then one route group per
// concern.
func NewServer(cfg *config.Config, gdb *gorm.DB, resolver *auth.Resolver, dedup *cache.ScanDedup, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(loggingMiddleware(log))

	srv := &Server{DB: gdb, Cfg: cfg, Resolver: resolver, Dedup: dedup, Log: log}
	srv.registerRoutes(router)
	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, x-device-token, x-admin-token")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func loggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		recordRequestMetric(c, duration)
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
