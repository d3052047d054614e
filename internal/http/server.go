// Package http provides the API server, middleware, and operational endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/kyc/internal/config"
	kycHTTP "github.com/allisson/kyc/internal/kyc/http"
	"github.com/allisson/kyc/internal/metrics"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new API server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:     db,
		logger: logger,
	}
}

// SetupRouter builds the Gin engine: middleware chain, operational
// endpoints, and the KYC record routes. The submission endpoint carries the
// per-IP rate limit; decryption-returning reads do not.
func (s *Server) SetupRouter(
	cfg *config.Config,
	metricsProvider *metrics.Provider,
	recordHandler *kycHTTP.RecordHandler,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	records := router.Group("/v1/kyc/records")
	if cfg.RateLimitEnabled {
		limiter := NewIPRateLimiter(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst)
		records.POST("", RateLimitMiddleware(limiter, s.logger), recordHandler.CreateHandler)
	} else {
		records.POST("", recordHandler.CreateHandler)
	}
	records.GET("", recordHandler.ListHandler)
	records.GET("/:id", recordHandler.GetHandler)
	records.PATCH("/:id", recordHandler.UpdateHandler)
	records.DELETE("/:id", recordHandler.DeleteHandler)
	records.PUT("/:id/status", recordHandler.SetStatusHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes. It is nil until
// SetupRouter has been called.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can take traffic: the
// database must be reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	ready := true
	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
