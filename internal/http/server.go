// Package http provides the HTTP API server and its middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	auditHTTP "github.com/finbase/securemsg/internal/audit/http"
	messageHTTP "github.com/finbase/securemsg/internal/message/http"
)

// ServerConfig holds the settings needed to build the API server.
type ServerConfig struct {
	Host             string
	Port             int
	CORSEnabled      bool
	CORSAllowOrigins string
}

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(
	cfg ServerConfig,
	logger *slog.Logger,
	messageHandler *messageHTTP.MessageHandler,
	auditLogHandler *auditHTTP.AuditLogHandler,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	server := &Server{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	server.registerRoutes(messageHandler, auditLogHandler)
	return server
}

// registerRoutes wires the API routes. Health endpoints are registered at
// startup, readiness separately because it needs the application context.
func (s *Server) registerRoutes(
	messageHandler *messageHTTP.MessageHandler,
	auditLogHandler *auditHTTP.AuditLogHandler,
) {
	s.router.GET("/health", HealthHandler())

	v1 := s.router.Group("/v1")
	{
		messages := v1.Group("/messages")
		{
			messages.POST("/seal", messageHandler.SealHandler)
			messages.POST("/open", messageHandler.OpenHandler)
			messages.POST("/validate", messageHandler.ValidateHandler)
			messages.POST("/redact", messageHandler.RedactHandler)
		}

		auditLogs := v1.Group("/audit-logs")
		{
			auditLogs.GET("", auditLogHandler.ListHandler)
			auditLogs.GET("/:audit_id/verify", auditLogHandler.VerifyHandler)
		}
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.router.GET("/ready", ReadinessHandler(ctx))

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
