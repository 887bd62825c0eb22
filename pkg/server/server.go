package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"github.com/abdhusiya/fileindex/internal/models"
	"github.com/abdhusiya/fileindex/pkg/config"
	"github.com/abdhusiya/fileindex/pkg/manifest"
	"github.com/abdhusiya/fileindex/pkg/telemetry"
)

// Server is the local preview server: it serves the scanned section
// folders, a freshly built manifest, and a regenerate endpoint so the
// website can be previewed without re-running the generator by hand.
type Server struct {
	config    *config.Config
	logger    *logrus.Logger
	builder   *manifest.Builder
	engine    *gin.Engine
	server    *http.Server
	startTime time.Time
}

// New creates a new server instance
func New(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	// Set gin mode based on log level
	if logger.Level == logrus.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create gin engine
	engine := gin.New()

	// Add middleware
	engine.Use(gin.Recovery())
	engine.Use(ginLogger(logger))

	// Add OpenTelemetry middleware if telemetry is enabled
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware("fileindex"))
	}

	server := &Server{
		config:    cfg,
		logger:    logger,
		builder:   manifest.New(cfg, logger),
		engine:    engine,
		startTime: time.Now(),
	}

	// Setup routes
	server.setupRoutes()

	return server, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.Port),
		Handler: s.engine,
	}

	s.logger.Infof("Starting preview server on port %d", s.config.Server.Port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Engine returns the gin engine for testing purposes
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check
	s.engine.GET("/alive", s.handleAlive)

	// Server info
	s.engine.GET("/server_info", s.handleServerInfo)

	// Manifest
	s.engine.GET("/files.json", s.handleManifest)
	s.engine.POST("/regenerate", s.handleRegenerate)

	// Serve the section folders themselves so the generated links resolve
	for _, section := range s.config.Index.Sections {
		dir := filepath.Join(s.config.Index.RootDir, section)
		if _, err := os.Stat(dir); err == nil {
			s.engine.Static("/"+section, dir)
		} else {
			s.logger.Warnf("Section folder '%s' missing, not serving it", section)
		}
	}
}

// handleAlive handles health check requests
func (s *Server) handleAlive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleServerInfo handles server info requests
func (s *Server) handleServerInfo(c *gin.Context) {
	uptime := time.Since(s.startTime).Seconds()

	stats := s.getSystemStats()
	stats.CPUCount = runtime.NumCPU()

	response := models.ServerInfoResponse{
		Uptime:    uptime,
		Sections:  s.config.Index.Sections,
		Resources: stats,
	}

	s.logger.Debugf("Server info endpoint response: uptime=%.2fs", uptime)
	c.JSON(http.StatusOK, response)
}

// handleManifest builds a fresh manifest in memory and serves it with the
// same 2-space indentation the generator writes to disk.
func (s *Server) handleManifest(c *gin.Context) {
	tracer := otel.Tracer("fileindex")
	ctx, span := tracer.Start(c.Request.Context(), "handle_manifest")
	defer span.End()

	m := s.builder.Build(ctx)

	data, err := m.MarshalIndent()
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to serialize manifest: %v", err)})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// handleRegenerate rebuilds the manifest and rewrites the output file
func (s *Server) handleRegenerate(c *gin.Context) {
	tracer := otel.Tracer("fileindex")
	ctx, span := tracer.Start(c.Request.Context(), "handle_regenerate")
	defer span.End()

	m, err := s.builder.Generate(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.Errorf("Failed to regenerate manifest: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to regenerate manifest: %v", err)})
		return
	}

	resp := models.RegenerateResponse{
		Status:      "ok",
		OutputFile:  s.config.Index.OutputFile,
		LastUpdated: m.Metadata.LastUpdated,
	}

	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(ctx, s.logger, "manifest_regenerated", resp)
	}

	c.JSON(http.StatusOK, resp)
}

// ginLogger creates a gin logger middleware using logrus
func ginLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"status":  statusCode,
			"method":  c.Request.Method,
			"path":    path,
			"ip":      c.ClientIP(),
			"latency": latency,
		})

		if raw != "" {
			entry = entry.WithField("query", raw)
		}

		if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request")
		}
	}
}
