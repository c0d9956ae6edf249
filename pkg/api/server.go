package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jakechorley/gameday/internal/config"
	"github.com/jakechorley/gameday/pkg/core/services"
)

// Store combines the matrix operations with a connectivity check
type Store interface {
	services.MatrixStore
	Ping(ctx context.Context) error
}

// Server serves the attendance API
type Server struct {
	cfg    *config.Config
	store  Store
	logger *zap.Logger
	engine *gin.Engine
}

// NewServer builds the gin engine with all routes registered
func NewServer(cfg *config.Config, store Store, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	engine.Use(cors.New(corsConfig))

	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/dates", s.handleListDates)
		v1.GET("/roster", s.handleRoster)
		v1.GET("/roster/by-department", s.handleRosterByDepartment)
		v1.GET("/volunteers/:id", s.handleGetVolunteer)
		v1.PUT("/volunteers/:id/status/:dateID", s.handleSetStatus)
		v1.DELETE("/volunteers/:id/status/:dateID", s.handleClearStatus)
		v1.POST("/volunteers/:id/toggle-active", s.handleToggleActive)
	}

	s.engine = engine
	return s
}

// Engine exposes the underlying gin engine, mainly for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then
// shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		s.logger.Info("Shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Shutting down", zap.String("reason", "context cancelled"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs each request with zap, skipping the probe endpoints
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/healthz" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.Debug("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
