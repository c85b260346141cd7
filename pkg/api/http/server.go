package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/aescanero/greeter/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	server   *http.Server
	listener net.Listener
	metrics  *prometheus.Collector
	logger   *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	// Addr is the host:port to bind, e.g. "0.0.0.0:5000"
	Addr string
	// Metrics enables request metrics and GET /metrics when non-nil
	Metrics *prometheus.Collector
	Logger  *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	if cfg.Metrics != nil {
		router.Use(requestMetrics(cfg.Metrics))
	}

	s := &Server{
		router:  router,
		metrics: cfg.Metrics,
		logger:  logger,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleRoot)

	// Probes
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ready", s.handleReady)

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// Handler returns the server's router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the server's address. A bind failure leaves no listener open.
func (s *Server) Listen() error {
	if s.listener != nil {
		return errors.New("HTTP server already listening")
	}

	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.listener = listener

	return nil
}

// Addr returns the bound address, or the configured one before Listen
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Serve serves requests on the bound listener until Shutdown
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("HTTP server is not listening")
	}

	s.logger.Info("starting HTTP server", zap.String("addr", s.Addr()))

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}

	return nil
}

// Start binds and serves
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	// Shutdown only closes listeners that Serve has adopted.
	if s.listener != nil {
		_ = s.listener.Close()
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
