package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/aescanero/metricsvc/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// ErrNotListening is returned by Serve when Listen has not bound a listener yet
var ErrNotListening = errors.New("server is not listening")

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	metrics metrics.Recorder
	logger  *zap.Logger

	mu       sync.Mutex
	listener net.Listener
}

// Config holds HTTP server configuration
type Config struct {
	Addr string

	// EnableH2C serves HTTP/2 over cleartext next to HTTP/1.1.
	EnableH2C bool

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// Metrics is required.
	Metrics metrics.Recorder
	// TracerProvider defaults to a no-op provider.
	TracerProvider trace.TracerProvider
	Logger         *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	router := gin.New()
	router.UseH2C = cfg.EnableH2C
	router.HandleMethodNotAllowed = true

	// Recovery sits innermost so a panicking handler still reaches the
	// trace and metrics stages as a 500.
	router.Use(traceRequests(tp.Tracer(tracerName), logger))
	router.Use(recordMetrics(cfg.Metrics))
	router.Use(recovery(logger))

	s := &Server{
		router:  router,
		metrics: cfg.Metrics,
		logger:  logger,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/home", s.handleHome)
	s.router.GET("/metrics", s.handleMetrics)
}

// Handler returns the root handler, including the middleware chain
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Listen binds the configured address
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.server.Addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Debug("listening on "+ln.Addr().String(), zap.Stringer("addr", ln.Addr()))
	return nil
}

// Addr returns the bound address, or nil before Listen
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections on the bound listener until Shutdown
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if ln == nil {
		return ErrNotListening
	}

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	s.logger.Info("HTTP server shut down complete")
	return nil
}
