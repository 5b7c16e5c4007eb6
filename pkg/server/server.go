// Package server provides the optional local diagnostics endpoint: the
// installed menu tree, Prometheus metrics and a liveness probe.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/menubridge/pkg/metric"
)

const (
	// DefaultHost restricts the diagnostics server to the local machine.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the default diagnostics port.
	DefaultPort = 9876

	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the keep-alive idle timeout.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the grace period for in-flight requests on shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes caps request header size.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB

	// PathMenu serves the installed menu tree.
	PathMenu = "/menu"

	// PathMetrics serves Prometheus metrics.
	PathMetrics = "/metrics"

	// PathHealth is the liveness probe.
	PathHealth = "/healthz"
)

// Server is a diagnostics HTTP server with graceful shutdown.
type Server interface {
	// Serve starts the server and blocks until the context is canceled.
	// Returns nil on graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning returns true once the socket is bound and until the server stops.
	IsRunning() bool

	// Addr returns the bound address, or an empty string before Serve binds.
	Addr() string
}

type server struct {
	mux             *http.ServeMux
	host            string
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	errLog          *log.Logger
	mu              sync.RWMutex
	running         bool
	addr            string
}

// Option is a functional option for configuring the Server.
type Option func(*server)

// WithHost sets the interface to bind. Defaults to DefaultHost.
func WithHost(host string) Option {
	return func(s *server) { s.host = host }
}

// WithPort sets the port number. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

// WithShutdownTimeout sets the maximum duration to wait for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithErrorLog sets the logger for connection-level errors.
func WithErrorLog(l *log.Logger) Option {
	return func(s *server) {
		if l != nil {
			s.errLog = l
		}
	}
}

// WithHandler registers a custom HTTP handler for the specified pattern.
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithMenu serves the menu tree handler at PathMenu.
func WithMenu(h http.Handler) Option {
	return WithHandler(PathMenu, h)
}

// WithMetrics serves the registry at PathMetrics.
func WithMetrics(reg prometheus.Gatherer) Option {
	return WithHandler(PathMetrics, metric.GetHandlerForRegistry(reg))
}

// WithSimpleHealth adds a health endpoint at PathHealth that always returns 200 OK.
func WithSimpleHealth() Option {
	return func(s *server) {
		s.mux.HandleFunc(PathHealth, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}
}

// New creates a new diagnostics server with the provided options.
func New(opts ...Option) Server {
	s := &server{
		host:            DefaultHost,
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		errLog:          log.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	slog.Debug("diagnostics server initialized",
		"host", s.host,
		"port", s.port)

	return s
}

func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

func (s *server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.addr
}

// Serve binds the listener, then runs the server and a shutdown watcher in an
// errgroup. http.ErrServerClosed is not treated as an error.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           net.JoinHostPort(s.host, fmt.Sprint(s.port)),
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.mu.Lock()
	s.running = true
	s.addr = listener.Addr().String()
	s.mu.Unlock()

	slog.Info("starting diagnostics server", "addr", listener.Addr().String())

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		shutdownStart := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("diagnostics server shutdown error", "error", err)
		}

		slog.Info("diagnostics server shutdown complete", "duration", time.Since(shutdownStart))

		return nil
	})

	return g.Wait()
}
