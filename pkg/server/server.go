// Package server runs the HTTP surface of the menu daemon with graceful shutdown.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mchmarny/radial-menu/pkg/logger"
	"github.com/mchmarny/radial-menu/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 9876

	// DefaultReadTimeout bounds reading a whole request, body included.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds waiting for the next keep-alive request.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the grace period for in-flight requests on shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes caps the request header size.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)

// Server is an HTTP server bound to a context lifetime.
type Server interface {
	// Serve blocks until ctx is canceled or a component fails.
	// It returns nil after a graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning reports whether the listener is bound and accepting.
	IsRunning() bool
}

// Background is a component that runs for the server's lifetime, like the menu event loop.
// It must return once ctx is canceled.
type Background func(ctx context.Context) error

type server struct {
	mux             *http.ServeMux
	port            int
	listener        net.Listener
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	errLog          *log.Logger
	tlsConfig       *TLSConfig
	registry        *prometheus.Registry
	background      []Background

	mu      sync.RWMutex
	running bool
}

// TLSConfig holds the certificate and key file paths for HTTPS.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Option configures the Server.
type Option func(*server)

// WithPort sets the port to listen on. Ignored when WithListener is used.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithListener serves on an already bound listener.
func WithListener(l net.Listener) Option {
	return func(s *server) { s.listener = l }
}

// WithReadTimeout overrides DefaultReadTimeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

// WithWriteTimeout overrides DefaultWriteTimeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

// WithIdleTimeout overrides DefaultIdleTimeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *server) { s.idleTimeout = d }
}

// WithShutdownTimeout overrides DefaultShutdownTimeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithMaxHeaderBytes overrides DefaultMaxHeaderBytes.
func WithMaxHeaderBytes(n int) Option {
	return func(s *server) { s.maxHeaderBytes = n }
}

// WithHandler registers handler for pattern. It can be given more than once.
//
// Example:
//
//	srv := server.New(server.WithHandler("/", sess.Handler()))
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithSimpleHealth adds /healthz, which always answers 200 "ok".
func WithSimpleHealth() Option {
	return func(s *server) {
		s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}
}

// WithRegistry replaces the server's own metrics registry. Options that
// read the registry, like WithPrometheusMetrics, must come after it.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *server) { s.registry = reg }
}

// WithPrometheusMetrics exposes the registry at /metrics.
func WithPrometheusMetrics() Option {
	return func(s *server) {
		s.mux.Handle("/metrics", metric.GetHandlerForRegistry(s.registry))
	}
}

// WithBackground runs fn alongside the HTTP server; an error from fn stops the server.
func WithBackground(fn Background) Option {
	return func(s *server) {
		s.background = append(s.background, fn)
	}
}

// WithTLS serves HTTPS with the given certificate and key.
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(8443),
//	    server.WithTLS(server.TLSConfig{CertFile: "cert.pem", KeyFile: "key.pem"}),
//	)
func WithTLS(cfg TLSConfig) Option {
	return func(s *server) {
		s.tlsConfig = &cfg
	}
}

// New creates a server. Without options it listens on DefaultPort with the
// default timeouts and a private metrics registry.
func New(opts ...Option) Server {
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		registry:        prometheus.NewRegistry(),
		errLog:          logger.NewLogLogger(slog.LevelError, false),
	}

	for _, opt := range opts {
		opt(s)
	}

	slog.Info("server initialized",
		"port", s.port,
		"read_timeout", s.readTimeout,
		"write_timeout", s.writeTimeout,
		"background", len(s.background))

	return s
}

// IsRunning is safe for concurrent use.
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

func (s *server) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// Serve binds the listener, then runs the HTTP server, the background
// components and the shutdown watcher in one errgroup. When any of them fails
// the group context is canceled and the rest wind down.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	listener, err := s.listen(srv.Addr)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.setRunning(true)
		defer s.setRunning(false)

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	for _, fn := range s.background {
		g.Go(func() error {
			return fn(gCtx)
		})
	}

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server", "grace_period", s.shutdownTimeout)
		start := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(start))
		return nil
	})

	return g.Wait()
}

func (s *server) listen(addr string) (net.Listener, error) {
	listener := s.listener
	if listener == nil {
		var err error
		if listener, err = net.Listen("tcp", addr); err != nil {
			return nil, fmt.Errorf("failed to create listener: %w", err)
		}
	}

	if s.tlsConfig == nil {
		slog.Info("starting server", "addr", listener.Addr().String())
		return listener, nil
	}

	cert, err := tls.LoadX509KeyPair(s.tlsConfig.CertFile, s.tlsConfig.KeyFile)
	if err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	slog.Info("starting TLS server", "addr", listener.Addr().String())
	return tls.NewListener(listener, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}
