package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

type serverConfig struct {
	address           string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
}

func defaultServerConfig() serverConfig {
	return serverConfig{
		address:           ":8080",
		readTimeout:       30 * time.Second,
		readHeaderTimeout: 30 * time.Second,
		writeTimeout:      60 * time.Second,
		idleTimeout:       90 * time.Second,
		shutdownTimeout:   10 * time.Second,
	}
}

type ServerOption func(*serverConfig)

func WithAddress(addr string) ServerOption {
	return func(c *serverConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

func WithReadTimeout(d time.Duration) ServerOption {
	return func(c *serverConfig) { c.readTimeout = d }
}

func WithReadHeaderTimeout(d time.Duration) ServerOption {
	return func(c *serverConfig) { c.readHeaderTimeout = d }
}

func WithWriteTimeout(d time.Duration) ServerOption {
	return func(c *serverConfig) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) ServerOption {
	return func(c *serverConfig) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds how long Stop waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(c *serverConfig) { c.shutdownTimeout = d }
}

// ServerOptionsFromConfig reads http.server.{address, read_timeout,
// read_header_timeout, write_timeout, idle_timeout, shutdown_timeout}.
func ServerOptionsFromConfig(cfg contracts.Config) []ServerOption {
	sub, ok := cfg.GetSub("http.server")
	if !ok {
		return nil
	}

	def := defaultServerConfig()
	return []ServerOption{
		WithAddress(sub.GetString("address", def.address)),
		WithReadTimeout(sub.GetDuration("read_timeout", def.readTimeout)),
		WithReadHeaderTimeout(sub.GetDuration("read_header_timeout", def.readHeaderTimeout)),
		WithWriteTimeout(sub.GetDuration("write_timeout", def.writeTimeout)),
		WithIdleTimeout(sub.GetDuration("idle_timeout", def.idleTimeout)),
		WithShutdownTimeout(sub.GetDuration("shutdown_timeout", def.shutdownTimeout)),
	}
}

type httpServer struct {
	server  *http.Server
	router  contracts.HTTPRouter
	config  serverConfig
	addr    string
	logger  contracts.Logger
	running bool
	mu      sync.RWMutex
}

func NewServer(router contracts.HTTPRouter, logger contracts.Logger, opts ...ServerOption) (contracts.HTTPServer, error) {
	if router == nil {
		return nil, ErrInvalidRouter
	}
	if logger == nil {
		return nil, ErrInvalidLogger
	}

	config := defaultServerConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &httpServer{
		router: router,
		config: config,
		addr:   config.address,
		logger: logger,
	}, nil
}

func (s *httpServer) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrServerAlreadyRunning
	}

	s.server = &http.Server{
		Addr:              s.config.address,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.readHeaderTimeout,
		ReadTimeout:       s.config.readTimeout,
		WriteTimeout:      s.config.writeTimeout,
		IdleTimeout:       s.config.idleTimeout,
	}

	listener, err := net.Listen("tcp", s.config.address)
	if err != nil {
		return ErrServerStart.WithCause(err).WithDetail("addr", s.config.address)
	}

	s.addr = listener.Addr().String()
	s.running = true

	go func(srv *http.Server) {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}(s.server)

	s.logger.Info("HTTP server started", "addr", s.addr)

	return nil
}

func (s *httpServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	if s.config.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.shutdownTimeout)
		defer cancel()
	}

	s.running = false
	if err := s.server.Shutdown(ctx); err != nil {
		_ = s.server.Close()
		return ErrServerStop.WithCause(err)
	}

	s.logger.Info("HTTP server stopped")

	return nil
}

func (s *httpServer) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

func (s *httpServer) Handler() http.Handler {
	return s.router
}
