package redirectserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/yndnr/tlsedge-go/internal/telemetry/metric"
)

// Config configures the redirect listener.
type Config struct {
	// Addr is the plaintext bind address (host:port).
	Addr string

	// Ports drives the port rewrite. Ports.HTTP is normally the port of
	// Addr.
	Ports Ports

	Logger  *slog.Logger
	Metrics *metric.Registry

	// ReadHeaderTimeout is passed to http.Server. Zero means none.
	ReadHeaderTimeout time.Duration
}

// Server is the plaintext listener that redirects to HTTPS.
type Server struct {
	addr       string
	logger     *slog.Logger
	httpServer *http.Server
	listener   net.Listener
}

// New creates a new redirect server. It does not bind; call Listen.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		addr:   cfg.Addr,
		logger: logger,
		httpServer: &http.Server{
			Handler:           Handler(cfg.Ports, logger, cfg.Metrics),
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelDebug),
		},
	}
}

// Listen binds the plaintext port. A bind failure is returned so the
// caller can abort startup before anything is served.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("redirectserver: listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	return nil
}

// Serve runs the accept loop until ctx is done or the loop fails.
// It binds first if Listen has not been called. Cancellation closes the
// listener and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	stop := context.AfterFunc(ctx, func() {
		s.httpServer.Close()
	})
	defer stop()

	s.logger.Debug("http redirect listening", "addr", s.Addr())

	err := s.httpServer.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Close closes the listener and any open connections. It is safe to call
// on a server that was bound but never served.
func (s *Server) Close() error {
	err := s.httpServer.Close()
	if s.listener != nil {
		if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = cerr
		}
	}
	return err
}
