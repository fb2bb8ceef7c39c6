package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/tlsedge-go/internal/server/httpserver/conninfo"
	"github.com/yndnr/tlsedge-go/internal/telemetry/metric"
)

// Config configures the secure listener.
type Config struct {
	// Addr is the bind address (host:port).
	Addr string

	// TLSConfig must hold the server certificate.
	TLSConfig *tls.Config

	Handler http.Handler
	Logger  *slog.Logger
	Metrics *metric.Registry

	// ReadHeaderTimeout is passed to http.Server. Zero means none.
	ReadHeaderTimeout time.Duration
}

// Server represents the HTTPS server.
type Server struct {
	addr       string
	logger     *slog.Logger
	httpServer *http.Server
	listener   net.Listener
}

// New creates a new HTTPS server. It does not bind; call Listen.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		addr:   cfg.Addr,
		logger: logger,
		httpServer: &http.Server{
			Handler:           cfg.Handler,
			TLSConfig:         cfg.TLSConfig,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ConnContext:       conninfo.With,
			ErrorLog:          log.New(&errorLogWriter{logger: logger, metrics: cfg.Metrics}, "", 0),
		},
	}
}

// ConnInfoFromContext returns the metadata of the connection a request
// arrived on.
func ConnInfoFromContext(ctx context.Context) (conninfo.Info, bool) {
	return conninfo.FromContext(ctx)
}

// Listen binds the TCP port. A bind failure is returned so the caller can
// abort startup before anything is served.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("httpserver: listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	return nil
}

// Serve accepts TLS connections until ctx is done or the loop fails.
// It binds first if Listen has not been called. Cancellation closes the
// listener and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	if s.httpServer.TLSConfig == nil || len(s.httpServer.TLSConfig.Certificates) == 0 {
		return errors.New("httpserver: no TLS certificate configured")
	}
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	stop := context.AfterFunc(ctx, func() {
		s.httpServer.Close()
	})
	defer stop()

	s.logger.Info("serving", "addr", s.Addr())

	err := s.httpServer.ServeTLS(s.listener, "", "")
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


// errorLogWriter routes http.Server error log lines to the structured
// logger. Handshake failures go to debug and are counted.
type errorLogWriter struct {
	logger  *slog.Logger
	metrics *metric.Registry
}

func (w *errorLogWriter) Write(p []byte) (int, error) {
	line := strings.TrimSpace(string(p))

	if strings.Contains(line, "TLS handshake error") {
		w.metrics.IncTLSHandshakeError()
		w.logger.Debug("tls handshake failed", "detail", line)
	} else {
		w.logger.Error("http server error", "detail", line)
	}

	return len(p), nil
}
