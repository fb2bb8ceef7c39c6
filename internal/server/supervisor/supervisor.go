package supervisor

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/tlsedge-go/internal/infra/tlscert"
	"github.com/yndnr/tlsedge-go/internal/server/config"
	"github.com/yndnr/tlsedge-go/internal/server/httpserver"
	"github.com/yndnr/tlsedge-go/internal/server/redirectserver"
	"github.com/yndnr/tlsedge-go/internal/telemetry/metric"
)

// Listener names used in errors, logs and metrics.
const (
	ListenerRedirect = "redirect"
	ListenerSecure   = "secure"
)

// Config is what the supervisor needs from the validated configuration.
type Config struct {
	RedirectAddr string
	SecureAddr   string
	Ports        redirectserver.Ports

	CertPath string
	KeyPath  string

	RateLimit         int
	WatchCerts        bool
	RedirectOptional  bool
	ReadHeaderTimeout time.Duration

	// Version is reported by /health.
	Version string
}

// ConfigFrom derives a supervisor Config from a verified ServerConfig.
func ConfigFrom(c *config.ServerConfig, version string) Config {
	return Config{
		RedirectAddr:      c.RedirectAddr(),
		SecureAddr:        c.SecureAddr(),
		Ports:             c.Ports(),
		CertPath:          c.Server.CertPath,
		KeyPath:           c.Server.CertKeyPath,
		RateLimit:         c.Server.RateLimit,
		WatchCerts:        c.Server.WatchCerts,
		RedirectOptional:  c.Server.RedirectOptional,
		ReadHeaderTimeout: c.Server.ReadHeaderTimeout,
		Version:           version,
	}
}

// Supervisor owns both listeners.
type Supervisor struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metric.Registry

	started  bool
	redirect *redirectserver.Server
	secure   *httpserver.Server
}

// New creates a supervisor. Nothing is loaded or bound until Start or Run.
func New(cfg Config, logger *slog.Logger, metrics *metric.Registry) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Start builds the TLS context and binds both listeners. Any error is a
// fatal startup error; on error nothing stays bound.
func (s *Supervisor) Start() error {
	if s.started {
		return errors.New("supervisor: already started")
	}

	tlsConfig, err := tlscert.Load(s.cfg.CertPath, s.cfg.KeyPath)
	if err != nil {
		return err
	}
	s.logCertificate(tlsConfig)

	s.redirect = redirectserver.New(redirectserver.Config{
		Addr:              s.cfg.RedirectAddr,
		Ports:             s.cfg.Ports,
		Logger:            s.logger.With("listener", ListenerRedirect),
		Metrics:           s.metrics,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	})

	secureLogger := s.logger.With("listener", ListenerSecure)
	s.secure = httpserver.New(httpserver.Config{
		Addr:      s.cfg.SecureAddr,
		TLSConfig: tlsConfig,
		Handler: httpserver.NewRouter(&httpserver.RouterConfig{
			Logger:      s.logger,
			Metrics:     s.metrics,
			RateLimit:   s.cfg.RateLimit,
			EnableAudit: true,
			Version:     s.cfg.Version,
		}),
		Logger:            secureLogger,
		Metrics:           s.metrics,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	})

	redirectErr := s.redirect.Listen()
	secureErr := s.secure.Listen()

	if redirectErr != nil && secureErr == nil && s.cfg.RedirectOptional {
		s.logger.Error("redirect listener disabled, serving TLS only", "error", redirectErr)
		s.metrics.RecordListenerExit(ListenerRedirect)
		s.redirect = nil
		redirectErr = nil
	}

	if err := errors.Join(named(ListenerRedirect, redirectErr), named(ListenerSecure, secureErr)); err != nil {
		if s.redirect != nil {
			s.redirect.Close()
		}
		s.secure.Close()
		return err
	}

	s.started = true
	return nil
}

// Run starts the supervisor if needed and serves until the secure listener
// stops or ctx is done. The returned error is the secure listener's.
func (s *Supervisor) Run(ctx context.Context) error {
	if !s.started {
		if err := s.Start(); err != nil {
			return err
		}
	}

	if s.cfg.WatchCerts {
		monitor := tlscert.NewMonitor(s.cfg.CertPath, s.cfg.KeyPath,
			tlscert.WithLogger(s.logger),
			tlscert.WithOnChange(func(string) { s.metrics.IncCertificateChange() }),
		)
		if err := monitor.Start(); err != nil {
			s.logger.Warn("certificate monitor not started", "error", err)
		} else {
			defer monitor.Stop()
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if s.redirect != nil {
		g.Go(func() error {
			err := s.redirect.Serve(gctx)
			if gctx.Err() == nil {
				s.logger.Error("redirect listener stopped", "error", err)
				s.metrics.RecordListenerExit(ListenerRedirect)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := s.secure.Serve(gctx); err != nil {
			s.logger.Error("secure listener stopped", "error", err)
			s.metrics.RecordListenerExit(ListenerSecure)
			return named(ListenerSecure, err)
		}
		return nil
	})

	return g.Wait()
}

// RedirectAddr returns the bound plaintext address, or "" when the
// redirect listener is not running.
func (s *Supervisor) RedirectAddr() string {
	if s.redirect == nil {
		return ""
	}
	return s.redirect.Addr()
}

// SecureAddr returns the bound TLS address.
func (s *Supervisor) SecureAddr() string {
	if s.secure == nil {
		return ""
	}
	return s.secure.Addr()
}

func (s *Supervisor) logCertificate(tlsConfig *tls.Config) {
	attrs := []any{
		"cert_path", s.cfg.CertPath,
		"key_path", s.cfg.KeyPath,
	}

	info, err := tlscert.InfoOf(tlsConfig)
	if err != nil {
		s.logger.Info("certificate and key loaded", attrs...)
		return
	}

	attrs = append(attrs,
		"subject", info.Subject,
		"dns_names", info.DNSNames,
		"not_after", info.NotAfter,
	)
	s.logger.Info("certificate and key loaded", attrs...)
	s.metrics.SetCertificateExpiry(info.NotAfter)

	if !info.ValidAt(time.Now()) {
		s.logger.Warn("certificate is outside its validity period",
			"not_before", info.NotBefore,
			"not_after", info.NotAfter,
		)
	}
}

func named(listener string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s listener: %w", listener, err)
}
