package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/tlsedge-go/internal/server/httpserver/handler"
	"github.com/yndnr/tlsedge-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Logger for request logging.
	Logger *slog.Logger

	// Metrics records request metrics and backs GET /metrics.
	// Nil disables both.
	Metrics *metric.Registry

	// RateLimit is the per-IP limit in requests/second. Zero disables it.
	RateLimit int

	// EnableAudit enables an access log line per request.
	EnableAudit bool

	// Version is reported by /health.
	Version string
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:      slog.Default(),
		EnableAudit: true,
	}
}

// NewRouter creates the application router with its middleware chain.
//
// Order: RequestID -> Recover -> RateLimit -> Audit -> Instrument -> Handler
func NewRouter(cfg *RouterConfig) http.Handler {
	if cfg == nil {
		cfg = DefaultRouterConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var metricsHandler http.Handler
	if cfg.Metrics != nil {
		metricsHandler = cfg.Metrics.Handler()
	}

	h := handler.New(handler.Config{
		Metrics: metricsHandler,
		Version: cfg.Version,
	})

	middlewares := []Middleware{
		RequestID(logger),
		Recover(),
	}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit))
	}
	if cfg.EnableAudit {
		middlewares = append(middlewares, Audit())
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, Instrument(cfg.Metrics))
	}

	return Chain(h, middlewares...)
}
