package redirectserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/tlsedge-go/internal/telemetry/metric"
)

// Handler returns the handler that answers every request with a permanent
// redirect to its HTTPS equivalent.
//
// Responses carry no Date header, so the same request always yields a
// byte-identical response.
func Handler(ports Ports, logger *slog.Logger, metrics *metric.Registry) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Date"] = nil

		target, err := RewriteTarget(r.Host, r.URL.RequestURI(), ports)
		if err != nil {
			logger.Warn("failed to convert URI to HTTPS",
				"error", err,
				"host", r.Host,
				"uri", r.RequestURI,
				"remote_addr", r.RemoteAddr,
			)
			metrics.RecordRedirect(metric.RedirectResultRejected)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		metrics.RecordRedirect(metric.RedirectResultRedirected)
		w.Header().Set("Location", target.String())
		w.WriteHeader(http.StatusMovedPermanently)
	})
}
