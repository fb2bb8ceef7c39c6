// Package metric provides Prometheus metrics for tlsedge.
//
// All recording methods are safe to call on a nil *Registry, which
// records nothing. Components that run without metrics pass nil.
package metric

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tlsedge"

// Redirect outcomes.
const (
	RedirectResultRedirected = "redirected"
	RedirectResultRejected   = "rejected"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	RedirectsTotal     *prometheus.CounterVec
	TLSHandshakeErrors prometheus.Counter

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	CertificateExpiry  prometheus.Gauge
	CertificateChanges prometheus.Counter

	ListenerExits *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with Go runtime and process
// collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		RedirectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_total",
			Help:      "Plaintext requests answered by the redirect listener, by result.",
		}, []string{"result"}),
		TLSHandshakeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tls_handshake_errors_total",
			Help:      "Connections dropped because the TLS handshake failed.",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests served by the secure listener.",
		}, []string{"method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency on the secure listener.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		CertificateExpiry: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "certificate_expiry_timestamp_seconds",
			Help:      "NotAfter of the served leaf certificate, as a Unix timestamp.",
		}),
		CertificateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "certificate_file_changes_total",
			Help:      "Changes to the certificate or key file seen since startup (not applied until restart).",
		}),
		ListenerExits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listener_exits_total",
			Help:      "Accept loops that stopped with an error, by listener.",
		}, []string{"listener"}),
	}

	reg.MustRegister(
		r.RedirectsTotal,
		r.TLSHandshakeErrors,
		r.RequestsTotal,
		r.RequestDuration,
		r.CertificateExpiry,
		r.CertificateChanges,
		r.ListenerExits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newBuildInfoCollector(),
	)

	return r
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler exposing this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordRedirect counts one answered plaintext request.
func (r *Registry) RecordRedirect(result string) {
	if r == nil {
		return
	}
	r.RedirectsTotal.WithLabelValues(result).Inc()
}

// IncTLSHandshakeError counts one failed TLS handshake.
func (r *Registry) IncTLSHandshakeError() {
	if r == nil {
		return
	}
	r.TLSHandshakeErrors.Inc()
}

// RecordRequest counts one request served by the secure listener.
func (r *Registry) RecordRequest(method, status string) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(method, status).Inc()
}

// ObserveRequestDuration records the latency of one secure request.
func (r *Registry) ObserveRequestDuration(method string, seconds float64) {
	if r == nil {
		return
	}
	r.RequestDuration.WithLabelValues(method).Observe(seconds)
}

// SetCertificateExpiry records the NotAfter of the served certificate.
func (r *Registry) SetCertificateExpiry(notAfter time.Time) {
	if r == nil {
		return
	}
	r.CertificateExpiry.Set(float64(notAfter.Unix()))
}

// IncCertificateChange counts one on-disk change of the certificate files.
func (r *Registry) IncCertificateChange() {
	if r == nil {
		return
	}
	r.CertificateChanges.Inc()
}

// RecordListenerExit counts an accept loop that stopped with an error.
func (r *Registry) RecordListenerExit(listener string) {
	if r == nil {
		return
	}
	r.ListenerExits.WithLabelValues(listener).Inc()
}
