// Package metric provides Prometheus metrics for tlsedge.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, recording helpers, HTTP handler
//   - collector.go: build information collector
//
// Metrics include:
//
//   - Redirect outcomes on the plaintext listener
//   - TLS handshake failures on the secure listener
//   - Request counters and latency histograms
//   - Certificate expiry and on-disk change counts
//
// Metrics are exposed at /metrics on the secure listener.
package metric
