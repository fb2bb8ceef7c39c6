// Package handler provides the HTTP handlers served on the TLS listener.
//
// Routes:
//
//   - GET /         peer address of the caller
//   - GET /health   liveness
//   - GET /metrics  Prometheus exposition, when a metrics handler is set
//
// JSON responses use the Response envelope. /metrics uses the Prometheus
// text format.
package handler
