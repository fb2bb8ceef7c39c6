// Package redirectserver provides the plaintext HTTP listener of tlsedge.
//
// Every request that reaches this listener is answered with a permanent
// redirect (301) to the same resource over HTTPS:
//
//   - ports.go: the immutable plaintext/TLS port pair
//   - rewrite.go: RewriteTarget, the host and request-target rewrite
//   - handler.go: the redirect http.Handler
//   - server.go: bind and accept loop
//
// The listener serves nothing else. A request whose Host cannot be turned
// into an HTTPS authority gets 400 with an empty body and a warning log.
package redirectserver
