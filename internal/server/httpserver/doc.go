// Package httpserver provides the TLS listener and its router.
//
// The Server binds a TCP port, performs the TLS handshake with a
// configuration built once at startup and serves requests with net/http.
// Each request context carries the metadata of the connection it arrived
// on (see ConnInfoFromContext). Handshake failures are logged at debug
// level and counted; they never affect other connections.
package httpserver
