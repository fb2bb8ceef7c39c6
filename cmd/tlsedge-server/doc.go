// Package main provides the entry point for tlsedge-server.
//
// tlsedge-server terminates TLS on the secure port and answers every
// plaintext request on the HTTP port with a permanent redirect to its
// HTTPS equivalent.
//
// Usage:
//
//	tlsedge-server [--config FILE] [--env-file FILE]
//	tlsedge-server --version
//
// Settings come from the process environment (CERT_PATH, CERT_KEY_PATH,
// APP_HOST, HTTP_PORT, HTTPS_PORT, LOG, LOG_DIR, ...), then the env file,
// then the optional YAML file.
package main
