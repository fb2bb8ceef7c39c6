// Package tlscert loads the server certificate and key into a TLS context
// and watches the files for changes.
//
// The TLS context is built once at startup. A Monitor only reports that
// the files on disk changed; the running process keeps serving with the
// certificate it started with until it is restarted.
package tlscert
