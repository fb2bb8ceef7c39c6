// Package logger provides structured logging for tlsedge.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: Logger interface, levels, process-wide default
//   - sink.go: Output selection (stdout or a daily rotated file)
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Sensitive data redaction
//
// The sink is chosen once at startup and lives for the whole process.
// Listeners only receive a logger; they never pick where logs go.
package logger
