// Package logger provides structured logging for tlsedge.
package logger

import (
	"log/slog"
	"net/url"
	"strings"
)

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"authorization",
	"cookie",
}

// URI-valued attribute keys whose query strings are scrubbed.
var uriKeys = map[string]bool{
	"uri":      true,
	"url":      true,
	"location": true,
	"target":   true,
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive checks if an attribute contains sensitive data
// and redacts it if necessary.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()

		// If key name suggests sensitive data and value is non-empty, fully redact
		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}

		if uriKeys[strings.ToLower(a.Key)] && strings.Contains(strVal, "?") {
			return slog.String(a.Key, RedactURI(strVal))
		}
	}

	// Handle nested groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// RedactURI replaces the values of sensitive query parameters in a URI or
// request-target. The rest of the URI is returned unchanged. A value that
// does not parse is returned as is.
func RedactURI(raw string) string {
	i := strings.IndexByte(raw, '?')
	if i < 0 {
		return raw
	}

	query, err := url.ParseQuery(raw[i+1:])
	if err != nil {
		return raw
	}

	changed := false
	for name, values := range query {
		if !IsSensitiveKey(name) {
			continue
		}
		for j := range values {
			values[j] = redactedValue
		}
		changed = true
	}
	if !changed {
		return raw
	}

	return raw[:i+1] + query.Encode()
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
