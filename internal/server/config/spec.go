// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for tlsedge-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures both listeners and the certificate material.
type ServerSection struct {
	// Host is the bind address shared by the redirect and secure listeners.
	Host string `koanf:"host"`

	// HTTPPort is the plaintext port answered with redirects.
	HTTPPort uint16 `koanf:"http_port"`

	// HTTPSPort is the TLS port serving the application router.
	HTTPSPort uint16 `koanf:"https_port"`

	// CertPath is the PEM certificate chain file.
	CertPath string `koanf:"cert_path"`

	// CertKeyPath is the PEM private key file.
	CertKeyPath string `koanf:"cert_key_path"`

	// RateLimit is the per-IP request rate on the secure listener
	// (requests/second). Zero disables limiting.
	RateLimit int `koanf:"rate_limit"`

	// WatchCerts logs a warning when the certificate files change on disk.
	// Changes are never applied without a restart.
	WatchCerts bool `koanf:"watch_certs"`

	// RedirectOptional lets the secure listener start when the plaintext
	// port cannot be bound. The failure is still logged.
	RedirectOptional bool `koanf:"redirect_optional"`

	// ReadHeaderTimeout bounds how long either listener waits for request
	// headers. Zero means no timeout.
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// ToFile routes logs to a daily rotated file in Dir instead of stdout.
	ToFile bool   `koanf:"to_file"`
	Dir    string `koanf:"dir"`
}
