// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if net.ParseIP(cfg.Host) == nil {
		return fmt.Errorf("server.host %q is not an IP address (APP_HOST)", cfg.Host)
	}

	if cfg.HTTPPort == 0 {
		return errors.New("server.http_port must be between 1 and 65535 (HTTP_PORT)")
	}
	if cfg.HTTPSPort == 0 {
		return errors.New("server.https_port must be between 1 and 65535 (HTTPS_PORT)")
	}
	if cfg.HTTPPort == cfg.HTTPSPort {
		return fmt.Errorf("server.http_port and server.https_port are both %d", cfg.HTTPPort)
	}

	if cfg.CertPath == "" {
		return errors.New("server.cert_path is required (CERT_PATH env var missing)")
	}
	if cfg.CertKeyPath == "" {
		return errors.New("server.cert_key_path is required (CERT_KEY_PATH env var missing)")
	}

	if cfg.RateLimit < 0 {
		return errors.New("server.rate_limit must not be negative")
	}
	if cfg.ReadHeaderTimeout < 0 {
		return errors.New("server.read_header_timeout must not be negative")
	}

	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}

	if cfg.ToFile && cfg.Dir == "" {
		return errors.New("log.dir is required when log.to_file is set")
	}

	return nil
}
