// Package config provides server configuration for tlsedge.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - env.go: Environment variable names and their configuration keys
//   - verify.go: Validation (host, ports, certificate paths, log settings)
//   - derive.go: Listener addresses and port pair derived from the config
//
// Configuration is loaded via internal/infra/confloader. Once Verify has
// accepted a ServerConfig the listeners treat it as read-only and never
// validate it again.
package config
