// Package config defines the server configuration structure.
package config

// Default configuration values.
const (
	DefaultHost      = "127.0.0.1"
	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogDir    = "."
)

// Default returns the default server configuration.
//
// CertPath and CertKeyPath have no default; Verify rejects a config
// that leaves them empty.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Host:       DefaultHost,
			HTTPPort:   DefaultHTTPPort,
			HTTPSPort:  DefaultHTTPSPort,
			WatchCerts: true,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Dir:    DefaultLogDir,
		},
	}
}
