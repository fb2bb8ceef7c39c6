// Package config defines the server configuration structure.
package config

// EnvKeys maps the process environment variables to configuration keys.
var EnvKeys = map[string]string{
	"APP_HOST":            "server.host",
	"HTTP_PORT":           "server.http_port",
	"HTTPS_PORT":          "server.https_port",
	"CERT_PATH":           "server.cert_path",
	"CERT_KEY_PATH":       "server.cert_key_path",
	"RATE_LIMIT":          "server.rate_limit",
	"WATCH_CERTS":         "server.watch_certs",
	"READ_HEADER_TIMEOUT": "server.read_header_timeout",
	"REDIRECT_OPTIONAL":   "server.redirect_optional",
	"LOG":                 "log.to_file",
	"LOG_DIR":             "log.dir",
	"LOG_LEVEL":           "log.level",
	"LOG_FORMAT":          "log.format",
}

// EnvAliases are older variable names still honoured. A variable in
// EnvKeys always wins over its alias.
var EnvAliases = map[string]string{
	"APP_PORT": "server.http_port",
}
