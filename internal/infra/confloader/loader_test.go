package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Host     string        `koanf:"host"`
		HTTPPort uint16        `koanf:"http_port"`
		Watch    bool          `koanf:"watch"`
		Timeout  time.Duration `koanf:"timeout"`
	} `koanf:"server"`
	Log struct {
		Dir string `koanf:"dir"`
	} `koanf:"log"`
}

var (
	testEnvKeys = map[string]string{
		"T_HOST":      "server.host",
		"T_HTTP_PORT": "server.http_port",
		"T_WATCH":     "server.watch",
		"T_TIMEOUT":   "server.timeout",
		"T_LOG_DIR":   "log.dir",
	}
	testAliases = map[string]string{
		"T_APP_PORT": "server.http_port",
	}
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvMapping(testEnvKeys, testAliases),
		WithEnvFile("example.env"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if len(l.envKeys) != len(testEnvKeys) {
		t.Errorf("envKeys has %d entries, want %d", len(l.envKeys), len(testEnvKeys))
	}
	if l.envFile != "example.env" {
		t.Errorf("envFile = %q", l.envFile)
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q", l.filePath)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  host: "0.0.0.0"
  http_port: 8080
  watch: true
`)

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if host := l.GetString("server.host"); host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", host, "0.0.0.0")
	}
	if port := l.GetInt("server.http_port"); port != 8080 {
		t.Errorf("server.http_port = %d, want 8080", port)
	}
	if !l.GetBool("server.watch") {
		t.Error("server.watch should be true")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("T_HOST", "10.0.0.1")
	t.Setenv("T_LOG_DIR", "/var/log/tlsedge")
	t.Setenv("T_UNMAPPED", "ignored")

	l := NewLoader(WithEnvMapping(testEnvKeys, testAliases))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if host := l.GetString("server.host"); host != "10.0.0.1" {
		t.Errorf("server.host = %q, want %q", host, "10.0.0.1")
	}
	if dir := l.GetString("log.dir"); dir != "/var/log/tlsedge" {
		t.Errorf("log.dir = %q", dir)
	}
	for _, k := range l.Keys() {
		if k == "t_unmapped" || k == "T_UNMAPPED" {
			t.Errorf("unmapped variable leaked into key %q", k)
		}
	}
}

func TestLoader_LoadEnv_Alias(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want int
	}{
		{"alias only", map[string]string{"T_APP_PORT": "3000"}, 3000},
		{"primary only", map[string]string{"T_HTTP_PORT": "8080"}, 8080},
		{"primary wins", map[string]string{"T_APP_PORT": "3000", "T_HTTP_PORT": "8080"}, 8080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			l := NewLoader(WithEnvMapping(testEnvKeys, testAliases))
			if err := l.LoadEnv(); err != nil {
				t.Fatalf("LoadEnv() error = %v", err)
			}
			if got := l.GetInt("server.http_port"); got != tt.want {
				t.Errorf("server.http_port = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoader_LoadEnvFile(t *testing.T) {
	path := writeFile(t, "example.env", "T_HOST=192.168.1.10\nT_APP_PORT=3000\n# comment\nOTHER=1\n")

	l := NewLoader(WithEnvMapping(testEnvKeys, testAliases))
	if err := l.LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}

	if host := l.GetString("server.host"); host != "192.168.1.10" {
		t.Errorf("server.host = %q", host)
	}
	if port := l.GetInt("server.http_port"); port != 3000 {
		t.Errorf("server.http_port = %d, want 3000", port)
	}
}

func TestLoader_LoadEnvFile_Missing(t *testing.T) {
	l := NewLoader(WithEnvMapping(testEnvKeys, nil))

	if err := l.LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing env file should be skipped, got: %v", err)
	}
	if err := l.LoadEnvFile(""); err != nil {
		t.Errorf("LoadEnvFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()

	if err := l.LoadMap(map[string]any{"server.host": "localhost", "server.watch": true}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if host := l.GetString("server.host"); host != "localhost" {
		t.Errorf("server.host = %q", host)
	}
	if !l.GetBool("server.watch") {
		t.Error("server.watch should be true")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	configPath := writeFile(t, "config.yaml", `
server:
  host: "from-file"
  http_port: 1
log:
  dir: "from-file"
`)
	envFile := writeFile(t, "example.env", "T_HTTP_PORT=2\nT_LOG_DIR=from-env-file\n")
	t.Setenv("T_LOG_DIR", "from-env")

	l := NewLoader(
		WithEnvMapping(testEnvKeys, testAliases),
		WithEnvFile(envFile),
		WithConfigFile(configPath),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "from-file" {
		t.Errorf("Host = %q, want from-file", cfg.Server.Host)
	}
	if cfg.Server.HTTPPort != 2 {
		t.Errorf("HTTPPort = %d, env file should override YAML", cfg.Server.HTTPPort)
	}
	if cfg.Log.Dir != "from-env" {
		t.Errorf("Log.Dir = %q, process env should override env file", cfg.Log.Dir)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestLoader_Load_KeepsDefaults(t *testing.T) {
	t.Setenv("T_TIMEOUT", "5s")
	t.Setenv("T_WATCH", "false")

	var cfg testConfig
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.HTTPPort = 80
	cfg.Server.Watch = true

	l := NewLoader(WithEnvMapping(testEnvKeys, testAliases))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.HTTPPort != 80 {
		t.Errorf("unset keys should keep defaults, got %+v", cfg.Server)
	}
	if cfg.Server.Watch {
		t.Error("Watch should be overridden to false")
	}
	if cfg.Server.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Server.Timeout)
	}
}

func TestLoader_Load_BadValue(t *testing.T) {
	t.Setenv("T_HTTP_PORT", "not-a-port")

	var cfg testConfig
	l := NewLoader(WithEnvMapping(testEnvKeys, nil))
	if err := l.Load(&cfg); err == nil {
		t.Error("Load() should fail on a non-numeric port")
	}
	if l.IsLoaded() {
		t.Error("IsLoaded() should be false after a failed Load()")
	}
}
