package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newJSONLogger(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "json", cfg: Config{Level: "debug", Format: "json"}},
		{name: "console", cfg: Config{Level: "warning", Format: "console"}},
		{name: "empty level and format", cfg: Config{}},
		{name: "unknown level", cfg: Config{Level: "verbose"}, wantErr: true},
		{name: "unknown format", cfg: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("test message", "addr", "127.0.0.1:443")

			entry := decodeEntry(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["msg"] != "test message" {
				t.Errorf("msg = %v", entry["msg"])
			}
			if entry["addr"] != "127.0.0.1:443" {
				t.Errorf("addr = %v", entry["addr"])
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.With("listener", "redirect").Info("listening")

	entry := decodeEntry(t, buf)
	if entry["listener"] != "redirect" {
		t.Errorf("listener = %v, want redirect", entry["listener"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")

	l.Debug("debug message")
	l.Info("info message")
	if buf.Len() > 0 {
		t.Error("Debug/Info messages should be filtered when level is warn")
	}

	l.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("Warn message should be logged")
	}
}

func TestFromSlog(t *testing.T) {
	var buf bytes.Buffer
	l := FromSlog(slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx := WithRequestID(context.Background(), "req-7")
	l.WithContext(ctx).Info("wrapped")

	entry := decodeEntry(t, &buf)
	if entry["msg"] != "wrapped" || entry["request_id"] != "req-7" {
		t.Errorf("entry = %v", entry)
	}

	if FromSlog(nil) != Default() {
		t.Error("FromSlog(nil) should return the default logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"debug", "DEBUG", false},
		{"DEBUG", "DEBUG", false},
		{"info", "INFO", false},
		{"", "INFO", false},
		{"warn", "WARN", false},
		{"warning", "WARN", false},
		{"ERROR", "ERROR", false},
		{"trace", "INFO", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got.String() != tt.want {
				t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	l := Default()
	if l == nil {
		t.Fatal("Default() returned nil")
	}
	l.Info("test message")
}

func TestSetDefault(t *testing.T) {
	previous := Default()
	t.Cleanup(func() { SetDefault(previous) })

	l, buf := newJSONLogger(t, "debug")
	SetDefault(l)

	FromContext(context.Background()).Debug("via default")
	if buf.Len() == 0 {
		t.Error("FromContext without a logger should use the default logger")
	}
}

func TestLogger_WithContextRequestID(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	ctx := WithRequestID(context.Background(), "01HZX3J5K6")
	l.WithContext(ctx).Info("request served")

	entry := decodeEntry(t, buf)
	if entry["request_id"] != "01HZX3J5K6" {
		t.Errorf("request_id = %v", entry["request_id"])
	}
}

func TestStd(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	Std(l).Warn("from slog", "remote_addr", "10.0.0.1:5000")

	entry := decodeEntry(t, buf)
	if entry["msg"] != "from slog" {
		t.Errorf("msg = %v", entry["msg"])
	}

	if Std(nil) == nil {
		t.Error("Std(nil) should fall back to slog.Default")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("DefaultConfig().Level = %q, want %q", cfg.Level, "info")
	}
	if cfg.Format != "text" {
		t.Errorf("DefaultConfig().Format = %q, want %q", cfg.Format, "text")
	}
	if cfg.Output == nil {
		t.Error("DefaultConfig().Output should not be nil")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("serving", "addr", "127.0.0.1:443")

	output := buf.String()
	if !strings.Contains(output, "msg=serving") {
		t.Errorf("Text output should contain the message, got: %s", output)
	}
	if !strings.Contains(output, "addr=127.0.0.1:443") {
		t.Errorf("Text output should contain addr, got: %s", output)
	}
}
