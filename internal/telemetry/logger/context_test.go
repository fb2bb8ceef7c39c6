package logger

import (
	"context"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	ctx := WithLogger(context.Background(), l)

	retrieved := FromContext(ctx)
	if retrieved == nil {
		t.Fatal("FromContext returned nil")
	}

	retrieved.Info("test message")
	if buf.Len() == 0 {
		t.Error("Logger from context should produce output")
	}
}

func TestFromContext_Default(t *testing.T) {
	if l := FromContext(context.Background()); l == nil {
		t.Error("FromContext should return default logger, got nil")
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-12345")

	if got := RequestIDFromContext(ctx); got != "req-12345" {
		t.Errorf("RequestIDFromContext() = %q, want %q", got, "req-12345")
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty string", got)
	}
}

func TestL_WithRequestID(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	ctx := WithLogger(context.Background(), l)
	ctx = WithRequestID(ctx, "req-12345")

	L(ctx).Info("test message")

	entry := decodeEntry(t, buf)
	if entry["request_id"] != "req-12345" {
		t.Errorf("Expected request_id='req-12345', got %v", entry["request_id"])
	}
}

func TestL_NoRequestID(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	L(WithLogger(context.Background(), l)).Info("test message")

	entry := decodeEntry(t, buf)
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id should be absent")
	}
}
