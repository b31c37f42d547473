package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}, &buf
}

func TestWithContextAttachesRequestScopedFields(t *testing.T) {
	log, buf := captureLogger()

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, SessionTokenKey, "sess-456")

	log.WithContext(ctx).Info("checkout")

	out := buf.String()
	if !strings.Contains(out, "request_id=req-123") {
		t.Fatalf("expected request id in log line, got %q", out)
	}
	if !strings.Contains(out, "session_token=sess-456") {
		t.Fatalf("expected session token in log line, got %q", out)
	}
}

func TestWithContextWithoutValuesAddsNothing(t *testing.T) {
	log, buf := captureLogger()

	log.WithContext(context.Background()).Info("checkout")

	out := buf.String()
	if strings.Contains(out, "request_id") || strings.Contains(out, "session_token") {
		t.Fatalf("expected no request-scoped fields, got %q", out)
	}
}

func TestWithRequestID(t *testing.T) {
	log, buf := captureLogger()

	log.WithRequestID("req-789").Info("checkout")

	if !strings.Contains(buf.String(), "request_id=req-789") {
		t.Fatalf("expected request id in log line, got %q", buf.String())
	}
}
