package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rafaelleal24/stock-control/internal/core/domain"
	otellog "go.opentelemetry.io/otel/log"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	return line
}

func TestStdoutLogger_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	l, err := newStdoutLogger(&buf, Options{ServiceName: "stock-control"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	restore := Replace(l)
	defer restore()

	Error(context.Background(), "ledger: persist failed", errors.New("disk full"), map[string]any{"key": "products"})

	line := decodeLine(t, &buf)
	if line["level"] != "error" {
		t.Fatalf("expected level 'error', got %v", line["level"])
	}
	if line["message"] != "ledger: persist failed" {
		t.Fatalf("unexpected message %v", line["message"])
	}
	if line["error"] != "disk full" {
		t.Fatalf("expected error field, got %v", line["error"])
	}
	if line["key"] != "products" {
		t.Fatalf("expected key attribute, got %v", line["key"])
	}
	if line["service"] != "stock-control" {
		t.Fatalf("expected service attribute, got %v", line["service"])
	}
}

func TestStdoutLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := newStdoutLogger(&buf, Options{Level: "warn"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	l.Log(context.Background(), LogEntry{Level: LogLevelInfo, Message: "dropped"})
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	l.Log(context.Background(), LogEntry{Level: LogLevelWarn, Message: "kept"})
	if line := decodeLine(t, &buf); line["message"] != "kept" {
		t.Fatalf("expected warn line, got %v", line)
	}
}

func TestStdoutLogger_InvalidLevel(t *testing.T) {
	if _, err := newStdoutLogger(&bytes.Buffer{}, Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestReplace_Restores(t *testing.T) {
	original := globalLogger
	restore := Replace(noopLogger{})
	restore()

	if globalLogger != original {
		t.Fatal("expected original logger to be restored")
	}
}

func TestOtelValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  otellog.Value
	}{
		{"string", "a", otellog.StringValue("a")},
		{"stringer", domain.ID("p1"), otellog.StringValue("p1")},
		{"int", 3, otellog.IntValue(3)},
		{"int64", int64(4), otellog.Int64Value(4)},
		{"bool", true, otellog.BoolValue(true)},
		{"fallback", []int{1}, otellog.StringValue("[1]")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := otelValue(tt.value); !got.Equal(tt.want) {
				t.Errorf("otelValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
