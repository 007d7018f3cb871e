package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestNewID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("expected a UUID, got %q: %v", id, err)
		}
		if parsed.Version() != 4 {
			t.Fatalf("expected version 4 UUID, got version %d", parsed.Version())
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewIDFrom_FallsBackToTimestamp(t *testing.T) {
	now := func() time.Time { return time.UnixMilli(1760522400000) }

	id := newIDFrom(failingReader{}, now)

	prefix, suffix, ok := strings.Cut(id, "-")
	if !ok {
		t.Fatalf("expected '<millis>-<hex>', got %q", id)
	}
	if prefix != "1760522400000" {
		t.Fatalf("expected timestamp prefix, got %q", prefix)
	}
	if suffix == "" {
		t.Fatal("expected random suffix")
	}
	if other := newIDFrom(failingReader{}, now); other == id {
		t.Fatalf("expected distinct fallback ids, got %q twice", id)
	}
}

func TestHashJSON(t *testing.T) {
	a, _ := HashJSON(map[string]any{"productId": "1", "quantity": 2})
	b, _ := HashJSON(map[string]any{"productId": "1", "quantity": 2})
	c, _ := HashJSON(map[string]any{"productId": "1", "quantity": 3})

	if a != b {
		t.Fatal("expected equal payloads to hash equally")
	}
	if a == c {
		t.Fatal("expected different payloads to hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %d chars", len(a))
	}
}

func TestHashJSON_UnmarshalablePayload(t *testing.T) {
	if _, err := HashJSON(map[string]any{"ch": make(chan int)}); err == nil {
		t.Fatal("expected marshal error")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Fatal("expected marshal error")
	}
}
