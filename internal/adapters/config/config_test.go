package config

import (
	"testing"
	"time"
)

func TestAPIConfig_RemoteMode(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"http://inventory.local", true},
		{"  http://inventory.local  ", true},
	}
	for _, tt := range tests {
		if got := (APIConfig{BaseURL: tt.url}).RemoteMode(); got != tt.want {
			t.Errorf("RemoteMode(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"INVENTORY_API_URL", "STORE_DRIVER", "STORE_LATENCY", "REDIS_URL", "RABBITMQ_URL", "STORE_SEED_DEFAULTS"} {
		t.Setenv(key, "")
	}
	// blank durations and bools fall back to their defaults
	cfg := NewConfig()

	if cfg.API.RemoteMode() {
		t.Fatal("expected local mode by default")
	}
	if cfg.Redis.Enabled() || cfg.RabbitMQ.Enabled() {
		t.Fatal("expected redis and rabbitmq disabled")
	}
	if cfg.Store.Prefix != "controle-estok" {
		t.Fatalf("unexpected prefix %q", cfg.Store.Prefix)
	}
	if cfg.Store.Latency != 150*time.Millisecond {
		t.Fatalf("expected fallback latency on invalid duration, got %v", cfg.Store.Latency)
	}
	if !cfg.Store.SeedDefaults {
		t.Fatal("expected seed defaults on invalid bool")
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", " http://api.local ")
	t.Setenv("INVENTORY_API_TIMEOUT", "3s")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORE_LATENCY", "0s")
	t.Setenv("STORE_STRICT_WRITES", "true")
	t.Setenv("STORE_SEED_DEFAULTS", "false")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("OUTBOX_INTERVAL", "250")

	cfg := NewConfig()

	if !cfg.API.RemoteMode() || cfg.API.Timeout != 3*time.Second {
		t.Fatalf("unexpected api config %+v", cfg.API)
	}
	if cfg.Store.Driver != StoreDriverMemory || cfg.Store.Latency != 0 || !cfg.Store.StrictWrites || cfg.Store.SeedDefaults {
		t.Fatalf("unexpected store config %+v", cfg.Store)
	}
	if !cfg.Redis.Enabled() {
		t.Fatal("expected redis enabled")
	}
	if cfg.Outbox.Interval != 250*time.Millisecond {
		t.Fatalf("unexpected outbox interval %v", cfg.Outbox.Interval)
	}
}

func TestEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_DURATION", "soon")

	if got := getIntEnv("TEST_INT", 7); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := getBoolEnv("TEST_BOOL", true); !got {
		t.Fatal("expected default true")
	}
	if got := getDurationEnv("TEST_DURATION", time.Second); got != time.Second {
		t.Fatalf("expected 1s, got %v", got)
	}
	if got := getStringEnv("TEST_MISSING_KEY", "x"); got != "x" {
		t.Fatalf("expected x, got %q", got)
	}
}
