package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/rafaelleal24/stock-control/internal/core/port"
)

// KV is a process local medium. Contents are lost on restart.
type KV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKV() port.KVStore {
	return &KV{data: make(map[string]string)}
}

func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	value, ok := k.data[key]
	return value, ok, nil
}

func (k *KV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = value
	return nil
}

func (k *KV) SetMany(_ context.Context, entries map[string]string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	maps.Copy(k.data, entries)
	return nil
}
