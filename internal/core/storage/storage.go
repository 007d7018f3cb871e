package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rafaelleal24/stock-control/internal/core/logger"
	"github.com/rafaelleal24/stock-control/internal/core/port"
)

const (
	DefaultPrefix = "controle-estok"

	KeyProducts  = "products"
	KeyMovements = "movements"
	KeyOutbox    = "outbox"
)

// Store keeps JSON encoded collections under namespaced keys of a KVStore.
// There is no cache: every Load reads the medium.
type Store struct {
	kv     port.KVStore
	prefix string
	mu     sync.Mutex
}

func New(kv port.KVStore, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{kv: kv, prefix: prefix}
}

func (s *Store) Key(name string) string {
	return s.prefix + ":" + name
}

// WithLock runs fn while holding the store mutex. Every read-modify-write
// sequence on the store's collections must go through it.
func (s *Store) WithLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Load decodes the collection stored under name. Absent keys, read errors and
// undecodable payloads all yield def.
func Load[T any](ctx context.Context, s *Store, name string, def []T) []T {
	key := s.Key(name)
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		logger.Warn(ctx, "storage: read failed, using default", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return def
	}
	if !found {
		return def
	}

	var collection []T
	if err := json.Unmarshal([]byte(raw), &collection); err != nil || collection == nil {
		attrs := map[string]any{"key": key}
		if err != nil {
			attrs["error"] = err.Error()
		}
		logger.Warn(ctx, "storage: corrupt collection, using default", attrs)
		return def
	}
	return collection
}

func Save[T any](ctx context.Context, s *Store, name string, collection []T) error {
	payload, err := encode(collection)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, s.Key(name), payload); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// Write is one collection staged for Commit.
type Write struct {
	name    string
	payload string
	err     error
}

func Entry[T any](name string, collection []T) Write {
	payload, err := encode(collection)
	return Write{name: name, payload: payload, err: err}
}

// Commit persists every write in a single SetMany call, so either all of the
// collections change or none do.
func (s *Store) Commit(ctx context.Context, writes ...Write) error {
	entries := make(map[string]string, len(writes))
	for _, w := range writes {
		if w.err != nil {
			return fmt.Errorf("storage: encode %s: %w", w.name, w.err)
		}
		entries[s.Key(w.name)] = w.payload
	}
	if len(entries) == 0 {
		return nil
	}
	if err := s.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

func encode[T any](collection []T) (string, error) {
	if collection == nil {
		collection = []T{}
	}
	data, err := json.Marshal(collection)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
