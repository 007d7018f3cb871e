package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/rafaelleal24/stock-control/internal/core/port"
)

// errCorrupt marks a document that exists but does not decode.
var errCorrupt = errors.New("corrupt document")

// KV keeps every key in one JSON document on disk. Writes replace the
// document through a temp file and a rename, so a crash leaves either the old
// or the new contents.
type KV struct {
	mu   sync.Mutex
	path string
}

func New(path string) (port.KVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create directory: %w", err)
	}
	return &KV{path: path}, nil
}

func (k *KV) read() (map[string]string, error) {
	data, err := os.ReadFile(k.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", k.path, err)
	}

	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("filestore: decode %s: %w: %w", k.path, errCorrupt, err)
	}
	return entries, nil
}

func (k *KV) write(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(k.path), filepath.Base(k.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), k.path); err != nil {
		return fmt.Errorf("filestore: replace %s: %w", k.path, err)
	}
	return nil
}

func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entries, err := k.read()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	return k.SetMany(ctx, map[string]string{key: value})
}

func (k *KV) SetMany(_ context.Context, updates map[string]string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	entries, err := k.read()
	if errors.Is(err, errCorrupt) {
		// the bad document is kept next to the store and replaced by this write
		if err := os.Rename(k.path, k.path+".corrupt"); err != nil {
			return fmt.Errorf("filestore: move aside %s: %w", k.path, err)
		}
		entries, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	maps.Copy(entries, updates)
	return k.write(entries)
}
