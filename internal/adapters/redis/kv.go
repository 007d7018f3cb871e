package redis

import (
	"context"
	"fmt"

	"github.com/rafaelleal24/stock-control/internal/core/port"
)

// KV persists ledger collections as plain redis strings without expiry.
type KV struct {
	client *Client
}

func NewKV(client *Client) port.KVStore {
	return &KV{client: client}
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	value, found, err := k.client.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return value, found, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	if err := k.client.Set(ctx, key, value, 0); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

func (k *KV) SetMany(ctx context.Context, entries map[string]string) error {
	if err := k.client.SetMany(ctx, entries, 0); err != nil {
		return fmt.Errorf("redis: set many: %w", err)
	}
	return nil
}
