package redis_test

import (
	"context"
	"testing"

	adaptredis "github.com/rafaelleal24/stock-control/internal/adapters/redis"
	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/storage"
)

func TestKV_SetManyAndGet(t *testing.T) {
	kv := adaptredis.NewKV(testClient)
	ctx := context.Background()

	err := kv.SetMany(ctx, map[string]string{
		"kv-test:products":  `[{"id":"1"}]`,
		"kv-test:movements": `[]`,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	value, found, err := kv.Get(ctx, "kv-test:products")
	if err != nil || !found || value != `[{"id":"1"}]` {
		t.Fatalf("unexpected get result %q found=%v err=%v", value, found, err)
	}
	if _, found, _ := kv.Get(ctx, "kv-test:outbox"); found {
		t.Fatal("expected outbox key to be absent")
	}
}

func TestKV_BacksLedgerStore(t *testing.T) {
	store := storage.New(adaptredis.NewKV(testClient), "kv-ledger")
	ctx := context.Background()

	products := []domain.Product{{ID: "1", Name: "Mouse Logitech", Quantity: 3, MinQuantity: 10}}
	if err := storage.Save(ctx, store, storage.KeyProducts, products); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := storage.Load(ctx, store, storage.KeyProducts, []domain.Product{})
	if len(got) != 1 || got[0] != products[0] {
		t.Fatalf("expected round trip, got %+v", got)
	}
}
