package outbox

import (
	"context"
	"slices"

	"github.com/rafaelleal24/stock-control/internal/core/storage"
)

// StoreRepository reads the outbox collection the ledger commits alongside
// products and movements. It shares the store lock with the ledger.
type StoreRepository struct {
	store *storage.Store
}

func NewStoreRepository(store *storage.Store) Repository {
	return &StoreRepository{store: store}
}

func (r *StoreRepository) load(ctx context.Context) []storage.OutboxRecord {
	return storage.Load(ctx, r.store, storage.KeyOutbox, []storage.OutboxRecord{})
}

// FetchPending returns the oldest records first.
func (r *StoreRepository) FetchPending(ctx context.Context, limit int) ([]Entry, error) {
	var records []storage.OutboxRecord
	_ = r.store.WithLock(func() error {
		records = r.load(ctx)
		return nil
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	entries := make([]Entry, len(records))
	for i, record := range records {
		entries[i] = Entry{
			ID:         record.ID,
			EventName:  record.EventName,
			EntityName: record.EntityName,
			EventData:  []byte(record.EventData),
			StagedAt:   record.CreatedAt,
		}
	}
	return entries, nil
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	return r.store.WithLock(func() error {
		records := r.load(ctx)
		remaining := slices.DeleteFunc(slices.Clone(records), func(record storage.OutboxRecord) bool {
			return record.ID == id
		})
		if len(remaining) == len(records) {
			return nil
		}
		return storage.Save(ctx, r.store, storage.KeyOutbox, remaining)
	})
}
