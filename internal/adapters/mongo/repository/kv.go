package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rafaelleal24/stock-control/internal/adapters/mongo/document"
	"github.com/rafaelleal24/stock-control/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const kvCollection = "kv_entries"

// KVRepository stores each key as a document. SetMany writes inside a
// transaction so the collections move together.
type KVRepository struct {
	collection *mongo.Collection
	txManager  port.TransactionManager
}

func NewKVRepository(db *mongo.Database, txManager port.TransactionManager) *KVRepository {
	return &KVRepository{
		collection: db.Collection(kvCollection),
		txManager:  txManager,
	}
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var doc document.EntryDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo: get %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	if err := r.upsert(ctx, key, value); err != nil {
		return fmt.Errorf("mongo: set %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	err := r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for key, value := range entries {
			if err := r.upsert(txCtx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("mongo: set many: %w", err)
	}
	return nil
}

func (r *KVRepository) upsert(ctx context.Context, key, value string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}
