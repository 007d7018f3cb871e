package service

import (
	"context"
	"slices"
	"time"

	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/logger"
	"github.com/rafaelleal24/stock-control/internal/core/serviceerrors"
	"github.com/rafaelleal24/stock-control/internal/core/storage"
	"github.com/rafaelleal24/stock-control/internal/core/utils"
)

const productNotFoundForMovement = "product not found for movement registration"

type LedgerOptions struct {
	// SeedDefaults serves the sample inventory while a collection is absent.
	SeedDefaults bool
	// Events stages movement and low stock events in the outbox collection.
	Events bool
	// StrictWrites surfaces persistence failures instead of logging them.
	StrictWrites bool

	NewID func() string
	Now   func() time.Time
}

// Ledger owns stock mutations over the persistent store. It keeps no state
// between calls.
type Ledger struct {
	store        *storage.Store
	seedDefaults bool
	events       bool
	strictWrites bool
	newID        func() string
	now          func() time.Time
}

func NewLedger(store *storage.Store, opts LedgerOptions) *Ledger {
	if opts.NewID == nil {
		opts.NewID = utils.NewID
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Ledger{
		store:        store,
		seedDefaults: opts.SeedDefaults,
		events:       opts.Events,
		strictWrites: opts.StrictWrites,
		newID:        opts.NewID,
		now:          opts.Now,
	}
}

func (l *Ledger) loadProducts(ctx context.Context) []domain.Product {
	def := []domain.Product{}
	if l.seedDefaults {
		def = SeedProducts()
	}
	return storage.Load(ctx, l.store, storage.KeyProducts, def)
}

func (l *Ledger) loadMovements(ctx context.Context) []domain.Movement {
	def := []domain.Movement{}
	if l.seedDefaults {
		def = SeedMovements()
	}
	return storage.Load(ctx, l.store, storage.KeyMovements, def)
}

func (l *Ledger) commit(ctx context.Context, writes ...storage.Write) error {
	err := l.store.Commit(ctx, writes...)
	if err == nil {
		return nil
	}

	logger.Error(ctx, "ledger: persist failed", err, map[string]any{
		"strict": l.strictWrites,
	})
	if l.strictWrites {
		return serviceerrors.NewStorageFailureError("failed to persist inventory state")
	}
	return nil
}

func (l *Ledger) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return l.loadProducts(ctx), nil
}

func (l *Ledger) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	var created *domain.Product
	err := l.store.WithLock(func() error {
		products := l.loadProducts(ctx)
		created = domain.NewProductFromInput(domain.ID(l.newID()), input)
		products = append(products, *created)
		return l.commit(ctx, storage.Entry(storage.KeyProducts, products))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (l *Ledger) UpdateProduct(ctx context.Context, id domain.ID, input domain.ProductInput) (*domain.Product, error) {
	var updated *domain.Product
	err := l.store.WithLock(func() error {
		products := l.loadProducts(ctx)
		i := domain.FindProduct(products, id)
		if i < 0 {
			return serviceerrors.NewNotFoundError("product not found")
		}
		products[i].Replace(input)
		product := products[i]
		updated = &product
		return l.commit(ctx, storage.Entry(storage.KeyProducts, products))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes the product if present. Movements referencing it are
// kept as they are. An unknown id writes nothing.
func (l *Ledger) DeleteProduct(ctx context.Context, id domain.ID) error {
	return l.store.WithLock(func() error {
		products := l.loadProducts(ctx)
		before := len(products)
		products = slices.DeleteFunc(products, func(p domain.Product) bool {
			return p.ID == id
		})
		if len(products) == before {
			return nil
		}
		return l.commit(ctx, storage.Entry(storage.KeyProducts, products))
	})
}

func (l *Ledger) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	movements := l.loadMovements(ctx)
	domain.SortNewestFirst(movements)
	return movements, nil
}

// CreateMovement applies the movement to its product and records it. The
// product, the movement history and any staged events are written together.
//
// An unknown product is reported before the type and quantity are checked.
func (l *Ledger) CreateMovement(ctx context.Context, input domain.MovementInput) (*domain.Movement, error) {
	var recorded *domain.Movement
	err := l.store.WithLock(func() error {
		products := l.loadProducts(ctx)
		i := domain.FindProduct(products, input.ProductID)
		if i < 0 {
			return serviceerrors.NewNotFoundError(productNotFoundForMovement)
		}
		if !input.Type.IsValid() {
			return serviceerrors.NewInvalidRequestError("invalid movement type")
		}
		if input.Quantity <= 0 {
			return serviceerrors.NewInvalidRequestError("movement quantity must be greater than zero")
		}

		product := &products[i]
		wasLow := product.IsLowStock()
		resulting := product.ApplyMovement(input.Type, input.Quantity)

		at := l.now()
		movement := domain.NewMovement(domain.ID(l.newID()), product, input.Type, input.Quantity, input.Reason, at)
		movements := append([]domain.Movement{*movement}, l.loadMovements(ctx)...)

		writes := []storage.Write{
			storage.Entry(storage.KeyProducts, products),
			storage.Entry(storage.KeyMovements, movements),
		}
		if l.events {
			events := []domain.Event{domain.NewMovementRecordedEvent(movement, resulting)}
			if !wasLow && product.IsLowStock() {
				events = append(events, domain.NewLowStockEvent(product, movement.ID))
			}
			outbox, err := l.stageEvents(ctx, events, at)
			if err != nil {
				return err
			}
			writes = append(writes, storage.Entry(storage.KeyOutbox, outbox))
		}

		if err := l.commit(ctx, writes...); err != nil {
			return err
		}
		recorded = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

func (l *Ledger) stageEvents(ctx context.Context, events []domain.Event, at time.Time) ([]storage.OutboxRecord, error) {
	outbox := storage.Load(ctx, l.store, storage.KeyOutbox, []storage.OutboxRecord{})
	for _, event := range events {
		record, err := storage.NewOutboxRecord(l.newID(), event, at)
		if err != nil {
			return nil, err
		}
		outbox = append(outbox, record)
	}
	return outbox, nil
}
