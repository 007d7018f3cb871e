package service

import (
	"context"

	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/logger"
	"github.com/rafaelleal24/stock-control/internal/core/port"
	"golang.org/x/sync/errgroup"
)

const ReportTopMoved = 5

type InventoryService struct {
	source      port.InventorySource
	idempotency *IdempotencyService[domain.Movement]
}

// NewInventoryService wraps the selected source. A nil idempotency service
// disables Idempotency-Key handling.
func NewInventoryService(source port.InventorySource, idempotency *IdempotencyService[domain.Movement]) *InventoryService {
	return &InventoryService{
		source:      source,
		idempotency: idempotency,
	}
}

func (s *InventoryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.source.ListProducts(ctx)
}

func (s *InventoryService) LowStockProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterLowStock(products), nil
}

func (s *InventoryService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	product, err := s.source.CreateProduct(ctx, input)
	if err != nil {
		logger.Error(ctx, "inventory: create product failed", err, map[string]any{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, id domain.ID, input domain.ProductInput) (*domain.Product, error) {
	product, err := s.source.UpdateProduct(ctx, id, input)
	if err != nil {
		logger.Error(ctx, "inventory: update product failed", err, map[string]any{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info(ctx, "Product updated", map[string]any{
		"product_id": id,
		"quantity":   product.Quantity,
	})
	return product, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id domain.ID) error {
	if err := s.source.DeleteProduct(ctx, id); err != nil {
		logger.Error(ctx, "inventory: delete product failed", err, map[string]any{
			"product_id": id,
		})
		return err
	}

	logger.Info(ctx, "Product deleted", map[string]any{
		"product_id": id,
	})
	return nil
}

func (s *InventoryService) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	return s.source.ListMovements(ctx)
}

func (s *InventoryService) recordMovement(ctx context.Context, input domain.MovementInput) (*domain.Movement, error) {
	movement, err := s.source.CreateMovement(ctx, input)
	if err != nil {
		logger.Error(ctx, "inventory: create movement failed", err, map[string]any{
			"product_id": input.ProductID,
			"type":       input.Type,
		})
		return nil, err
	}

	logger.Info(ctx, "Movement recorded", map[string]any{
		"movement_id": movement.ID,
		"product_id":  movement.ProductID,
		"type":        movement.Type,
		"quantity":    movement.Quantity,
	})
	return movement, nil
}

// CreateMovement records a movement. With a non-empty idempotency key a retried
// request returns the movement recorded by the first one.
func (s *InventoryService) CreateMovement(ctx context.Context, idempotencyKey string, input domain.MovementInput) (*domain.Movement, error) {
	if idempotencyKey == "" || s.idempotency == nil {
		return s.recordMovement(ctx, input)
	}
	return s.idempotency.Run(ctx, idempotencyKey, input, func(ctx context.Context) (*domain.Movement, error) {
		return s.recordMovement(ctx, input)
	})
}

func (s *InventoryService) snapshot(ctx context.Context) ([]domain.Product, []domain.Movement, error) {
	var (
		products  []domain.Product
		movements []domain.Movement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.source.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		movements, err = s.source.ListMovements(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, movements, nil
}

func (s *InventoryService) Summary(ctx context.Context) (*domain.Summary, error) {
	products, movements, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(products, movements)
	return &summary, nil
}

func (s *InventoryService) Report(ctx context.Context) (*domain.Report, error) {
	products, movements, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	report := domain.BuildReport(products, movements, ReportTopMoved)
	return &report, nil
}
