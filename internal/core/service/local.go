package service

import (
	"context"
	"time"

	"github.com/rafaelleal24/stock-control/internal/core/domain"
)

const DefaultLocalLatency = 150 * time.Millisecond

// LocalSource serves the inventory from the local ledger, delaying each call
// to behave like a network backend.
type LocalSource struct {
	ledger  *Ledger
	latency time.Duration
}

func NewLocalSource(ledger *Ledger, latency time.Duration) *LocalSource {
	return &LocalSource{ledger: ledger, latency: latency}
}

func (s *LocalSource) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *LocalSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	return s.ledger.ListProducts(ctx)
}

func (s *LocalSource) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	return s.ledger.CreateProduct(ctx, input)
}

func (s *LocalSource) UpdateProduct(ctx context.Context, id domain.ID, input domain.ProductInput) (*domain.Product, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	return s.ledger.UpdateProduct(ctx, id, input)
}

func (s *LocalSource) DeleteProduct(ctx context.Context, id domain.ID) error {
	if err := s.delay(ctx); err != nil {
		return err
	}
	return s.ledger.DeleteProduct(ctx, id)
}

func (s *LocalSource) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	return s.ledger.ListMovements(ctx)
}

func (s *LocalSource) CreateMovement(ctx context.Context, input domain.MovementInput) (*domain.Movement, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	return s.ledger.CreateMovement(ctx, input)
}
