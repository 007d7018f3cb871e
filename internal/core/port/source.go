package port

import (
	"context"

	"github.com/rafaelleal24/stock-control/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// InventorySource is the data access capability used by the service layer.
// It is backed either by a remote inventory API or by the local ledger.
type InventorySource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id domain.ID, input domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id domain.ID) error
	ListMovements(ctx context.Context) ([]domain.Movement, error)
	CreateMovement(ctx context.Context, input domain.MovementInput) (*domain.Movement, error)
}
