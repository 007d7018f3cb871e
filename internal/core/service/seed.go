package service

import (
	"slices"

	"github.com/rafaelleal24/stock-control/internal/core/domain"
)

// Sample inventory served when the store has never been written.
var (
	seedProducts = []domain.Product{
		{ID: "1", Name: "Notebook Dell", Category: "Eletrônicos", Supplier: "Dell Inc.", Quantity: 15, MinQuantity: 5},
		{ID: "2", Name: "Mouse Logitech", Category: "Periféricos", Supplier: "Logitech", Quantity: 3, MinQuantity: 10},
		{ID: "3", Name: "Teclado Mecânico", Category: "Periféricos", Supplier: "Redragon", Quantity: 25, MinQuantity: 10},
		{ID: "4", Name: "Monitor LG 27''", Category: "Eletrônicos", Supplier: "LG", Quantity: 8, MinQuantity: 5},
		{ID: "5", Name: "Cadeira Gamer", Category: "Mobiliário", Supplier: "DT3 Sports", Quantity: 2, MinQuantity: 5},
	}

	seedMovements = []domain.Movement{
		{ID: "m1", ProductID: "1", ProductName: "Notebook Dell", Type: domain.MovementTypeEntrada, Quantity: 5, Reason: "Compra fornecedor", Date: "2025-10-15T10:00:00.000Z"},
		{ID: "m2", ProductID: "2", ProductName: "Mouse Logitech", Type: domain.MovementTypeSaida, Quantity: 3, Reason: "Entrega pedido", Date: "2025-10-14T09:00:00.000Z"},
		{ID: "m3", ProductID: "4", ProductName: "Monitor LG 27''", Type: domain.MovementTypeEntrada, Quantity: 2, Reason: "Reposição estoque", Date: "2025-10-12T16:00:00.000Z"},
	}
)

// SeedProducts returns a fresh copy of the sample products.
func SeedProducts() []domain.Product {
	return slices.Clone(seedProducts)
}

// SeedMovements returns a fresh copy of the sample movements.
func SeedMovements() []domain.Movement {
	return slices.Clone(seedMovements)
}
