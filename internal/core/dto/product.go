package dto

import "github.com/rafaelleal24/stock-control/internal/core/domain"

// ProductRequest is the body of product create and update calls. Quantities are
// pointers so an explicit zero passes the required check.
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Supplier    string `json:"supplier" binding:"required"`
	Quantity    *int   `json:"quantity" binding:"required,gte=0"`
	MinQuantity *int   `json:"minQuantity" binding:"required,gte=0"`
}

func (r *ProductRequest) ToInput() domain.ProductInput {
	return domain.ProductInput{
		Name:        r.Name,
		Category:    r.Category,
		Supplier:    r.Supplier,
		Quantity:    valueOrZero(r.Quantity),
		MinQuantity: valueOrZero(r.MinQuantity),
	}
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
