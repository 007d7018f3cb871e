package dto

import "github.com/rafaelleal24/stock-control/internal/core/domain"

type CreateMovementRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=entrada saida"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reason    string `json:"reason"`
}

func (r *CreateMovementRequest) ToInput() domain.MovementInput {
	return domain.MovementInput{
		ProductID: domain.ID(r.ProductID),
		Type:      domain.MovementType(r.Type),
		Quantity:  r.Quantity,
		Reason:    r.Reason,
	}
}
