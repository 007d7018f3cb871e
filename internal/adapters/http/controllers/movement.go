package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stock-control/internal/adapters/http/handlers"
	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/dto"
	"github.com/rafaelleal24/stock-control/internal/core/service"
	"github.com/rafaelleal24/stock-control/internal/core/serviceerrors"
)

type MovementController struct {
	inventoryService *service.InventoryService
}

type MovementResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason,omitempty"`
	Date        string `json:"date"`
}

func NewMovementResponse(movement *domain.Movement) MovementResponse {
	return MovementResponse{
		ID:          string(movement.ID),
		ProductID:   string(movement.ProductID),
		ProductName: movement.ProductName,
		Type:        string(movement.Type),
		Quantity:    movement.Quantity,
		Reason:      movement.Reason,
		Date:        movement.Date,
	}
}

func NewMovementController(inventoryService *service.InventoryService) *MovementController {
	return &MovementController{inventoryService: inventoryService}
}

// GetAll godoc
// @Summary     List movements
// @Description Returns every stock movement, newest first
// @Tags        movements
// @Produce     json
// @Success     200 {array}  MovementResponse
// @Failure     502 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/movements [get]
func (mc *MovementController) GetAll(c *gin.Context) {
	movements, err := mc.inventoryService.ListMovements(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]MovementResponse, len(movements))
	for i := range movements {
		response[i] = NewMovementResponse(&movements[i])
	}
	c.JSON(http.StatusOK, response)
}

// CreateMovement godoc
// @Summary     Record a movement
// @Description Records a stock entry or exit and adjusts the product quantity. Exits never take stock below zero.
// @Tags        movements
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                    false "Idempotency key"
// @Param       request         body     dto.CreateMovementRequest true  "Movement data"
// @Success     201             {object} MovementResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     502             {object} handlers.ErrorResponse
// @Failure     503             {object} handlers.ErrorResponse
// @Router      /api/v1/movements [post]
func (mc *MovementController) CreateMovement(c *gin.Context) {
	var request dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	idempotencyKey := c.GetHeader("Idempotency-Key")
	movement, err := mc.inventoryService.CreateMovement(c.Request.Context(), idempotencyKey, request.ToInput())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewMovementResponse(movement))
}
