package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stock-control/internal/adapters/http/handlers"
	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/dto"
	"github.com/rafaelleal24/stock-control/internal/core/service"
	"github.com/rafaelleal24/stock-control/internal/core/serviceerrors"
)

type ProductController struct {
	inventoryService *service.InventoryService
}

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Supplier    string `json:"supplier"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
	LowStock    bool   `json:"lowStock"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          string(product.ID),
		Name:        product.Name,
		Category:    product.Category,
		Supplier:    product.Supplier,
		Quantity:    product.Quantity,
		MinQuantity: product.MinQuantity,
		LowStock:    product.IsLowStock(),
	}
}

func newProductListResponse(products []domain.Product) []ProductResponse {
	response := make([]ProductResponse, len(products))
	for i := range products {
		response[i] = NewProductResponse(&products[i])
	}
	return response
}

func NewProductController(inventoryService *service.InventoryService) *ProductController {
	return &ProductController{inventoryService: inventoryService}
}

func productIDParam(c *gin.Context) (domain.ID, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("Invalid product ID"))
		return "", false
	}
	return domain.ID(id), true
}

// GetAll godoc
// @Summary     List all products
// @Description Returns every product in the inventory
// @Tags        products
// @Produce     json
// @Success     200 {array}  ProductResponse
// @Failure     502 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/products [get]
func (pc *ProductController) GetAll(c *gin.Context) {
	products, err := pc.inventoryService.ListProducts(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductListResponse(products))
}

// GetLowStock godoc
// @Summary     List low stock products
// @Description Returns products whose quantity is below their minimum
// @Tags        products
// @Produce     json
// @Success     200 {array}  ProductResponse
// @Failure     502 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/products/low-stock [get]
func (pc *ProductController) GetLowStock(c *gin.Context) {
	products, err := pc.inventoryService.LowStockProducts(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductListResponse(products))
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Creates a new product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body     dto.ProductRequest true "Product data"
// @Success     201     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     502     {object} handlers.ErrorResponse
// @Failure     503     {object} handlers.ErrorResponse
// @Router      /api/v1/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.inventoryService.CreateProduct(c.Request.Context(), request.ToInput())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// UpdateProduct godoc
// @Summary     Update a product
// @Description Replaces every mutable field of an existing product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     string             true "Product ID"
// @Param       request body     dto.ProductRequest true "Product data"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     502     {object} handlers.ErrorResponse
// @Failure     503     {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [put]
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	var request dto.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.inventoryService.UpdateProduct(c.Request.Context(), id, request.ToInput())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// DeleteProduct godoc
// @Summary     Delete a product
// @Description Removes a product. Its movements are kept.
// @Tags        products
// @Param       id  path string true "Product ID"
// @Success     204
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     502 {object} handlers.ErrorResponse
// @Failure     503 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [delete]
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	if err := pc.inventoryService.DeleteProduct(c.Request.Context(), id); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
