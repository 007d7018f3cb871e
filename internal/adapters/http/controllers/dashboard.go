package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stock-control/internal/adapters/http/handlers"
	"github.com/rafaelleal24/stock-control/internal/core/service"
)

type DashboardController struct {
	inventoryService *service.InventoryService
}

func NewDashboardController(inventoryService *service.InventoryService) *DashboardController {
	return &DashboardController{inventoryService: inventoryService}
}

// Summary godoc
// @Summary     Dashboard summary
// @Description Returns product count, total units, low stock count and movement totals
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} domain.Summary
// @Failure     502 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/dashboard/summary [get]
func (dc *DashboardController) Summary(c *gin.Context) {
	summary, err := dc.inventoryService.Summary(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Report godoc
// @Summary     Inventory report
// @Description Returns stock per category and the most moved products
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} domain.Report
// @Failure     502 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/reports [get]
func (dc *DashboardController) Report(c *gin.Context) {
	report, err := dc.inventoryService.Report(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
