package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rafaelleal24/stock-control/docs"
	"github.com/rafaelleal24/stock-control/internal/adapters/config"
	"github.com/rafaelleal24/stock-control/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stock-control/internal/adapters/http/middleware"
)

type Router struct {
	healthController    *controllers.HealthController
	productController   *controllers.ProductController
	movementController  *controllers.MovementController
	dashboardController *controllers.DashboardController
	rateLimiter         middleware.RateLimiter
	rateLimit           config.RateLimitConfig
}

// NewRouter wires the controllers. rateLimiter may be nil, in which case write
// routes are not limited.
func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	movementController *controllers.MovementController,
	dashboardController *controllers.DashboardController,
	rateLimiter middleware.RateLimiter,
	rateLimit config.RateLimitConfig,
) *Router {
	return &Router{
		healthController:    healthController,
		productController:   productController,
		movementController:  movementController,
		dashboardController: dashboardController,
		rateLimiter:         rateLimiter,
		rateLimit:           rateLimit,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	limit := middleware.RateLimit(r.rateLimiter, r.rateLimit.Limit, r.rateLimit.Window)

	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	v1Group := router.Group("/api/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		v1Group.GET("/products", r.productController.GetAll)
		v1Group.GET("/products/low-stock", r.productController.GetLowStock)
		v1Group.POST("/products", limit, r.productController.CreateProduct)
		v1Group.PUT("/products/:id", limit, r.productController.UpdateProduct)
		v1Group.DELETE("/products/:id", limit, r.productController.DeleteProduct)

		v1Group.GET("/movements", r.movementController.GetAll)
		v1Group.POST("/movements", limit, r.movementController.CreateMovement)

		v1Group.GET("/dashboard/summary", r.dashboardController.Summary)
		v1Group.GET("/reports", r.dashboardController.Report)
	}
}

func (r *Router) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)
	return engine
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
