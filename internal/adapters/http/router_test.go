package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stock-control/internal/adapters/config"
	"github.com/rafaelleal24/stock-control/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/port/mock"
	"github.com/rafaelleal24/stock-control/internal/core/service"
	"go.uber.org/mock/gomock"
)

type denyAll struct{}

func (denyAll) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, nil
}

func setupRouter(t *testing.T) (http.Handler, *mock.MockInventorySource) {
	gin.SetMode(gin.TestMode)
	source := mock.NewMockInventorySource(gomock.NewController(t))
	svc := service.NewInventoryService(source, nil)
	router := NewRouter(
		controllers.NewHealthController("local", nil),
		controllers.NewProductController(svc),
		controllers.NewMovementController(svc),
		controllers.NewDashboardController(svc),
		denyAll{},
		config.RateLimitConfig{Limit: 1, Window: time.Minute},
	)
	return router.Handler(), source
}

func TestRouter_Routes(t *testing.T) {
	handler, source := setupRouter(t)
	source.EXPECT().ListProducts(gomock.Any()).Return([]domain.Product{}, nil).AnyTimes()
	source.EXPECT().ListMovements(gomock.Any()).Return([]domain.Movement{}, nil).AnyTimes()

	for _, path := range []string{
		"/api/v1/health",
		"/api/v1/products",
		"/api/v1/products/low-stock",
		"/api/v1/movements",
		"/api/v1/dashboard/summary",
		"/api/v1/reports",
	} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestRouter_WritesAreRateLimited(t *testing.T) {
	handler, _ := setupRouter(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/v1/products", nil),
		httptest.NewRequest(http.MethodPut, "/api/v1/products/1", nil),
		httptest.NewRequest(http.MethodDelete, "/api/v1/products/1", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/movements", nil),
	} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("%s %s: expected 429, got %d", req.Method, req.URL.Path, w.Code)
		}
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	handler, _ := setupRouter(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
