package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/rafaelleal24/stock-control/internal/adapters/config"
	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/logger"
	"github.com/rafaelleal24/stock-control/internal/core/port"
	"github.com/rafaelleal24/stock-control/internal/core/serviceerrors"
)

const (
	msgListProducts   = "could not load products"
	msgCreateProduct  = "failed to create product"
	msgUpdateProduct  = "failed to update product"
	msgDeleteProduct  = "failed to delete product"
	msgListMovements  = "could not load movements"
	msgCreateMovement = "failed to record movement"
)

// Source talks to a remote inventory API. Failures are never retried and
// never fall back to local data.
type Source struct {
	client *resty.Client
}

var _ port.InventorySource = (*Source)(nil)

func NewSource(cfg config.APIConfig) *Source {
	client := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &Source{client: client}
}

// failure turns a non-2xx response into a RemoteFailure carrying the body
// text, or fallback when the body is blank.
func failure(resp *resty.Response, fallback string) error {
	message := strings.TrimSpace(resp.String())
	if message == "" {
		message = fallback
	}
	return serviceerrors.NewRemoteFailureError(resp.StatusCode(), message)
}

func (s *Source) do(ctx context.Context, method, path string, body any, out any, fallback string) error {
	req := s.client.R().SetContext(ctx)
	if body != nil {
		req = req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Error(ctx, "remote: request failed", err, map[string]any{
			"method": method,
			"path":   path,
		})
		return serviceerrors.NewRemoteFailureError(0, fallback)
	}

	if !resp.IsSuccess() {
		logger.Warn(ctx, "remote: unexpected status", map[string]any{
			"method":      method,
			"path":        path,
			"status_code": resp.StatusCode(),
		})
		return failure(resp, fallback)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		logger.Error(ctx, "remote: invalid response body", err, map[string]any{
			"method": method,
			"path":   path,
		})
		return serviceerrors.NewRemoteFailureError(resp.StatusCode(), fmt.Sprintf("%s: invalid response", fallback))
	}
	return nil
}

func productPath(id domain.ID) string {
	return "/products/" + url.PathEscape(id.String())
}

func (s *Source) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := s.do(ctx, http.MethodGet, "/products", nil, &products, msgListProducts); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *Source) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := s.do(ctx, http.MethodPost, "/products", input, &product, msgCreateProduct); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Source) UpdateProduct(ctx context.Context, id domain.ID, input domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := s.do(ctx, http.MethodPut, productPath(id), input, &product, msgUpdateProduct); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Source) DeleteProduct(ctx context.Context, id domain.ID) error {
	return s.do(ctx, http.MethodDelete, productPath(id), nil, nil, msgDeleteProduct)
}

func (s *Source) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	movements := []domain.Movement{}
	if err := s.do(ctx, http.MethodGet, "/movements", nil, &movements, msgListMovements); err != nil {
		return nil, err
	}
	if movements == nil {
		movements = []domain.Movement{}
	}
	return movements, nil
}

func (s *Source) CreateMovement(ctx context.Context, input domain.MovementInput) (*domain.Movement, error) {
	var movement domain.Movement
	if err := s.do(ctx, http.MethodPost, "/movements", input, &movement, msgCreateMovement); err != nil {
		return nil, err
	}
	return &movement, nil
}
