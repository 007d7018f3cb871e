package remote_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rafaelleal24/stock-control/internal/adapters/config"
	"github.com/rafaelleal24/stock-control/internal/adapters/remote"
	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/serviceerrors"
)

func newSource(t *testing.T, handler http.HandlerFunc) *remote.Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return remote.NewSource(config.APIConfig{BaseURL: "  " + server.URL + "/  ", Timeout: 2 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSource_ListProducts(t *testing.T) {
	source := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/products" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, []domain.Product{{ID: "1", Name: "Notebook Dell", Quantity: 15, MinQuantity: 5}})
	})

	products, err := source.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(products) != 1 || products[0].Name != "Notebook Dell" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestSource_CreateProductSendsInput(t *testing.T) {
	source := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		var input domain.ProductInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("expected json body: %v", err)
		}
		if input.Name != "Widget" || input.MinQuantity != 5 {
			t.Errorf("unexpected input %+v", input)
		}
		writeJSON(w, http.StatusCreated, domain.NewProductFromInput("new-id", input))
	})

	product, err := source.CreateProduct(context.Background(), domain.ProductInput{Name: "Widget", Quantity: 10, MinQuantity: 5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if product.ID != "new-id" {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestSource_UpdateAndDeleteUseProductPath(t *testing.T) {
	var calls []string
	source := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, domain.Product{ID: "42", Name: "Gadget"})
	})

	if _, err := source.UpdateProduct(context.Background(), "42", domain.ProductInput{Name: "Gadget"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := source.DeleteProduct(context.Background(), "42"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(calls) != 2 || calls[0] != "PUT /products/42" || calls[1] != "DELETE /products/42" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestSource_CreateMovement(t *testing.T) {
	source := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var input map[string]any
		_ = json.Unmarshal(body, &input)
		if input["productId"] != "1" || input["type"] != "saida" {
			t.Errorf("unexpected body %s", body)
		}
		if _, ok := input["reason"]; ok {
			t.Errorf("expected empty reason to be omitted, got %s", body)
		}
		writeJSON(w, http.StatusOK, domain.Movement{ID: "m1", ProductID: "1", Type: domain.MovementTypeSaida, Quantity: 2})
	})

	movement, err := source.CreateMovement(context.Background(), domain.MovementInput{ProductID: "1", Type: domain.MovementTypeSaida, Quantity: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if movement.ID != "m1" {
		t.Fatalf("unexpected movement %+v", movement)
	}
}

func TestSource_FailuresAreRemoteFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		call    func(*remote.Source) error
		message string
	}{
		{
			name:   "create with body text",
			status: http.StatusBadRequest,
			body:   "  nome obrigatório \n",
			call: func(s *remote.Source) error {
				_, err := s.CreateProduct(context.Background(), domain.ProductInput{})
				return err
			},
			message: "nome obrigatório",
		},
		{
			name:   "update with empty body",
			status: http.StatusNotFound,
			call: func(s *remote.Source) error {
				_, err := s.UpdateProduct(context.Background(), "9", domain.ProductInput{})
				return err
			},
			message: "failed to update product",
		},
		{
			name:   "delete with empty body",
			status: http.StatusInternalServerError,
			call: func(s *remote.Source) error {
				return s.DeleteProduct(context.Background(), "9")
			},
			message: "failed to delete product",
		},
		{
			name:   "list movements",
			status: http.StatusServiceUnavailable,
			call: func(s *remote.Source) error {
				_, err := s.ListMovements(context.Background())
				return err
			},
			message: "could not load movements",
		},
		{
			name:   "create movement with body",
			status: http.StatusConflict,
			body:   "estoque bloqueado",
			call: func(s *remote.Source) error {
				_, err := s.CreateMovement(context.Background(), domain.MovementInput{})
				return err
			},
			message: "estoque bloqueado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newSource(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := tt.call(source)
			if !serviceerrors.IsOfKind(err, serviceerrors.KindRemoteFailure) {
				t.Fatalf("expected KindRemoteFailure, got %v", err)
			}
			if err.Error() != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, err.Error())
			}
			svcErr := err.(*serviceerrors.ServiceError)
			if svcErr.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, svcErr.StatusCode)
			}
		})
	}
}

func TestSource_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	source := remote.NewSource(config.APIConfig{BaseURL: url, Timeout: time.Second})
	_, err := source.ListProducts(context.Background())
	if !serviceerrors.IsOfKind(err, serviceerrors.KindRemoteFailure) {
		t.Fatalf("expected KindRemoteFailure, got %v", err)
	}
	if err.Error() != "could not load products" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestSource_InvalidJSON(t *testing.T) {
	source := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := source.ListProducts(context.Background())
	if !serviceerrors.IsOfKind(err, serviceerrors.KindRemoteFailure) {
		t.Fatalf("expected KindRemoteFailure, got %v", err)
	}
}
