package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	handler "github.com/rogerio-castellano/catalog-sync/internal/http/handlers"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, handler.ProductRequest{
		Title:       "Laptop",
		Vendor:      str("Acme"),
		ProductType: str("Electronics"),
		Price:       dec("1500.00"),
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	resp, err := decodeProduct(w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Title != "Laptop" {
		t.Errorf("expected title 'Laptop', got %v", resp.Title)
	}
	if !resp.Price.Equal(decimal.RequireFromString("1500.00")) {
		t.Errorf("expected price 1500.00, got %v", resp.Price)
	}
	if resp.ExternalId != nil {
		t.Errorf("manually created products must not carry an external id")
	}
}

func TestCreateProductHandler_VariantDefaultsAvailable(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, handler.ProductRequest{
		Title: "Hoodie",
		Price: dec("59.90"),
		Variants: []handler.VariantRequest{
			{Title: str("Small"), SKU: str("HD-S")},
		},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	resp, _ := decodeProduct(w)
	if len(resp.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(resp.Variants))
	}
	// manual variants default to available, feed-sourced ones do not
	if !resp.Variants[0].Available {
		t.Errorf("expected manual variant to default to available")
	}
	if !resp.Variants[0].Price.Equal(decimal.RequireFromString("59.90")) {
		t.Errorf("expected variant to inherit the product price, got %v", resp.Variants[0].Price)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "Empty title",
			payload:        handler.ProductRequest{Title: ""},
			expectedErrors: []string{"Title"},
		},
		{
			name:           "Negative price",
			payload:        handler.ProductRequest{Title: "Mouse", Price: dec("-5.00")},
			expectedErrors: []string{"Price"},
		},
		{
			name: "Variant without any price",
			payload: handler.ProductRequest{
				Title:    "Keyboard",
				Variants: []handler.VariantRequest{{Title: str("ISO")}},
			},
			expectedErrors: []string{"Variants"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	badJSON := `{Title: "Invalid" Price: "100"}` // missing quotes and comma
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(badJSON))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, handler.ProductRequest{Title: "Laptop", Price: dec("1500.00")})
	created, _ := decodeProduct(w)

	w = getProduct(r, created.Id)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decodeProduct(w)
	if resp.Id != created.Id || resp.Title != "Laptop" {
		t.Errorf("unexpected product: %+v", resp)
	}

	w = getProduct(r, 9999)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestUpdateProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, handler.ProductRequest{Title: "Laptop", Price: dec("1500.00")})
	created, _ := decodeProduct(w)

	w = updateProduct(r, created.Id, handler.ProductRequest{
		Title:  "Laptop Pro",
		Vendor: str("Acme"),
		Price:  dec("1999.00"),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decodeProduct(w)
	if resp.Title != "Laptop Pro" || *resp.Vendor != "Acme" {
		t.Errorf("expected updated fields, got %+v", resp)
	}
	if resp.CreatedAt != created.CreatedAt {
		t.Errorf("manual edit must not change created_at")
	}

	w = updateProduct(r, 9999, handler.ProductRequest{Title: "Ghost"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, handler.ProductRequest{Title: "Laptop", Price: dec("1500.00")})
	created, _ := decodeProduct(w)

	if w = deleteProduct(r, created.Id); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w = getProduct(r, created.Id); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
	if w = deleteProduct(r, created.Id); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on double delete, got %d", w.Code)
	}
}

func TestSearchProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, handler.ProductRequest{Title: "Blue Shirt", Price: dec("19.99")})
	createProduct(r, handler.ProductRequest{Title: "Coffee Mug", Price: dec("5.00")})

	w := searchProducts(r, "shirt")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp []handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) != 1 || resp[0].Title != "Blue Shirt" {
		t.Errorf("expected the shirt only, got %+v", resp)
	}

	// empty query returns everything
	w = searchProducts(r, "")
	resp = nil
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("expected both products for an empty query, got %d", len(resp))
	}
}

func TestCountProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, handler.ProductRequest{Title: "One", Price: dec("1.00")})
	createProduct(r, handler.ProductRequest{Title: "Two", Price: dec("2.00")})

	req := httptest.NewRequest(http.MethodGet, "/products/count", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.ProductCountResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}
}

func TestToggleVariantAvailabilityHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, handler.ProductRequest{
		Title: "Hoodie",
		Price: dec("59.90"),
		Variants: []handler.VariantRequest{
			{Title: str("Small"), Price: dec("59.90")},
		},
	})
	created, _ := decodeProduct(w)
	variantID := created.Variants[0].Id

	w = toggleVariant(r, variantID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var variant handler.VariantResponse
	if err := json.NewDecoder(w.Body).Decode(&variant); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if variant.Available {
		t.Errorf("expected available=false after first toggle")
	}

	w = toggleVariant(r, variantID)
	variant = handler.VariantResponse{}
	if err := json.NewDecoder(w.Body).Decode(&variant); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !variant.Available {
		t.Errorf("expected available=true after second toggle")
	}

	if w = toggleVariant(r, 9999); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown variant, got %d", w.Code)
	}
}
