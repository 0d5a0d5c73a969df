package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	api "github.com/rogerio-castellano/catalog-sync/internal/http"
	handler "github.com/rogerio-castellano/catalog-sync/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-sync/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-sync/internal/repo"
)

var productRepo *repo.InMemoryProductRepository

func init() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)
}

func clearAllProducts() {
	productRepo.Clear()
	rl.CleanupAllVisitors()
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getProducts(r http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getProduct(r http.Handler, id int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func updateProduct(r http.Handler, id int64, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/products/%d", id), bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deleteProduct(r http.Handler, id int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func searchProducts(r http.Handler, q string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/search?q="+q, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func toggleVariant(r http.Handler, id int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/variants/%d/toggle-availability", id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProduct(w *httptest.ResponseRecorder) (handler.ProductResponse, error) {
	var resp handler.ProductResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	return resp, err
}

func newRouter() http.Handler {
	return api.NewRouter()
}
