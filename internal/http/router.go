package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/catalog-sync/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-sync/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-sync/internal/observability"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(rl.Middleware)

	r.Post("/products", handlers.CreateProductHandler)
	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/count", handlers.CountProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Put("/products/{id}", handlers.UpdateProductHandler)
	r.Delete("/products/{id}", handlers.DeleteProductHandler)
	r.Get("/search", handlers.SearchProductsHandler)
	r.Put("/variants/{id}/toggle-availability", handlers.ToggleVariantAvailabilityHandler)
	r.Get("/sync/status", handlers.SyncStatusHandler)
	r.Handle("/metrics", observability.Handler())

	return r
}
