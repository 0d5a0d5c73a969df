package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	models "github.com/rogerio-castellano/catalog-sync/internal/models"
	repo "github.com/rogerio-castellano/catalog-sync/internal/repo"
)

// CreateProductHandler godoc
// @Summary Create a new product manually
// @Description Adds a product to the catalog. Manually created products carry no external id and are never touched by feed sync.
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} map[string]string
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	product := models.Product{
		Title:       req.Title,
		Vendor:      req.Vendor,
		ProductType: req.ProductType,
		Price:       req.Price,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := productRepo.Create(product)
	if err != nil {
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	for _, vr := range req.Variants {
		price := req.Price
		if vr.Price != nil {
			price = vr.Price
		}
		// manual variants default to available, unlike feed-sourced ones
		available := vr.Available == nil || *vr.Available

		variant := models.Variant{
			ProductID: created.ID,
			Title:     vr.Title,
			SKU:       vr.SKU,
			Price:     *price,
			Available: available,
		}
		saved, err := productRepo.CreateVariant(variant)
		if err != nil {
			http.Error(w, "could not create variant", http.StatusInternalServerError)
			return
		}
		created.Variants = append(created.Variants, saved)
	}

	if err := writeJSON(w, http.StatusCreated, toProductResponse(created)); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// GetProductsHandler godoc
// @Summary List all products, most recent first
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, toProductResponses(products)); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// GetProductByIDHandler godoc
// @Summary Get product by ID, variants included
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, toProductResponse(product)); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// UpdateProductHandler godoc
// @Summary Update a product's editable fields
// @Description Title, vendor, product type and price only. External id and variants are never touched by manual edits.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	product := models.Product{
		ID:          id,
		Title:       req.Title,
		Vendor:      req.Vendor,
		ProductType: req.ProductType,
		Price:       req.Price,
	}
	updated, err := productRepo.Update(product)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, toProductResponse(updated)); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// DeleteProductHandler godoc
// @Summary Delete a product and its variants
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	if err := productRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CountProductsHandler godoc
// @Summary Count products in the catalog
// @Tags products
// @Produce json
// @Success 200 {object} ProductCountResult
// @Failure 500 {string} string "Internal error"
// @Router /products/count [get]
func CountProductsHandler(w http.ResponseWriter, r *http.Request) {
	count, err := productRepo.Count()
	if err != nil {
		http.Error(w, "could not count products", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, ProductCountResult{Count: count}); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// SearchProductsHandler godoc
// @Summary Search products by title substring, case-insensitive
// @Tags products
// @Produce json
// @Param q query string false "Title substring"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /search [get]
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		products []models.Product
		err      error
	)
	if query == "" {
		products, err = productRepo.GetAll()
	} else {
		products, err = productRepo.SearchByTitle(query)
	}
	if err != nil {
		http.Error(w, "could not search products", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, toProductResponses(products)); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
