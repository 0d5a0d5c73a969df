package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	models "github.com/rogerio-castellano/catalog-sync/internal/models"
)

type ProductRequest struct {
	Title       string           `json:"title"`
	Vendor      *string          `json:"vendor,omitempty"`
	ProductType *string          `json:"product_type,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Variants    []VariantRequest `json:"variants,omitempty"`
}

type VariantRequest struct {
	Title     *string          `json:"title,omitempty"`
	SKU       *string          `json:"sku,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Available *bool            `json:"available,omitempty"`
}

type ProductResponse struct {
	Id          int64             `json:"id"`
	ExternalId  *int64            `json:"external_id,omitempty"`
	Title       string            `json:"title"`
	Handle      *string           `json:"handle,omitempty"`
	Vendor      *string           `json:"vendor,omitempty"`
	ProductType *string           `json:"product_type,omitempty"`
	ImageUrl    *string           `json:"image_url,omitempty"`
	Price       *decimal.Decimal  `json:"price,omitempty"`
	CreatedAt   string            `json:"created_at"`
	Variants    []VariantResponse `json:"variants"`
}

type VariantResponse struct {
	Id         int64           `json:"id"`
	ProductId  int64           `json:"product_id"`
	ExternalId *int64          `json:"external_id,omitempty"`
	Title      *string         `json:"title,omitempty"`
	Sku        *string         `json:"sku,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Available  bool            `json:"available"`
}

type ProductCountResult struct {
	Count int64 `json:"count"`
}

type SyncStatusResult struct {
	Status string `json:"status,omitempty"`
	At     string `json:"at,omitempty"`
}

func toProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		Id:          p.ID,
		ExternalId:  p.ExternalID,
		Title:       p.Title,
		Handle:      p.Handle,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		ImageUrl:    p.ImageURL,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		Variants:    make([]VariantResponse, len(p.Variants)),
	}
	for i, v := range p.Variants {
		resp.Variants[i] = toVariantResponse(v)
	}
	return resp
}

func toVariantResponse(v models.Variant) VariantResponse {
	return VariantResponse{
		Id:         v.ID,
		ProductId:  v.ProductID,
		ExternalId: v.ExternalID,
		Title:      v.Title,
		Sku:        v.SKU,
		Price:      v.Price,
		Available:  v.Available,
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = toProductResponse(p)
	}
	return responses
}
