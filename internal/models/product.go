package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog product. ExternalID carries the feed's identifier and
// is nil for manually created products, which the sync pipeline never touches.
type Product struct {
	ID          int64            `json:"id"`
	ExternalID  *int64           `json:"external_id,omitempty"`
	Title       string           `json:"title"`
	Handle      *string          `json:"handle,omitempty"`
	Vendor      *string          `json:"vendor,omitempty"`
	ProductType *string          `json:"product_type,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	Variants    []Variant        `json:"variants,omitempty"`
}

// Variant belongs to exactly one product for its whole lifetime.
type Variant struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	ExternalID *int64          `json:"external_id,omitempty"`
	Title      *string         `json:"title,omitempty"`
	SKU        *string         `json:"sku,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Available  bool            `json:"available"`
}
