package feed

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	models "github.com/rogerio-castellano/catalog-sync/internal/models"
)

// Wire shapes of the feed document. Optional fields decode to nil pointers
// so that absence stays explicit until parseProduct turns each item into a
// typed bundle.
type feedProduct struct {
	ID          *int64        `json:"id"`
	Title       *string       `json:"title"`
	Handle      *string       `json:"handle"`
	Vendor      *string       `json:"vendor"`
	ProductType *string       `json:"product_type"`
	Images      []feedImage   `json:"images"`
	Variants    []feedVariant `json:"variants"`
}

type feedImage struct {
	Src *string `json:"src"`
}

type feedVariant struct {
	ID        *int64  `json:"id"`
	Title     *string `json:"title"`
	SKU       *string `json:"sku"`
	Price     *string `json:"price"`
	Available *bool   `json:"available"`
}

// Bundle is one feed product ready for reconciliation: the product plus the
// variants that parsed cleanly.
type Bundle struct {
	Product  models.Product
	Variants []models.Variant

	// SkippedVariants counts variants dropped for missing or malformed
	// fields; the product itself still reconciles.
	SkippedVariants int
}

// Parse decodes the raw feed text and returns the product items in feed
// order. A missing or non-array products key is a *FormatError and aborts
// the whole run.
func Parse(raw string) ([]feedProduct, error) {
	var envelope struct {
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, &FormatError{Reason: "feed is not a JSON object", Err: err}
	}
	// a literal null products value counts as absent
	if len(envelope.Products) == 0 || bytes.Equal(envelope.Products, []byte("null")) {
		return nil, &FormatError{Reason: "no products array found"}
	}

	var items []feedProduct
	if err := json.Unmarshal(envelope.Products, &items); err != nil {
		return nil, &FormatError{Reason: "products is not an array", Err: err}
	}
	return items, nil
}

// parseProduct turns one feed item into a Bundle or reports an *ItemError
// that skips just this item.
//
// The product price derives from the first variant's price string, so a
// malformed first variant fails the whole product. Later variants that fail
// to parse are dropped individually.
func parseProduct(item feedProduct) (Bundle, error) {
	if item.ID == nil {
		return Bundle{}, &ItemError{Reason: "missing product id"}
	}
	if item.Title == nil || strings.TrimSpace(*item.Title) == "" {
		return Bundle{}, &ItemError{Reason: "missing product title"}
	}

	var imageURL *string
	if len(item.Images) > 0 && item.Images[0].Src != nil {
		imageURL = item.Images[0].Src
	}

	var price *decimal.Decimal
	if len(item.Variants) > 0 {
		first := item.Variants[0]
		if first.Price == nil {
			return Bundle{}, &ItemError{Reason: "first variant has no price"}
		}
		d, err := decimal.NewFromString(*first.Price)
		if err != nil {
			return Bundle{}, &ItemError{Reason: "malformed first variant price", Err: err}
		}
		price = &d
	}

	bundle := Bundle{
		Product: models.Product{
			ExternalID:  item.ID,
			Title:       *item.Title,
			Handle:      item.Handle,
			Vendor:      item.Vendor,
			ProductType: item.ProductType,
			ImageURL:    imageURL,
			Price:       price,
			CreatedAt:   time.Now().UTC(),
		},
	}

	for _, v := range item.Variants {
		variant, err := parseVariant(v)
		if err != nil {
			bundle.SkippedVariants++
			continue
		}
		bundle.Variants = append(bundle.Variants, variant)
	}
	return bundle, nil
}

func parseVariant(v feedVariant) (models.Variant, error) {
	if v.ID == nil {
		return models.Variant{}, &ItemError{Reason: "missing variant id"}
	}
	if v.Price == nil {
		return models.Variant{}, &ItemError{Reason: "missing variant price"}
	}
	price, err := decimal.NewFromString(*v.Price)
	if err != nil {
		return models.Variant{}, &ItemError{Reason: "malformed variant price", Err: err}
	}

	// Absent availability means false here; manual variant creation defaults
	// it to true. The asymmetry is intentional and covered by tests.
	available := v.Available != nil && *v.Available

	return models.Variant{
		ExternalID: v.ID,
		Title:      v.Title,
		SKU:        v.SKU,
		Price:      price,
		Available:  available,
	}, nil
}
