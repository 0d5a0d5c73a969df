package repo

import (
	"errors"

	models "github.com/rogerio-castellano/catalog-sync/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Upserts are keyed by external id and must be atomic per record: two
// concurrent upserts for the same external id may never produce two rows.
type ProductRepository interface {
	// FindByExternalID resolves a feed-sourced product.
	FindByExternalID(externalID int64) (models.Product, error)

	// UpsertProduct inserts a product or, when its external id already
	// exists, overwrites the feed-sourced fields in place. The stored
	// internal id and creation timestamp survive an update. Returns the
	// internal id either way.
	UpsertProduct(p models.Product) (int64, error)

	// UpsertVariant inserts or overwrites a variant keyed by external id,
	// re-pointing its owning product on update.
	UpsertVariant(v models.Variant) error

	GetAll() ([]models.Product, error)
	GetByID(id int64) (models.Product, error)
	Create(p models.Product) (models.Product, error)
	CreateVariant(v models.Variant) (models.Variant, error)
	Update(p models.Product) (models.Product, error)
	Delete(id int64) error
	SearchByTitle(query string) ([]models.Product, error)
	VariantsByProduct(productID int64) ([]models.Variant, error)
	ToggleVariantAvailability(variantID int64) (models.Variant, error)
	Count() (int64, error)
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrVariantNotFound is returned when a variant is not found in the repository.
var ErrVariantNotFound = errors.New("variant not found")
