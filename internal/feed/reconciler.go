package feed

import (
	"fmt"
	"log"

	repo "github.com/rogerio-castellano/catalog-sync/internal/repo"
)

// Reconciler merges parsed bundles into the store. Upserts are keyed by
// external id, so replaying the same feed never creates duplicates; records
// absent from the feed are left alone.
type Reconciler struct {
	repo repo.ProductRepository
}

func NewReconciler(r repo.ProductRepository) *Reconciler {
	return &Reconciler{repo: r}
}

// Reconcile upserts the bundle's product and then its variants, each variant
// owned by the freshly resolved product id. A failed variant write is logged
// and skipped without failing the product.
func (r *Reconciler) Reconcile(b Bundle) (int, error) {
	productID, err := r.repo.UpsertProduct(b.Product)
	if err != nil {
		return 0, fmt.Errorf("upsert product %d: %w", *b.Product.ExternalID, err)
	}

	saved := 0
	for _, v := range b.Variants {
		v.ProductID = productID
		if err := r.repo.UpsertVariant(v); err != nil {
			log.Printf("Error saving variant %d of product %d: %v", *v.ExternalID, *b.Product.ExternalID, err)
			continue
		}
		saved++
	}
	return saved, nil
}
