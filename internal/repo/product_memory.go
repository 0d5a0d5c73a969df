package repo

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	models "github.com/rogerio-castellano/catalog-sync/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository. It mirrors the Postgres semantics, including
// external-id uniqueness, so pipeline and handler tests run without a
// database.
type InMemoryProductRepository struct {
	mu            sync.Mutex
	products      []models.Product
	variants      []models.Variant
	nextProductID int64
	nextVariantID int64
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		nextProductID: 1,
		nextVariantID: 1,
	}
}

func (r *InMemoryProductRepository) FindByExternalID(externalID int64) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ExternalID != nil && *p.ExternalID == externalID {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) UpsertProduct(p models.Product) (int64, error) {
	if p.ExternalID == nil {
		return 0, errors.New("upsert requires an external id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		existing := &r.products[i]
		if existing.ExternalID != nil && *existing.ExternalID == *p.ExternalID {
			existing.Title = p.Title
			existing.Handle = p.Handle
			existing.Vendor = p.Vendor
			existing.ProductType = p.ProductType
			existing.ImageURL = p.ImageURL
			existing.Price = p.Price
			return existing.ID, nil
		}
	}

	p.ID = r.nextProductID
	r.nextProductID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Variants = nil
	r.products = append(r.products, p)
	return p.ID, nil
}

func (r *InMemoryProductRepository) UpsertVariant(v models.Variant) error {
	if v.ExternalID == nil {
		return errors.New("upsert requires an external id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.productExists(v.ProductID) {
		return ErrProductNotFound
	}

	for i := range r.variants {
		existing := &r.variants[i]
		if existing.ExternalID != nil && *existing.ExternalID == *v.ExternalID {
			existing.ProductID = v.ProductID
			existing.Title = v.Title
			existing.SKU = v.SKU
			existing.Price = v.Price
			existing.Available = v.Available
			return nil
		}
	}

	v.ID = r.nextVariantID
	r.nextVariantID++
	r.variants = append(r.variants, v)
	return nil
}

func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	sort.SliceStable(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID > products[j].ID
	})
	for i := range products {
		products[i].Variants = r.variantsOf(products[i].ID)
	}
	return products, nil
}

func (r *InMemoryProductRepository) GetByID(id int64) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			p.Variants = r.variantsOf(id)
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Create(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextProductID
	r.nextProductID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Variants = nil
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryProductRepository) CreateVariant(v models.Variant) (models.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.productExists(v.ProductID) {
		return models.Variant{}, ErrProductNotFound
	}
	v.ID = r.nextVariantID
	r.nextVariantID++
	r.variants = append(r.variants, v)
	return v, nil
}

func (r *InMemoryProductRepository) Update(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		existing := &r.products[i]
		if existing.ID == p.ID {
			existing.Title = p.Title
			existing.Vendor = p.Vendor
			existing.ProductType = p.ProductType
			existing.Price = p.Price
			updated := *existing
			updated.Variants = r.variantsOf(updated.ID)
			return updated, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			kept := r.variants[:0]
			for _, v := range r.variants {
				if v.ProductID != id {
					kept = append(kept, v)
				}
			}
			r.variants = kept
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) SearchByTitle(query string) ([]models.Product, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	var matches []models.Product
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (r *InMemoryProductRepository) VariantsByProduct(productID int64) ([]models.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.variantsOf(productID), nil
}

func (r *InMemoryProductRepository) ToggleVariantAvailability(variantID int64) (models.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.variants {
		if r.variants[i].ID == variantID {
			r.variants[i].Available = !r.variants[i].Available
			return r.variants[i], nil
		}
	}
	return models.Variant{}, ErrVariantNotFound
}

func (r *InMemoryProductRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

// Clear resets the repository. Test helper.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
	r.variants = nil
	r.nextProductID = 1
	r.nextVariantID = 1
}

func (r *InMemoryProductRepository) productExists(id int64) bool {
	for _, p := range r.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (r *InMemoryProductRepository) variantsOf(productID int64) []models.Variant {
	var variants []models.Variant
	for _, v := range r.variants {
		if v.ProductID == productID {
			variants = append(variants, v)
		}
	}
	return variants
}
