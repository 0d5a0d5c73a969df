package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	models "github.com/rogerio-castellano/catalog-sync/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, external_id, title, handle, vendor, product_type, image_url, price, created_at`

func (r *PostgresProductRepository) FindByExternalID(externalID int64) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE external_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, externalID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) UpsertProduct(p models.Product) (int64, error) {
	// created_at is deliberately absent from the update set so the original
	// creation timestamp survives repeated syncs.
	query := `
		INSERT INTO products (external_id, title, handle, vendor, product_type, image_url, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (external_id) DO UPDATE SET
			title = EXCLUDED.title,
			handle = EXCLUDED.handle,
			vendor = EXCLUDED.vendor,
			product_type = EXCLUDED.product_type,
			image_url = EXCLUDED.image_url,
			price = EXCLUDED.price
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.ExternalID, p.Title, p.Handle, p.Vendor, p.ProductType, p.ImageURL, nullDecimal(p.Price), createdAt,
	).Scan(&id)
	return id, err
}

func (r *PostgresProductRepository) UpsertVariant(v models.Variant) error {
	query := `
		INSERT INTO product_variants (product_id, external_id, title, sku, price, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (external_id) DO UPDATE SET
			product_id = EXCLUDED.product_id,
			title = EXCLUDED.title,
			sku = EXCLUDED.sku,
			price = EXCLUDED.price,
			available = EXCLUDED.available`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, v.ProductID, v.ExternalID, v.Title, v.SKU, v.Price, v.Available)
	return err
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	return r.attachVariants(products)
}

func (r *PostgresProductRepository) GetByID(id int64) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}

	variants, err := r.VariantsByProduct(p.ID)
	if err != nil {
		return models.Product{}, err
	}
	p.Variants = variants
	return p, nil
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `
		INSERT INTO products (external_id, title, handle, vendor, product_type, image_url, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, query,
		p.ExternalID, p.Title, p.Handle, p.Vendor, p.ProductType, p.ImageURL, nullDecimal(p.Price), p.CreatedAt,
	).Scan(&p.ID)
	return p, err
}

func (r *PostgresProductRepository) CreateVariant(v models.Variant) (models.Variant, error) {
	query := `
		INSERT INTO product_variants (product_id, external_id, title, sku, price, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		v.ProductID, v.ExternalID, v.Title, v.SKU, v.Price, v.Available,
	).Scan(&v.ID)
	return v, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET title = $1, vendor = $2, product_type = $3, price = $4 WHERE id = $5`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Title, p.Vendor, p.ProductType, nullDecimal(p.Price), p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.GetByID(p.ID)
}

func (r *PostgresProductRepository) Delete(id int64) error {
	// product_variants rows go with the product via ON DELETE CASCADE
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) SearchByTitle(query string) ([]models.Product, error) {
	sqlQuery := `SELECT ` + productColumns + ` FROM products WHERE title ILIKE $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, sqlQuery, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	return r.attachVariants(products)
}

func (r *PostgresProductRepository) VariantsByProduct(productID int64) ([]models.Variant, error) {
	query := `SELECT id, product_id, external_id, title, sku, price, available
		FROM product_variants WHERE product_id = $1 ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []models.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *PostgresProductRepository) ToggleVariantAvailability(variantID int64) (models.Variant, error) {
	query := `UPDATE product_variants SET available = NOT available WHERE id = $1
		RETURNING id, product_id, external_id, title, sku, price, available`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	v, err := scanVariant(r.db.QueryRowContext(ctx, query, variantID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Variant{}, ErrVariantNotFound
	}
	return v, err
}

func (r *PostgresProductRepository) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

func (r *PostgresProductRepository) attachVariants(products []models.Product) ([]models.Product, error) {
	for i := range products {
		variants, err := r.VariantsByProduct(products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Variants = variants
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p          models.Product
		externalID sql.NullInt64
		price      decimal.NullDecimal
	)
	err := row.Scan(&p.ID, &externalID, &p.Title, &p.Handle, &p.Vendor, &p.ProductType, &p.ImageURL, &price, &p.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}
	if externalID.Valid {
		p.ExternalID = &externalID.Int64
	}
	if price.Valid {
		p.Price = &price.Decimal
	}
	return p, nil
}

func scanVariant(row rowScanner) (models.Variant, error) {
	var (
		v          models.Variant
		externalID sql.NullInt64
	)
	err := row.Scan(&v.ID, &v.ProductID, &externalID, &v.Title, &v.SKU, &v.Price, &v.Available)
	if err != nil {
		return models.Variant{}, err
	}
	if externalID.Valid {
		v.ExternalID = &externalID.Int64
	}
	return v, nil
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
