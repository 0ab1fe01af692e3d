package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopease/storefront/internal/domain/catalog"
)

const (
	productColumns = `id, name, category, price, original_price, rating, review_count,
		description, image, sizes, in_stock, stock_count, brand, sku`

	listProductsSQL = `SELECT ` + productColumns + ` FROM products ORDER BY id`

	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	upsertProductSQL = `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, category = EXCLUDED.category,
			price = EXCLUDED.price, original_price = EXCLUDED.original_price,
			rating = EXCLUDED.rating, review_count = EXCLUDED.review_count,
			description = EXCLUDED.description, image = EXCLUDED.image,
			sizes = EXCLUDED.sizes, in_stock = EXCLUDED.in_stock,
			stock_count = EXCLUDED.stock_count, brand = EXCLUDED.brand,
			sku = EXCLUDED.sku`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all products from the catalog ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	return &p, nil
}

// Upsert inserts or replaces a product row. Used by the seed command.
func (r *ProductRepository) Upsert(ctx context.Context, p catalog.Product) error {
	_, err := r.pool.Exec(ctx, upsertProductSQL,
		p.ID, p.Name, p.Category, p.Price, p.OriginalPrice, p.Rating, p.ReviewCount,
		p.Description, p.Image, p.Sizes, p.InStock, p.StockCount, p.Brand, p.SKU,
	)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", p.ID, err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.OriginalPrice, &p.Rating, &p.ReviewCount,
		&p.Description, &p.Image, &p.Sizes, &p.InStock, &p.StockCount, &p.Brand, &p.SKU,
	)
	return p, err
}
