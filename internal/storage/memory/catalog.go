// Package memory provides in-memory repository implementations. The product
// catalog variant serves the mock-data mode of the API; the user and cart
// variants back unit tests and local development without a database.
package memory

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/shopease/storefront/internal/domain/catalog"
)

var _ catalog.Repository = (*ProductCatalog)(nil)

// ProductCatalog is an immutable in-memory catalog.
type ProductCatalog struct {
	byID  map[string]catalog.Product
	order []string
}

type productJSON struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Category      string              `json:"category"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Rating        float64             `json:"rating"`
	ReviewCount   int                 `json:"reviewCount"`
	Description   string              `json:"description"`
	Image         string              `json:"image"`
	Sizes         []string            `json:"sizes"`
	InStock       bool                `json:"inStock"`
	StockCount    int                 `json:"stockCount"`
	Brand         string              `json:"brand"`
	SKU           string              `json:"sku"`
}

// NewProductCatalog builds a catalog from the given products.
func NewProductCatalog(products []catalog.Product) *ProductCatalog {
	c := &ProductCatalog{byID: make(map[string]catalog.Product, len(products))}
	for _, p := range products {
		if _, ok := c.byID[p.ID]; !ok {
			c.order = append(c.order, p.ID)
		}
		c.byID[p.ID] = p
	}
	return c
}

// ParseProducts decodes a JSON product list (the db/seed format).
func ParseProducts(data []byte) ([]catalog.Product, error) {
	var rows []productJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, "parse products")
	}

	products := make([]catalog.Product, len(rows))
	for i, row := range rows {
		products[i] = catalog.Product{
			ID:            row.ID,
			Name:          row.Name,
			Category:      row.Category,
			Price:         row.Price,
			OriginalPrice: row.OriginalPrice,
			Rating:        row.Rating,
			ReviewCount:   row.ReviewCount,
			Description:   row.Description,
			Image:         row.Image,
			Sizes:         row.Sizes,
			InStock:       row.InStock,
			StockCount:    row.StockCount,
			Brand:         row.Brand,
			SKU:           row.SKU,
		}
	}
	return products, nil
}

// NewProductCatalogFromJSON builds a catalog straight from seed JSON.
func NewProductCatalogFromJSON(data []byte) (*ProductCatalog, error) {
	products, err := ParseProducts(data)
	if err != nil {
		return nil, err
	}
	return NewProductCatalog(products), nil
}

// List returns all products in seed order.
func (c *ProductCatalog) List(_ context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

// GetByID returns a single product by its identifier.
func (c *ProductCatalog) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}
