package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. OriginalPrice is
// set only for discounted products and is used for strike-through display.
type Product struct {
	ID            string
	Name          string
	Category      string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	Rating        float64
	ReviewCount   int
	Description   string
	Image         string
	Sizes         []string
	InStock       bool
	StockCount    int
	Brand         string
	SKU           string
}

// HasSize reports whether size is one of the product's selectable sizes.
// Products without sizes accept only the empty variant.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
