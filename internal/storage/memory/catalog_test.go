package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopease/storefront/db"
	"github.com/shopease/storefront/internal/domain/catalog"
)

func TestProductCatalog_FromSeed(t *testing.T) {
	c, err := NewProductCatalogFromJSON(db.SeedProducts)
	require.NoError(t, err)

	products, err := c.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, products)

	first := products[0]
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.Name)
	assert.True(t, first.Price.IsPositive())

	got, err := c.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)
}

func TestProductCatalog_ListPreservesSeedOrder(t *testing.T) {
	c, err := NewProductCatalogFromJSON(db.SeedProducts)
	require.NoError(t, err)

	products, err := c.List(context.Background())
	require.NoError(t, err)

	again, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, again)
}

func TestProductCatalog_GetByID_NotFound(t *testing.T) {
	c := NewProductCatalog(nil)

	_, err := c.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestParseProducts_Malformed(t *testing.T) {
	_, err := ParseProducts([]byte(`{"not":"a list"}`))
	require.Error(t, err)
}

func TestParseProducts_Fields(t *testing.T) {
	data := []byte(`[{
		"id": "p1",
		"name": "Wireless Headphones",
		"category": "Electronics",
		"price": 89.99,
		"originalPrice": 129.99,
		"sizes": ["S", "M"],
		"inStock": true,
		"stockCount": 5,
		"brand": "AudioTech",
		"sku": "AT-001"
	}]`)

	products, err := ParseProducts(data)
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "89.99", p.Price.String())
	require.True(t, p.OriginalPrice.Valid)
	assert.Equal(t, "129.99", p.OriginalPrice.Decimal.String())
	assert.Equal(t, []string{"S", "M"}, p.Sizes)
	assert.Equal(t, 5, p.StockCount)
}
