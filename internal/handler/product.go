package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/shopease/storefront/internal/domain/catalog"
)

// productPayload is the API view of a catalog product. Prices are rounded
// to two decimal places at this boundary only.
type productPayload struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Sizes         []string `json:"sizes,omitempty"`
	InStock       bool     `json:"inStock"`
	StockCount    int      `json:"stockCount"`
	Brand         string   `json:"brand"`
	SKU           string   `json:"sku"`
}

func toProductPayload(p catalog.Product) productPayload {
	out := productPayload{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price.Round(2).InexactFloat64(),
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Description: p.Description,
		Image:       p.Image,
		Sizes:       p.Sizes,
		InStock:     p.InStock,
		StockCount:  p.StockCount,
		Brand:       p.Brand,
		SKU:         p.SKU,
	}
	if p.OriginalPrice.Valid {
		v := p.OriginalPrice.Decimal.Round(2).InexactFloat64()
		out.OriginalPrice = &v
	}
	return out
}

// ListProducts returns every product in the catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	out := make([]productPayload, len(products))
	for i, p := range products {
		out[i] = toProductPayload(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetProduct returns a single product by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	p, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toProductPayload(*p))
}
