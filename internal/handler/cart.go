package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/shopease/storefront/internal/domain/cart"
	"github.com/shopease/storefront/internal/domain/catalog"
)

// cartLinePayload is the API view of one cart line.
type cartLinePayload struct {
	ProductID         string   `json:"productId"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	UnitPrice         float64  `json:"unitPrice"`
	OriginalUnitPrice *float64 `json:"originalUnitPrice,omitempty"`
	Image             string   `json:"imageRef"`
	Quantity          int      `json:"quantity"`
	Variant           string   `json:"selectedVariant,omitempty"`
	InStock           bool     `json:"inStock"`
}

// cartPayload is the API view of a cart with its derived totals. All
// monetary values are rounded to two decimal places here and nowhere
// earlier.
type cartPayload struct {
	CartID   string            `json:"cartId"`
	Items    []cartLinePayload `json:"items"`
	Count    int               `json:"count"`
	Subtotal float64           `json:"subtotal"`
	Tax      float64           `json:"tax"`
	Shipping float64           `json:"shipping"`
	Total    float64           `json:"total"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"selectedVariant"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func toCartPayload(s *cart.Store) cartPayload {
	c := s.Cart()
	lines := c.Lines()

	items := make([]cartLinePayload, len(lines))
	for i, l := range lines {
		items[i] = cartLinePayload{
			ProductID: l.ProductID,
			Name:      l.Name,
			Category:  l.Category,
			UnitPrice: l.UnitPrice.Round(2).InexactFloat64(),
			Image:     l.Image,
			Quantity:  l.Quantity,
			Variant:   l.Variant,
			InStock:   l.InStock,
		}
		if l.OriginalUnitPrice.Valid {
			v := l.OriginalUnitPrice.Decimal.Round(2).InexactFloat64()
			items[i].OriginalUnitPrice = &v
		}
	}

	return cartPayload{
		CartID:   s.ID(),
		Items:    items,
		Count:    c.Count(),
		Subtotal: c.Subtotal().Round(2).InexactFloat64(),
		Tax:      c.Tax().Round(2).InexactFloat64(),
		Shipping: c.ShippingFee().Round(2).InexactFloat64(),
		Total:    c.Total().Round(2).InexactFloat64(),
	}
}

func (h *Handler) openCart(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	cartID := chi.URLParam(r, "cartID")
	if cartID == "" {
		writeMessage(w, http.StatusBadRequest, "Cart ID is required")
		return nil, false
	}

	s, err := cart.Open(r.Context(), cartID, h.carts)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return nil, false
	}
	return s, true
}

// GetCart returns the cart's lines and derived totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.openCart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCartPayload(s))
}

// AddCartItem resolves the product snapshot from the catalog and adds it to
// the cart. A missing quantity defaults to 1.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(r, &req); err != nil || req.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	p, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if req.Variant != "" && !p.HasSize(req.Variant) {
		writeMessage(w, http.StatusBadRequest, "Invalid size for this product")
		return
	}

	s, ok := h.openCart(w, r)
	if !ok {
		return
	}
	if err := s.AddItem(r.Context(), *p, req.Quantity, req.Variant); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toCartPayload(s))
}

// UpdateCartItem sets the quantity for a product. A quantity of zero or
// less removes the product's lines.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Quantity is required")
		return
	}

	s, ok := h.openCart(w, r)
	if !ok {
		return
	}
	if err := s.SetQuantity(r.Context(), chi.URLParam(r, "productID"), req.Quantity); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toCartPayload(s))
}

// RemoveCartItem deletes every line for the product.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.openCart(w, r)
	if !ok {
		return
	}
	if err := s.RemoveItem(r.Context(), chi.URLParam(r, "productID")); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toCartPayload(s))
}

// ClearCart empties the cart and releases its snapshot slot.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.openCart(w, r)
	if !ok {
		return
	}
	if err := s.Clear(r.Context()); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toCartPayload(s))
}
