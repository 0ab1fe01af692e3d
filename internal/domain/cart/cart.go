package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shopease/storefront/internal/domain/catalog"
)

// Pricing policy. Tax is a flat 8%; shipping is a flat fee waived when the
// subtotal exceeds the free-shipping threshold.
var (
	taxRate               = decimal.RequireFromString("0.08")
	flatShippingFee       = decimal.RequireFromString("9.99")
	freeShippingThreshold = decimal.NewFromInt(50)

	zero = decimal.Zero
)

// Line is one product entry in the cart. Name, Category, UnitPrice,
// OriginalUnitPrice, Image and InStock are snapshots copied from the catalog
// when the line is created and are never re-synced afterwards.
type Line struct {
	ProductID         string
	Name              string
	Category          string
	UnitPrice         decimal.Decimal
	OriginalUnitPrice decimal.NullDecimal
	Image             string
	Quantity          int
	Variant           string
	InStock           bool
}

// key returns the composite identity of the line. Two lines with the same
// product but different variants are distinct entries.
func (l Line) key() lineKey {
	return lineKey{productID: l.ProductID, variant: l.Variant}
}

type lineKey struct {
	productID string
	variant   string
}

// Cart is an ordered collection of lines keyed by (productID, variant).
// A line with quantity <= 0 never exists; mutations that would produce one
// delete the line instead.
type Cart struct {
	lines []Line
}

// New creates a cart from the given lines. Lines with non-positive
// quantities are dropped; lines sharing a key are merged in encounter order.
func New(lines []Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		c.add(l)
	}
	return c
}

// AddItem appends a line built from the product snapshot, or increments the
// quantity of the existing line with the same (productID, variant). A
// non-positive quantity is normalized to 1. It always succeeds; stock is not
// re-validated.
func (c *Cart) AddItem(p catalog.Product, quantity int, variant string) {
	if quantity <= 0 {
		quantity = 1
	}
	c.add(Line{
		ProductID:         p.ID,
		Name:              p.Name,
		Category:          p.Category,
		UnitPrice:         p.Price,
		OriginalUnitPrice: p.OriginalPrice,
		Image:             p.Image,
		Quantity:          quantity,
		Variant:           variant,
		InStock:           p.InStock,
	})
}

func (c *Cart) add(l Line) {
	for i := range c.lines {
		if c.lines[i].key() == l.key() {
			c.lines[i].Quantity += l.Quantity
			return
		}
	}
	c.lines = append(c.lines, l)
}

// SetQuantity replaces the quantity of every line with the given product ID.
// A quantity <= 0 removes the lines instead. No-op when no line matches.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
		}
	}
}

// RemoveItem deletes every line with the given product ID, regardless of
// variant. No-op when no line matches.
func (c *Cart) RemoveItem(productID string) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// Clear empties the collection.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Count returns the sum of all line quantities.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the sum of unit price times quantity across all lines.
// The value is exact; rounding happens only at the display boundary.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := zero
	for _, l := range c.lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// Tax returns the flat 8% tax on the subtotal.
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(taxRate)
}

// ShippingFee returns zero when the subtotal is strictly above the
// free-shipping threshold, and the flat fee otherwise.
func (c *Cart) ShippingFee() decimal.Decimal {
	if c.Subtotal().GreaterThan(freeShippingThreshold) {
		return zero
	}
	return flatShippingFee
}

// Total returns subtotal + tax + shipping fee.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax()).Add(c.ShippingFee())
}
