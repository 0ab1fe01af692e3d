package memory

import (
	"context"
	"sync"

	"github.com/shopease/storefront/internal/domain/cart"
)

var _ cart.SnapshotRepository = (*CartRepository)(nil)

// CartRepository keeps cart snapshots in memory, encoded through the same
// wire codec as the durable store so round-trip behavior matches.
type CartRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewCartRepository returns an empty in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{snapshots: make(map[string][]byte)}
}

// Load returns the stored lines, or cart.ErrSnapshotNotFound.
func (r *CartRepository) Load(_ context.Context, cartID string) ([]cart.Line, error) {
	r.mu.RLock()
	raw, ok := r.snapshots[cartID]
	r.mu.RUnlock()

	if !ok {
		return nil, cart.ErrSnapshotNotFound
	}
	return cart.DecodeLines(raw)
}

// Save overwrites the snapshot for cartID.
func (r *CartRepository) Save(_ context.Context, cartID string, lines []cart.Line) error {
	raw := cart.EncodeLines(lines)

	r.mu.Lock()
	r.snapshots[cartID] = raw
	r.mu.Unlock()
	return nil
}

// Delete removes the snapshot for cartID.
func (r *CartRepository) Delete(_ context.Context, cartID string) error {
	r.mu.Lock()
	delete(r.snapshots, cartID)
	r.mu.Unlock()
	return nil
}
