package cart

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/shopease/storefront/internal/domain/catalog"
)

// ErrSnapshotNotFound is returned by SnapshotRepository.Load when no snapshot
// exists for the cart. Open treats it as an empty cart.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// SnapshotRepository persists the full line collection of a cart under its
// ID. Save replaces the previous snapshot wholesale; there is no incremental
// diffing and the last writer wins.
type SnapshotRepository interface {
	Load(ctx context.Context, cartID string) ([]Line, error)
	Save(ctx context.Context, cartID string, lines []Line) error
	Delete(ctx context.Context, cartID string) error
}

// Store binds a Cart to its durable snapshot slot. The snapshot is read once
// at Open; every mutating operation writes the full collection back through
// the injected repository before returning.
//
// A Store is single-owner: it is loaded, mutated and saved within one
// request and provides no cross-writer coordination.
type Store struct {
	id        string
	cart      *Cart
	snapshots SnapshotRepository
}

// Open loads the snapshot for cartID and returns a Store over it. A missing
// snapshot yields an empty cart.
func Open(ctx context.Context, cartID string, snapshots SnapshotRepository) (*Store, error) {
	lines, err := snapshots.Load(ctx, cartID)
	if err != nil && !errors.Is(err, ErrSnapshotNotFound) {
		return nil, errors.Wrap(err, "load cart snapshot")
	}
	return &Store{
		id:        cartID,
		cart:      New(lines),
		snapshots: snapshots,
	}, nil
}

// ID returns the cart identifier.
func (s *Store) ID() string { return s.id }

// Cart exposes the underlying cart for derived reads.
func (s *Store) Cart() *Cart { return s.cart }

// AddItem adds the product snapshot to the cart and persists.
func (s *Store) AddItem(ctx context.Context, p catalog.Product, quantity int, variant string) error {
	s.cart.AddItem(p, quantity, variant)
	return s.persist(ctx)
}

// SetQuantity updates the quantity for productID and persists.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	s.cart.SetQuantity(productID, quantity)
	return s.persist(ctx)
}

// RemoveItem removes productID's lines and persists.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.cart.RemoveItem(productID)
	return s.persist(ctx)
}

// Clear empties the cart and deletes its snapshot slot.
func (s *Store) Clear(ctx context.Context) error {
	s.cart.Clear()
	if err := s.snapshots.Delete(ctx, s.id); err != nil {
		return errors.Wrap(err, "delete cart snapshot")
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	if err := s.snapshots.Save(ctx, s.id, s.cart.Lines()); err != nil {
		return errors.Wrap(err, "save cart snapshot")
	}
	return nil
}
