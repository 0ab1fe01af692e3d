package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopease/storefront/internal/domain/cart"
)

const (
	loadCartSQL = `SELECT lines FROM carts WHERE id = $1`

	saveCartSQL = `INSERT INTO carts (id, lines, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET lines = EXCLUDED.lines, updated_at = now()`

	deleteCartSQL = `DELETE FROM carts WHERE id = $1`
)

var _ cart.SnapshotRepository = (*CartRepository)(nil)

// CartRepository stores cart snapshots in a JSONB column, one row per cart.
// Save replaces the row wholesale, matching the snapshot semantics of the
// cart store.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Load reads the snapshot for cartID. A missing row maps to
// cart.ErrSnapshotNotFound.
func (r *CartRepository) Load(ctx context.Context, cartID string) ([]cart.Line, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, loadCartSQL, cartID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("loading cart %q: %w", cartID, err)
	}
	return cart.DecodeLines(raw)
}

// Save overwrites the snapshot for cartID with the given lines.
func (r *CartRepository) Save(ctx context.Context, cartID string, lines []cart.Line) error {
	if _, err := r.pool.Exec(ctx, saveCartSQL, cartID, cart.EncodeLines(lines)); err != nil {
		return fmt.Errorf("saving cart %q: %w", cartID, err)
	}
	return nil
}

// Delete removes the snapshot row for cartID. Deleting an absent cart is a
// no-op.
func (r *CartRepository) Delete(ctx context.Context, cartID string) error {
	if _, err := r.pool.Exec(ctx, deleteCartSQL, cartID); err != nil {
		return fmt.Errorf("deleting cart %q: %w", cartID, err)
	}
	return nil
}
