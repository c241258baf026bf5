package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/ports"
)

// inventoryRepository implements ports.InventoryRepository
type inventoryRepository struct {
	db *sqlx.DB
}

// NewInventoryRepository creates an inventory repository
func NewInventoryRepository(db *sqlx.DB) ports.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetByID(ctx context.Context, id core.InventoryItemID) (*commerce.InventoryItem, error) {
	query := `SELECT
		id, owner_id, organization_id,
		COALESCE(name, '') AS name,
		COALESCE(code, '') AS code,
		quantity, status
	FROM inventory_items WHERE id = $1`

	var item commerce.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, classify(err, "loading inventory item")
	}
	return &item, nil
}

// Debit decrements the item's quantity with a conditional update so two
// concurrent sales cannot both debit past zero on a stale read.
func (r *inventoryRepository) Debit(ctx context.Context, id core.InventoryItemID, ownerID, organizationID core.ID, amount int) (float64, error) {
	query := `UPDATE inventory_items
	SET quantity = quantity - $4
	WHERE id = $1 AND owner_id = $2 AND organization_id = $3 AND quantity >= $4
	RETURNING quantity`

	var remaining float64
	err := r.db.QueryRowContext(ctx, query, id, ownerID, organizationID, amount).Scan(&remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the row vanished or the conditional guard rejected the
			// decrement; in both cases the debit did not happen.
			return 0, fmt.Errorf("debiting inventory item %s: %w", id, core.ErrInsufficientStock)
		}
		return 0, classify(err, "debiting inventory item")
	}
	return remaining, nil
}
