package ports

import (
	"context"

	"tablero/domain/commerce"
	"tablero/domain/core"
)

// InventoryRepository defines the row-store operations over inventory items.
type InventoryRepository interface {
	GetByID(ctx context.Context, id core.InventoryItemID) (*commerce.InventoryItem, error)

	// Debit atomically decrements the item's quantity by amount, scoped to
	// the (id, owner, organization) triple, and returns the remaining
	// quantity. A conditional update closes the read-validate-debit race:
	// the decrement only applies while amount <= quantity, otherwise
	// core.ErrInsufficientStock.
	Debit(ctx context.Context, id core.InventoryItemID, ownerID, organizationID core.ID, amount int) (float64, error)
}
