package ports

import (
	"context"
	"time"

	"tablero/domain/commerce"
	"tablero/domain/core"
)

// OrderRepository defines the row-store operations over orders.
type OrderRepository interface {
	Create(ctx context.Context, order *commerce.Order) error
	Delete(ctx context.Context, id core.OrderID) error

	// ListByOwner returns orders for an (owner, organization) pair whose
	// creation time is at or after since.
	ListByOwner(ctx context.Context, ownerID, organizationID core.ID, since time.Time) ([]commerce.Order, error)
}
