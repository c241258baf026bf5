package ports

import (
	"context"
	"time"

	"tablero/domain/commerce"
	"tablero/domain/core"
)

// LineItemRepository defines the row-store operations over order line items.
type LineItemRepository interface {
	Create(ctx context.Context, item *commerce.OrderLineItem) error

	// ListByOwner returns line items belonging to the owner's orders whose
	// creation time is at or after since.
	ListByOwner(ctx context.Context, ownerID, organizationID core.ID, since time.Time) ([]commerce.OrderLineItem, error)
}
