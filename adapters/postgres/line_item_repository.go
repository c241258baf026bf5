package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/ports"
)

// lineItemRepository implements ports.LineItemRepository
type lineItemRepository struct {
	db *sqlx.DB
}

// NewLineItemRepository creates a line item repository
func NewLineItemRepository(db *sqlx.DB) ports.LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) Create(ctx context.Context, item *commerce.OrderLineItem) error {
	query := `INSERT INTO order_line_items (
		order_id, sku, product_name, quantity, unit_price, line_total, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		item.OrderID, item.SKU, item.ProductName, item.Quantity,
		item.UnitPrice, item.LineTotal, item.CreatedAt,
	)
	return classify(err, "creating order line item")
}

func (r *lineItemRepository) ListByOwner(ctx context.Context, ownerID, organizationID core.ID, since time.Time) ([]commerce.OrderLineItem, error) {
	query := `SELECT
		li.order_id,
		COALESCE(li.sku, '') AS sku,
		COALESCE(li.product_name, '') AS product_name,
		li.quantity, li.unit_price, li.line_total, li.created_at
	FROM order_line_items li
	JOIN orders o ON o.id = li.order_id
	WHERE o.owner_id = $1 AND o.organization_id = $2 AND li.created_at >= $3
	ORDER BY li.created_at`

	var items []commerce.OrderLineItem
	if err := r.db.SelectContext(ctx, &items, query, ownerID, organizationID, since); err != nil {
		return nil, classify(err, "listing order line items")
	}
	return items, nil
}
