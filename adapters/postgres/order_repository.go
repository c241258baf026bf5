package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/ports"
)

// orderRepository implements ports.OrderRepository over the relational store
type orderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates an order repository
func NewOrderRepository(db *sqlx.DB) ports.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *commerce.Order) error {
	query := `INSERT INTO orders (
		id, owner_id, organization_id, customer_id, status,
		total_amount, currency_code, order_date, created_at
	) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.OwnerID, order.OrganizationID, order.CustomerID, order.Status,
		order.TotalAmount, order.CurrencyCode, order.OrderDate, order.CreatedAt,
	)
	return classify(err, "creating order")
}

func (r *orderRepository) Delete(ctx context.Context, id core.OrderID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return classify(err, "deleting order")
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID, organizationID core.ID, since time.Time) ([]commerce.Order, error) {
	query := `SELECT
		id, owner_id, organization_id,
		COALESCE(customer_id, '') AS customer_id,
		status, total_amount,
		COALESCE(currency_code, '') AS currency_code,
		COALESCE(order_date, created_at) AS order_date,
		created_at
	FROM orders
	WHERE owner_id = $1 AND organization_id = $2 AND created_at >= $3
	ORDER BY created_at`

	var orders []commerce.Order
	if err := r.db.SelectContext(ctx, &orders, query, ownerID, organizationID, since); err != nil {
		return nil, classify(err, "listing orders")
	}
	return orders, nil
}
