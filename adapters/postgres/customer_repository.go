package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/ports"
)

// customerRepository implements ports.CustomerRepository
type customerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a customer repository
func NewCustomerRepository(db *sqlx.DB) ports.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) ListByOrganization(ctx context.Context, organizationID core.ID) ([]commerce.Customer, error) {
	query := `SELECT
		id, organization_id,
		COALESCE(segment_key, '') AS segment_key,
		created_at
	FROM customers
	WHERE organization_id = $1
	ORDER BY created_at`

	var customers []commerce.Customer
	if err := r.db.SelectContext(ctx, &customers, query, organizationID); err != nil {
		return nil, classify(err, "listing customers")
	}
	return customers, nil
}
