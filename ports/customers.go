package ports

import (
	"context"

	"tablero/domain/commerce"
	"tablero/domain/core"
)

// CustomerRepository defines the row-store operations over customers.
type CustomerRepository interface {
	ListByOrganization(ctx context.Context, organizationID core.ID) ([]commerce.Customer, error)
}
