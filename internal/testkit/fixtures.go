package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"tablero/domain/commerce"
	"tablero/domain/core"
)

// FixtureConfig shapes the generated commerce window.
type FixtureConfig struct {
	OwnerID        core.ID
	OrganizationID core.ID
	Months         int
	OrdersPerMonth int
	Seed           int64
}

// DefaultFixtureConfig returns a small deterministic six-month window.
func DefaultFixtureConfig() FixtureConfig {
	return FixtureConfig{
		OwnerID:        "owner-1",
		OrganizationID: "org-1",
		Months:         6,
		OrdersPerMonth: 4,
		Seed:           42,
	}
}

var fixtureSegments = []string{"mayorista", "minorista", ""}

var fixtureProducts = []struct {
	sku  string
	name string
}{
	{"CAF-001", "Café molido 500g"},
	{"CAF-002", "Café en grano 1kg"},
	{"TE-001", "Té verde 100g"},
	{"ACC-001", "Prensa francesa"},
}

// GenerateCommerceWindow populates the store with deterministic orders,
// line items and customers spanning the trailing window ending at now.
func GenerateCommerceWindow(store *MemoryStore, cfg FixtureConfig, now time.Time) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	customers := make([]commerce.Customer, 0, cfg.Months)
	for i := 0; i < cfg.Months; i++ {
		c := commerce.Customer{
			ID:             core.CustomerID(fmt.Sprintf("cust-%d", i+1)),
			OrganizationID: cfg.OrganizationID,
			SegmentKey:     fixtureSegments[i%len(fixtureSegments)],
			CreatedAt:      commerce.MonthsBack(cfg.Months-1-i, now),
		}
		customers = append(customers, c)
	}
	store.Customers = customers

	for monthsAgo := cfg.Months - 1; monthsAgo >= 0; monthsAgo-- {
		monthStart := commerce.MonthsBack(monthsAgo, now)
		for i := 0; i < cfg.OrdersPerMonth; i++ {
			orderDate := monthStart.AddDate(0, 0, rng.Intn(27))
			product := fixtureProducts[rng.Intn(len(fixtureProducts))]
			quantity := float64(1 + rng.Intn(5))
			unitPrice := 10 + float64(rng.Intn(90))

			order := commerce.Order{
				ID:             core.OrderID(core.NewID()),
				OwnerID:        cfg.OwnerID,
				OrganizationID: cfg.OrganizationID,
				CustomerID:     customers[rng.Intn(len(customers))].ID,
				Status:         commerce.StatusFulfilled,
				TotalAmount:    quantity * unitPrice,
				CurrencyCode:   "ARS",
				OrderDate:      orderDate,
				CreatedAt:      orderDate,
			}
			store.Orders[order.ID] = order

			lineTotal := order.TotalAmount
			store.Items = append(store.Items, commerce.OrderLineItem{
				OrderID:     order.ID,
				SKU:         product.sku,
				ProductName: product.name,
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				LineTotal:   &lineTotal,
				CreatedAt:   orderDate,
			})
		}
	}
}
