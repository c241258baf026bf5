package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	aggregator "tablero/adapters/commerce"
	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/internal"
	"tablero/internal/errors"
	"tablero/ports"
)

// OverviewService computes the commerce KPI overview for one
// (owner, organization) pair. The three collections are fetched in parallel
// and joined only after all three resolve; the aggregation itself is pure.
type OverviewService struct {
	orders    ports.OrderRepository
	items     ports.LineItemRepository
	customers ports.CustomerRepository
	logger    *internal.Logger
	now       func() time.Time
}

// NewOverviewService creates an overview service
func NewOverviewService(orders ports.OrderRepository, items ports.LineItemRepository, customers ports.CustomerRepository, logger *internal.Logger) *OverviewService {
	return &OverviewService{
		orders:    orders,
		items:     items,
		customers: customers,
		logger:    logger,
		now:       time.Now,
	}
}

// Overview builds the trailing six-month KPI snapshot. Owner and
// organization ids are mandatory; their absence is a caller error.
func (s *OverviewService) Overview(ctx context.Context, ownerID, organizationID core.ID) (*commerce.Overview, error) {
	if ownerID.IsEmpty() {
		return nil, errors.Validation("owner id is required")
	}
	if organizationID.IsEmpty() {
		return nil, errors.Validation("organization id is required")
	}

	now := s.now()
	since := commerce.MonthsBack(aggregator.WindowMonths-1, now)

	var (
		orders    []commerce.Order
		items     []commerce.OrderLineItem
		customers []commerce.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListByOwner(gctx, ownerID, organizationID, since)
		return s.degradeSchemaMismatch("orders", err)
	})
	g.Go(func() error {
		var err error
		items, err = s.items.ListByOwner(gctx, ownerID, organizationID, since)
		return s.degradeSchemaMismatch("order line items", err)
	})
	g.Go(func() error {
		var err error
		customers, err = s.customers.ListByOrganization(gctx, organizationID)
		return s.degradeSchemaMismatch("customers", err)
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "loading commerce window")
	}

	overview := aggregator.BuildOverview(aggregator.Input{
		Now:       now,
		Orders:    orders,
		Items:     items,
		Customers: customers,
	})
	return &overview, nil
}

// degradeSchemaMismatch downgrades schema-mismatch reads to an empty
// collection with a warning; every other storage failure surfaces.
func (s *OverviewService) degradeSchemaMismatch(collection string, err error) error {
	if err == nil {
		return nil
	}
	if core.IsSchemaMismatch(err) {
		s.logger.Warn("%s: schema mismatch, continuing with empty collection: %v", collection, err)
		return nil
	}
	return err
}
