package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/internal"
	"tablero/internal/errors"
	"tablero/internal/testkit"
)

func newOverviewFixture() (*OverviewService, *testkit.MemoryStore) {
	store := testkit.NewMemoryStore()
	svc := NewOverviewService(store, store.LineItems(), store, internal.NewDefaultLogger("overview-test"))
	svc.now = func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestOverviewRequiresIdentity(t *testing.T) {
	svc, _ := newOverviewFixture()

	_, err := svc.Overview(context.Background(), "", testOrg)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.GetCode(err))

	_, err = svc.Overview(context.Background(), testOwner, "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.GetCode(err))
}

func TestOverviewEmptyWindow(t *testing.T) {
	svc, _ := newOverviewFixture()

	ov, err := svc.Overview(context.Background(), testOwner, testOrg)
	require.NoError(t, err)
	assert.False(t, ov.HasOrders)
	assert.Len(t, ov.MonthlySeries, 6)
}

func TestOverviewJoinsCollections(t *testing.T) {
	svc, store := newOverviewFixture()
	orderDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	store.Orders["o1"] = commerce.Order{
		ID: "o1", OwnerID: testOwner, OrganizationID: testOrg, CustomerID: "c1",
		TotalAmount: 120, OrderDate: orderDate, CreatedAt: orderDate,
	}
	store.Items = append(store.Items, commerce.OrderLineItem{
		OrderID: "o1", SKU: "CAF-001", Quantity: 2, UnitPrice: 60, CreatedAt: orderDate,
	})
	store.Customers = append(store.Customers, commerce.Customer{
		ID: "c1", OrganizationID: testOrg, SegmentKey: "premium", CreatedAt: orderDate,
	})

	ov, err := svc.Overview(context.Background(), testOwner, testOrg)
	require.NoError(t, err)
	assert.True(t, ov.HasOrders)
	assert.Equal(t, 120.0, ov.Totals.RevenueCurrent)
	require.Len(t, ov.Segments, 1)
	assert.Equal(t, "premium", ov.Segments[0].Segment)
	require.Len(t, ov.TopProducts, 1)
	assert.Equal(t, "CAF-001", ov.TopProducts[0].Key)
}

func TestOverviewDegradesSchemaMismatch(t *testing.T) {
	svc, store := newOverviewFixture()
	orderDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	store.Orders["o1"] = commerce.Order{
		ID: "o1", OwnerID: testOwner, OrganizationID: testOrg,
		TotalAmount: 50, OrderDate: orderDate, CreatedAt: orderDate,
	}
	store.ErrListCustomers = fmt.Errorf("relation customers does not exist: %w", core.ErrSchemaMismatch)

	ov, err := svc.Overview(context.Background(), testOwner, testOrg)
	require.NoError(t, err, "schema mismatch must degrade, not fail")
	assert.True(t, ov.HasOrders)
	assert.Nil(t, ov.Segments, "no customers after degradation")
}

func TestOverviewSurfacesOtherStorageFailures(t *testing.T) {
	svc, store := newOverviewFixture()
	store.ErrListOrders = stderrors.New("connection reset")

	_, err := svc.Overview(context.Background(), testOwner, testOrg)
	require.Error(t, err)
}

func TestOverviewGeneratedWindowConsistency(t *testing.T) {
	svc, store := newOverviewFixture()
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	cfg := testkit.DefaultFixtureConfig()
	cfg.OwnerID = testOwner
	cfg.OrganizationID = testOrg
	testkit.GenerateCommerceWindow(store, cfg, now)

	ov, err := svc.Overview(context.Background(), testOwner, testOrg)
	require.NoError(t, err)
	require.True(t, ov.HasOrders)
	assert.Equal(t, "ARS", ov.CurrencyCode)

	// Every generated order lands in exactly one series point.
	var seriesTotal, storeTotal float64
	var seriesOrders int
	for _, p := range ov.MonthlySeries {
		seriesTotal += p.Revenue
		seriesOrders += p.OrderCount
	}
	for _, o := range store.Orders {
		storeTotal += o.TotalAmount
	}
	assert.InDelta(t, storeTotal, seriesTotal, 1e-9)
	assert.Equal(t, len(store.Orders), seriesOrders)

	// Current-month totals agree with the last series point.
	last := ov.MonthlySeries[len(ov.MonthlySeries)-1]
	assert.InDelta(t, last.Revenue, ov.Totals.RevenueCurrent, 1e-9)
	assert.Equal(t, last.OrderCount, ov.Totals.OrdersCurrent)

	// The unsegmented fixture customers land in the fallback bucket.
	var segTotal float64
	foundFallback := false
	for _, seg := range ov.Segments {
		segTotal += seg.Revenue
		if seg.Segment == "Sin segmento" {
			foundFallback = true
		}
	}
	assert.True(t, foundFallback)
	assert.InDelta(t, storeTotal, segTotal, 1e-9)

	require.NotEmpty(t, ov.TopProducts)
	assert.LessOrEqual(t, len(ov.TopProducts), 5)
}

func TestOverviewWindowExcludesOldRows(t *testing.T) {
	svc, store := newOverviewFixture()
	old := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	store.Orders["o-old"] = commerce.Order{
		ID: "o-old", OwnerID: testOwner, OrganizationID: testOrg,
		TotalAmount: 999, OrderDate: old, CreatedAt: old,
	}

	ov, err := svc.Overview(context.Background(), testOwner, testOrg)
	require.NoError(t, err)
	assert.False(t, ov.HasOrders, "orders before the window are not fetched")
}
