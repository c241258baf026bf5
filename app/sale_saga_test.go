package app

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/internal"
	"tablero/internal/errors"
	"tablero/internal/testkit"
)

const (
	testOwner = core.ID("owner-1")
	testOrg   = core.ID("org-1")
	testItem  = core.InventoryItemID("inv-1")
)

func newSagaFixture() (*SaleSaga, *testkit.MemoryStore) {
	store := testkit.NewMemoryStore()
	store.Inventory[testItem] = commerce.InventoryItem{
		ID:             testItem,
		OwnerID:        testOwner,
		OrganizationID: testOrg,
		Name:           "Café molido",
		Code:           "CAF-001",
		Quantity:       10,
		Status:         commerce.InventoryApproved,
	}
	saga := NewSaleSaga(store, store, store.LineItems(), commerce.StatusFulfilled, internal.NewDefaultLogger("saga-test"))
	return saga, store
}

func saleRequest() SaleRequest {
	return SaleRequest{
		OwnerID:         testOwner,
		OrganizationID:  testOrg,
		InventoryItemID: testItem,
		Quantity:        3,
		UnitPrice:       25,
		CurrencyCode:    "USD",
	}
}

func TestRegisterSale(t *testing.T) {
	saga, store := newSagaFixture()

	receipt, err := saga.Register(context.Background(), saleRequest())
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.Equal(t, 75.0, receipt.OrderTotal)
	assert.Equal(t, 3, receipt.Quantity)
	assert.Equal(t, 7.0, receipt.RemainingQuantity)
	assert.False(t, receipt.RegisteredAt.IsZero())

	require.Len(t, store.Orders, 1)
	order := store.Orders[receipt.OrderID]
	assert.Equal(t, commerce.StatusFulfilled, order.Status)
	assert.Equal(t, 75.0, order.TotalAmount)

	require.Len(t, store.Items, 1)
	li := store.Items[0]
	assert.Equal(t, receipt.OrderID, li.OrderID)
	assert.Equal(t, "CAF-001", li.SKU)
	require.NotNil(t, li.LineTotal)
	assert.Equal(t, 75.0, *li.LineTotal)

	assert.Equal(t, 7.0, store.Inventory[testItem].Quantity)
}

func TestRegisterFractionalQuantityFloors(t *testing.T) {
	saga, store := newSagaFixture()
	req := saleRequest()
	req.Quantity = 2.9

	receipt, err := saga.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Quantity)
	assert.Equal(t, 50.0, receipt.OrderTotal)
	assert.Equal(t, 8.0, store.Inventory[testItem].Quantity)
}

func TestRegisterValidationRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*SaleRequest)
		prepare  func(*testkit.MemoryStore)
		wantCode string
	}{
		{
			name:     "missing owner",
			mutate:   func(r *SaleRequest) { r.OwnerID = "" },
			wantCode: errors.CodeValidation,
		},
		{
			name:     "zero quantity",
			mutate:   func(r *SaleRequest) { r.Quantity = 0 },
			wantCode: errors.CodeValidation,
		},
		{
			name:     "fractional quantity below one",
			mutate:   func(r *SaleRequest) { r.Quantity = 0.9 },
			wantCode: errors.CodeValidation,
		},
		{
			name:     "unknown item",
			mutate:   func(r *SaleRequest) { r.InventoryItemID = "nope" },
			wantCode: errors.CodeNotFound,
		},
		{
			name:     "foreign owner",
			mutate:   func(r *SaleRequest) { r.OwnerID = "intruder" },
			wantCode: errors.CodeOwnershipMismatch,
		},
		{
			name: "item not approved",
			prepare: func(s *testkit.MemoryStore) {
				item := s.Inventory[testItem]
				item.Status = commerce.InventoryPending
				s.Inventory[testItem] = item
			},
			wantCode: errors.CodeStateConflict,
		},
		{
			name:     "insufficient stock",
			mutate:   func(r *SaleRequest) { r.Quantity = 11 },
			wantCode: errors.CodeInsufficientStock,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saga, store := newSagaFixture()
			if tt.prepare != nil {
				tt.prepare(store)
			}
			req := saleRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			receipt, err := saga.Register(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, receipt)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))

			// Rejected requests must leave no trace.
			assert.Empty(t, store.Orders)
			assert.Empty(t, store.Items)
			assert.Equal(t, 10.0, store.Inventory[testItem].Quantity)
		})
	}
}

func TestRegisterOrderWriteFailure(t *testing.T) {
	saga, store := newSagaFixture()
	store.ErrCreateOrder = stderrors.New("connection reset")

	receipt, err := saga.Register(context.Background(), saleRequest())
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.Empty(t, store.Orders)
	assert.Empty(t, store.Items)
	assert.Equal(t, 10.0, store.Inventory[testItem].Quantity)
}

func TestRegisterLineItemFailureCompensatesOrder(t *testing.T) {
	saga, store := newSagaFixture()
	store.ErrCreateItem = stderrors.New("connection reset")

	receipt, err := saga.Register(context.Background(), saleRequest())
	require.Error(t, err)
	assert.Nil(t, receipt)

	// The order written before the failure must be deleted again.
	assert.Empty(t, store.Orders)
	assert.Empty(t, store.Items)
	assert.Equal(t, 10.0, store.Inventory[testItem].Quantity)
}

func TestRegisterDebitFailureIsPartialSuccess(t *testing.T) {
	saga, store := newSagaFixture()
	store.ErrDebit = stderrors.New("connection reset")

	receipt, err := saga.Register(context.Background(), saleRequest())
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.Equal(t, errors.CodePartialSuccess, errors.GetCode(err))
	assert.True(t, stderrors.Is(err, core.ErrInventoryNotDebited))

	// Order and line item stay committed; only the stock is stale.
	assert.Len(t, store.Orders, 1)
	assert.Len(t, store.Items, 1)
	assert.Equal(t, 10.0, store.Inventory[testItem].Quantity)
}

func TestNewSaleSagaFallsBackOnInvalidStatus(t *testing.T) {
	saga, _ := newSagaFixture()
	bad := NewSaleSaga(saga.inventory, saga.orders, saga.items, commerce.OrderStatus("shipped?"), internal.NewDefaultLogger("saga-test"))
	assert.Equal(t, commerce.StatusFulfilled, bad.defaultStatus)
}

func TestRegisterSecondSaleExhaustsStock(t *testing.T) {
	saga, store := newSagaFixture()
	item := store.Inventory[testItem]
	item.Quantity = 3
	store.Inventory[testItem] = item

	_, err := saga.Register(context.Background(), saleRequest())
	require.NoError(t, err)

	_, err = saga.Register(context.Background(), saleRequest())
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientStock, errors.GetCode(err))
	assert.Len(t, store.Orders, 1, "rejected sale writes nothing")
}
