package app

import (
	"context"
	"math"
	"time"

	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/internal"
	"tablero/internal/errors"
	"tablero/ports"
)

// sagaState names each step of the sale registration workflow. The sequence
// is linear with a single compensating edge: a failed line-item write
// deletes the order it references.
type sagaState string

const (
	stateValidating       sagaState = "validating"
	stateOrderWritten     sagaState = "order_written"
	stateItemWritten      sagaState = "item_written"
	stateInventoryDebited sagaState = "inventory_debited"
)

// SaleRequest carries the caller's inputs for one sale registration.
type SaleRequest struct {
	OwnerID         core.ID
	OrganizationID  core.ID
	InventoryItemID core.InventoryItemID
	Quantity        float64
	UnitPrice       float64
	CurrencyCode    string
}

// SaleReceipt is the terminal success record of the saga.
type SaleReceipt struct {
	OrderID           core.OrderID `json:"order_id"`
	OrderTotal        float64      `json:"order_total"`
	CurrencyCode      string       `json:"currency_code"`
	Quantity          int          `json:"quantity"`
	RemainingQuantity float64      `json:"remaining_quantity"`
	RegisteredAt      time.Time    `json:"registered_at"`
}

// SaleSaga performs the non-atomic write sequence
// {create order, create line item, debit inventory} against the row-store.
// There is no cross-step transaction: concurrent sales against one item can
// both pass validation on a stale read, which the conditional debit at the
// storage layer catches at the final step.
type SaleSaga struct {
	inventory     ports.InventoryRepository
	orders        ports.OrderRepository
	items         ports.LineItemRepository
	defaultStatus commerce.OrderStatus
	logger        *internal.Logger
	now           func() time.Time
}

// NewSaleSaga creates a sale registration saga
func NewSaleSaga(inventory ports.InventoryRepository, orders ports.OrderRepository, items ports.LineItemRepository, defaultStatus commerce.OrderStatus, logger *internal.Logger) *SaleSaga {
	if !commerce.ValidOrderStatus(defaultStatus) {
		defaultStatus = commerce.StatusFulfilled
	}
	return &SaleSaga{
		inventory:     inventory,
		orders:        orders,
		items:         items,
		defaultStatus: defaultStatus,
		logger:        logger,
		now:           time.Now,
	}
}

// Register runs the saga for one sale. The only abort path after the order
// write begins is the compensating delete on a failed line-item write; a
// failed inventory debit is reported as partial success, never rolled back.
func (s *SaleSaga) Register(ctx context.Context, req SaleRequest) (*SaleReceipt, error) {
	state := stateValidating

	item, quantity, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	registeredAt := s.now()
	order := &commerce.Order{
		ID:             core.OrderID(core.NewID()),
		OwnerID:        req.OwnerID,
		OrganizationID: req.OrganizationID,
		Status:         s.defaultStatus,
		TotalAmount:    req.UnitPrice * float64(quantity),
		CurrencyCode:   req.CurrencyCode,
		OrderDate:      registeredAt,
		CreatedAt:      registeredAt,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		// Nothing persisted yet, no compensation needed.
		s.logger.Error("sale aborted in state %s: order write failed: %v", state, err)
		return nil, errors.Wrap(err, "writing order")
	}
	state = stateOrderWritten

	lineTotal := order.TotalAmount
	lineItem := &commerce.OrderLineItem{
		OrderID:     order.ID,
		SKU:         item.Code,
		ProductName: item.Name,
		Quantity:    float64(quantity),
		UnitPrice:   req.UnitPrice,
		LineTotal:   &lineTotal,
		CreatedAt:   registeredAt,
	}
	if err := s.items.Create(ctx, lineItem); err != nil {
		s.logger.Error("sale %s in state %s: line item write failed, compensating: %v", order.ID, state, err)
		s.compensateOrder(ctx, order.ID)
		return nil, errors.Wrap(err, "writing order line item")
	}
	state = stateItemWritten

	remaining, err := s.inventory.Debit(ctx, item.ID, req.OwnerID, req.OrganizationID, quantity)
	if err != nil {
		// Order and line item are already committed. Reporting beats
		// reverting here: the caller must reconcile inventory manually.
		s.logger.Error("sale %s in state %s: inventory debit failed: %v", order.ID, state, err)
		return nil, errors.PartialSuccess(
			"sale was recorded but inventory is stale and must be reconciled",
			core.ErrInventoryNotDebited,
		)
	}
	state = stateInventoryDebited
	s.logger.Info("sale %s registered in state %s, %g units of %s remaining", order.ID, state, remaining, item.Code)

	return &SaleReceipt{
		OrderID:           order.ID,
		OrderTotal:        order.TotalAmount,
		CurrencyCode:      req.CurrencyCode,
		Quantity:          quantity,
		RemainingQuantity: remaining,
		RegisteredAt:      registeredAt,
	}, nil
}

// validate loads the inventory item and rejects the request before any write
// is attempted. The requested quantity is floored to an integer.
func (s *SaleSaga) validate(ctx context.Context, req SaleRequest) (*commerce.InventoryItem, int, error) {
	if req.OwnerID.IsEmpty() {
		return nil, 0, errors.Validation("owner id is required")
	}
	if req.OrganizationID.IsEmpty() {
		return nil, 0, errors.Validation("organization id is required")
	}
	quantity := int(math.Floor(req.Quantity))
	if quantity <= 0 {
		return nil, 0, errors.Validation("quantity must be greater than zero")
	}

	item, err := s.inventory.GetByID(ctx, req.InventoryItemID)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, 0, errors.WithCode(errors.CodeNotFound, err)
		}
		return nil, 0, errors.Wrap(err, "loading inventory item")
	}
	if item.OwnerID != req.OwnerID || item.OrganizationID != req.OrganizationID {
		// Distinct from not-found so callers can log it as security-relevant.
		return nil, 0, errors.OwnershipMismatch("inventory item")
	}
	if item.Status != commerce.InventoryApproved {
		return nil, 0, errors.StateConflict("inventory item is not approved for sale")
	}
	if float64(quantity) > item.Quantity {
		return nil, 0, errors.WithCode(errors.CodeInsufficientStock,
			core.NewInsufficientStockError(quantity, item.Quantity))
	}
	return item, quantity, nil
}

// compensateOrder deletes the order created earlier in this saga so no
// orphaned order survives a failed line-item write.
func (s *SaleSaga) compensateOrder(ctx context.Context, id core.OrderID) {
	if err := s.orders.Delete(ctx, id); err != nil {
		s.logger.Error("compensation failed, orphaned order %s must be removed manually: %v", id, err)
	}
}
