package commerce

import (
	"time"

	"tablero/domain/core"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusDraft     OrderStatus = "draft"
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusFulfilled OrderStatus = "fulfilled"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusDraft, StatusPending, StatusConfirmed, StatusFulfilled, StatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot of an order row owned by the external store.
type Order struct {
	ID             core.OrderID    `json:"id" db:"id"`
	OwnerID        core.ID         `json:"owner_id" db:"owner_id"`
	OrganizationID core.ID         `json:"organization_id" db:"organization_id"`
	CustomerID     core.CustomerID `json:"customer_id,omitempty" db:"customer_id"`
	Status         OrderStatus     `json:"status" db:"status"`
	TotalAmount    float64         `json:"total_amount" db:"total_amount"`
	CurrencyCode   string          `json:"currency_code" db:"currency_code"`
	OrderDate      time.Time       `json:"order_date" db:"order_date"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// PeriodKey buckets the order by order date, falling back to creation time.
func (o Order) PeriodKey() PeriodKey {
	if !o.OrderDate.IsZero() {
		return PeriodKeyOf(o.OrderDate)
	}
	return PeriodKeyOf(o.CreatedAt)
}

// OrderLineItem is one line of an order. LineTotal is nil when the store has
// no explicit total; revenue then falls back to UnitPrice * Quantity.
type OrderLineItem struct {
	OrderID     core.OrderID `json:"order_id" db:"order_id"`
	SKU         string       `json:"sku" db:"sku"`
	ProductName string       `json:"product_name" db:"product_name"`
	Quantity    float64      `json:"quantity" db:"quantity"`
	UnitPrice   float64      `json:"unit_price" db:"unit_price"`
	LineTotal   *float64     `json:"line_total,omitempty" db:"line_total"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// Revenue resolves the line's revenue: explicit total first, then price*qty.
func (li OrderLineItem) Revenue() float64 {
	if li.LineTotal != nil {
		return *li.LineTotal
	}
	return li.UnitPrice * li.Quantity
}

// Customer is an immutable snapshot of a customer row.
type Customer struct {
	ID             core.CustomerID `json:"id" db:"id"`
	OrganizationID core.ID         `json:"organization_id" db:"organization_id"`
	SegmentKey     string          `json:"segment_key,omitempty" db:"segment_key"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// InventoryStatus is the approval state of an inventory item.
type InventoryStatus string

const (
	InventoryPending  InventoryStatus = "pending"
	InventoryApproved InventoryStatus = "approved"
	InventoryRejected InventoryStatus = "rejected"
)

// InventoryItem as consumed by the sale registration flow. Quantity is
// decremented exactly once per successful sale.
type InventoryItem struct {
	ID             core.InventoryItemID `json:"id" db:"id"`
	OwnerID        core.ID              `json:"owner_id" db:"owner_id"`
	OrganizationID core.ID              `json:"organization_id" db:"organization_id"`
	Name           string               `json:"name" db:"name"`
	Code           string               `json:"code" db:"code"`
	Quantity       float64              `json:"quantity" db:"quantity"`
	Status         InventoryStatus      `json:"status" db:"status"`
}
