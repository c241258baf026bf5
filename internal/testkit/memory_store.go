// Package testkit provides in-memory row-store fakes with failure injection
// for exercising the services without a database.
package testkit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tablero/domain/commerce"
	"tablero/domain/core"
	"tablero/domain/tabular"
)

// MemoryStore implements every row-store port in memory. Err* fields inject
// failures per operation; they are returned verbatim.
type MemoryStore struct {
	mu sync.Mutex

	Orders       map[core.OrderID]commerce.Order
	Items        []commerce.OrderLineItem
	Customers    []commerce.Customer
	Inventory    map[core.InventoryItemID]commerce.InventoryItem
	Datasets     map[core.DatasetID][]tabular.Row
	DatasetNames map[core.DatasetID]string
	Analyses     map[core.DatasetID]*tabular.AnalysisResult

	ErrCreateOrder   error
	ErrDeleteOrder   error
	ErrListOrders    error
	ErrCreateItem    error
	ErrListItems     error
	ErrListCustomers error
	ErrDebit         error
	ErrSaveRows      error
	ErrGetRows       error
	ErrSaveAnalysis  error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Orders:       make(map[core.OrderID]commerce.Order),
		Inventory:    make(map[core.InventoryItemID]commerce.InventoryItem),
		Datasets:     make(map[core.DatasetID][]tabular.Row),
		DatasetNames: make(map[core.DatasetID]string),
		Analyses:     make(map[core.DatasetID]*tabular.AnalysisResult),
	}
}

func (s *MemoryStore) Create(ctx context.Context, order *commerce.Order) error {
	if s.ErrCreateOrder != nil {
		return s.ErrCreateOrder
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders[order.ID] = *order
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id core.OrderID) error {
	if s.ErrDeleteOrder != nil {
		return s.ErrDeleteOrder
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Orders, id)
	return nil
}

func (s *MemoryStore) ListByOwner(ctx context.Context, ownerID, organizationID core.ID, since time.Time) ([]commerce.Order, error) {
	if s.ErrListOrders != nil {
		return nil, s.ErrListOrders
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []commerce.Order
	for _, o := range s.Orders {
		if o.OwnerID == ownerID && o.OrganizationID == organizationID && !o.CreatedAt.Before(since) {
			out = append(out, o)
		}
	}
	return out, nil
}

// LineItems adapts the store to ports.LineItemRepository, whose method set
// collides with the order repository's.
func (s *MemoryStore) LineItems() *MemoryLineItems { return &MemoryLineItems{store: s} }

// MemoryLineItems is the line-item view over a MemoryStore.
type MemoryLineItems struct {
	store *MemoryStore
}

func (m *MemoryLineItems) Create(ctx context.Context, item *commerce.OrderLineItem) error {
	if m.store.ErrCreateItem != nil {
		return m.store.ErrCreateItem
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.Items = append(m.store.Items, *item)
	return nil
}

func (m *MemoryLineItems) ListByOwner(ctx context.Context, ownerID, organizationID core.ID, since time.Time) ([]commerce.OrderLineItem, error) {
	if m.store.ErrListItems != nil {
		return nil, m.store.ErrListItems
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	owned := make(map[core.OrderID]bool)
	for _, o := range m.store.Orders {
		if o.OwnerID == ownerID && o.OrganizationID == organizationID {
			owned[o.ID] = true
		}
	}
	var out []commerce.OrderLineItem
	for _, li := range m.store.Items {
		if owned[li.OrderID] && !li.CreatedAt.Before(since) {
			out = append(out, li)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListByOrganization(ctx context.Context, organizationID core.ID) ([]commerce.Customer, error) {
	if s.ErrListCustomers != nil {
		return nil, s.ErrListCustomers
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []commerce.Customer
	for _, c := range s.Customers {
		if c.OrganizationID == organizationID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id core.InventoryItemID) (*commerce.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.Inventory[id]
	if !ok {
		return nil, fmt.Errorf("%w: inventory item %s", core.ErrNotFound, id)
	}
	copy := item
	return &copy, nil
}

func (s *MemoryStore) Debit(ctx context.Context, id core.InventoryItemID, ownerID, organizationID core.ID, amount int) (float64, error) {
	if s.ErrDebit != nil {
		return 0, s.ErrDebit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.Inventory[id]
	if !ok || item.OwnerID != ownerID || item.OrganizationID != organizationID || item.Quantity < float64(amount) {
		return 0, fmt.Errorf("debiting inventory item %s: %w", id, core.ErrInsufficientStock)
	}
	item.Quantity -= float64(amount)
	s.Inventory[id] = item
	return item.Quantity, nil
}

func (s *MemoryStore) SaveRows(ctx context.Context, id core.DatasetID, name string, rows []tabular.Row) error {
	if s.ErrSaveRows != nil {
		return s.ErrSaveRows
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Datasets[id] = rows
	s.DatasetNames[id] = name
	return nil
}

func (s *MemoryStore) GetRows(ctx context.Context, id core.DatasetID) ([]tabular.Row, error) {
	if s.ErrGetRows != nil {
		return nil, s.ErrGetRows
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.Datasets[id]
	if !ok {
		return nil, fmt.Errorf("%w: dataset %s", core.ErrNotFound, id)
	}
	return rows, nil
}

func (s *MemoryStore) SaveAnalysis(ctx context.Context, id core.DatasetID, result *tabular.AnalysisResult) error {
	if s.ErrSaveAnalysis != nil {
		return s.ErrSaveAnalysis
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Analyses[id] = result
	return nil
}
