// Package datacache holds a bounded in-process cache of dataset row sets,
// size- and time-bounded and passed into the analysis call explicitly.
package datacache

import (
	"container/list"
	"sync"
	"time"

	"tablero/domain/core"
	"tablero/domain/tabular"
)

type entry struct {
	id       core.DatasetID
	rows     []tabular.Row
	loadedAt time.Time
}

// Cache is an LRU with TTL expiry, safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	order      *list.List
	byID       map[core.DatasetID]*list.Element
	now        func() time.Time
}

// New creates a cache holding at most maxEntries row sets, each for at most
// ttl. Non-positive bounds disable the respective limit.
func New(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		maxEntries: maxEntries,
		ttl:        ttl,
		order:      list.New(),
		byID:       make(map[core.DatasetID]*list.Element),
		now:        time.Now,
	}
}

// Get returns the cached rows for a dataset, or false when absent or expired.
func (c *Cache) Get(id core.DatasetID) ([]tabular.Row, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.ttl > 0 && c.now().Sub(ent.loadedAt) > c.ttl {
		c.remove(elem)
		return nil, false
	}
	c.order.MoveToFront(elem)
	return ent.rows, true
}

// Put stores the rows for a dataset, evicting the least recently used entry
// when the size bound is exceeded.
func (c *Cache) Put(id core.DatasetID, rows []tabular.Row) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.byID[id]; ok {
		ent := elem.Value.(*entry)
		ent.rows = rows
		ent.loadedAt = c.now()
		c.order.MoveToFront(elem)
		return
	}
	elem := c.order.PushFront(&entry{id: id, rows: rows, loadedAt: c.now()})
	c.byID[id] = elem

	if c.maxEntries > 0 {
		for c.order.Len() > c.maxEntries {
			c.remove(c.order.Back())
		}
	}
}

// Invalidate drops a dataset's cached rows, if any.
func (c *Cache) Invalidate(id core.DatasetID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.byID[id]; ok {
		c.remove(elem)
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) remove(elem *list.Element) {
	if elem == nil {
		return
	}
	ent := elem.Value.(*entry)
	delete(c.byID, ent.id)
	c.order.Remove(elem)
}
